package service

import (
	"errors"
	"strings"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/pkg/tfidf"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrSKUExists           = errors.New("a product with this SKU already exists")
	ErrBarcodeExists       = errors.New("a product with this barcode already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameExists  = errors.New("a category with this name already exists")
	ErrCategoryHasProducts = errors.New("category still has active products")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSupplierNameExists  = errors.New("a supplier with this name already exists")
	ErrSupplierHasProducts = errors.New("supplier still has active products")
)

// fallbackPoolSize caps how many similarity matches the fallback search pulls
// before paginating.
const fallbackPoolSize = 30

// suggestionThreshold is the cosine similarity a category suggestion must
// strictly exceed to be worth surfacing.
const suggestionThreshold = 0.15

// ProductPage is one page of listing results. Fallback marks pages produced by
// the similarity search after the literal query matched nothing.
type ProductPage struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PerPage  int             `json:"per_page"`
	Fallback bool            `json:"fallback_search"`
}

// CatalogService owns the product, category and supplier catalogs.
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	log          *zap.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

// ---- Products ----

func (s *CatalogService) CreateProduct(product *model.Product, createdBy string) error {
	if err := s.ensureUniqueIdentity(product, uuid.Nil); err != nil {
		return err
	}
	product.CreatedBy = createdBy
	product.IsActive = true
	return s.productRepo.Create(product)
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, updated *model.Product, updatedBy string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.ensureUniqueIdentity(updated, id); err != nil {
		return nil, err
	}

	existing.SKU = updated.SKU
	existing.Barcode = updated.Barcode
	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.CategoryID = updated.CategoryID
	existing.SupplierID = updated.SupplierID
	existing.CostPrice = updated.CostPrice
	existing.SellingPrice = updated.SellingPrice
	existing.Currency = updated.Currency
	existing.ReorderLevel = updated.ReorderLevel
	existing.ReorderQuantity = updated.ReorderQuantity
	existing.Weight = updated.Weight
	existing.Dimensions = updated.Dimensions
	existing.ImageURL = updated.ImageURL
	existing.IsFeatured = updated.IsFeatured
	existing.UpdatedBy = updatedBy
	// Quantity is deliberately not touched here; it only moves through the
	// stock mutator so the ledger stays complete.

	existing.Category = nil
	existing.Supplier = nil
	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(id)
}

// ensureUniqueIdentity rejects SKU and barcode collisions with any product
// other than self.
func (s *CatalogService) ensureUniqueIdentity(product *model.Product, self uuid.UUID) error {
	if existing, err := s.productRepo.FindBySKU(product.SKU); err == nil && existing.ID != self {
		return ErrSKUExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if product.Barcode != nil && *product.Barcode != "" {
		if existing, err := s.productRepo.FindByBarcode(*product.Barcode); err == nil && existing.ID != self {
			return ErrBarcodeExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(id uuid.UUID, deletedBy string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.SoftDelete(id, deletedBy)
}

// SearchProducts runs the structured listing query. When a text query matches
// nothing literally, it falls back to tf-idf cosine similarity over all active
// products and serves pages from the ranked pool instead.
func (s *CatalogService) SearchProducts(filter repository.ProductFilter) (*ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 12
	}

	products, total, err := s.productRepo.Search(filter)
	if err != nil {
		return nil, err
	}

	if total == 0 && strings.TrimSpace(filter.Query) != "" {
		return s.fallbackSearch(filter)
	}

	return &ProductPage{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		PerPage:  filter.PerPage,
	}, nil
}

func (s *CatalogService) fallbackSearch(filter repository.ProductFilter) (*ProductPage, error) {
	corpus, err := s.productRepo.FindAllActive()
	if err != nil {
		return nil, err
	}

	page := &ProductPage{
		Page:     filter.Page,
		PerPage:  filter.PerPage,
		Fallback: true,
	}
	if len(corpus) == 0 {
		return page, nil
	}

	docs := make([]string, len(corpus))
	for i := range corpus {
		docs[i] = corpus[i].SearchText()
	}

	vectorizer := tfidf.New()
	vectorizer.Fit(docs)
	matches := vectorizer.Query(filter.Query, fallbackPoolSize)
	if len(matches) == 0 {
		return page, nil
	}

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = corpus[m.Index].ID
	}

	// Re-fetch with relations preloaded, then restore similarity order: the
	// database returns rows in arbitrary order.
	fetched, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}
	ranked := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}

	page.Total = int64(len(ranked))
	start := (filter.Page - 1) * filter.PerPage
	if start < len(ranked) {
		end := start + filter.PerPage
		if end > len(ranked) {
			end = len(ranked)
		}
		page.Products = ranked[start:end]
	}
	return page, nil
}

// QuickSearch powers autocomplete: literal match only, small and fast.
func (s *CatalogService) QuickSearch(query string, limit int) ([]model.Product, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	return s.productRepo.QuickSearch(query, limit)
}

func (s *CatalogService) LowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

// CategorySuggestion is an advisory category guess for a new product.
type CategorySuggestion struct {
	Category model.Category `json:"category"`
	Score    float64        `json:"score"`
}

// SuggestCategory matches product text against category names and
// descriptions. Advisory only: a weak best match yields no suggestion.
func (s *CatalogService) SuggestCategory(name, description string) (*CategorySuggestion, error) {
	categories, err := s.categoryRepo.FindAllActive()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, nil
	}

	docs := make([]string, len(categories))
	for i, c := range categories {
		docs[i] = c.SearchText()
	}

	vectorizer := tfidf.New()
	vectorizer.Fit(docs)
	best, ok := vectorizer.BestMatch(name + " " + description)
	if !ok || best.Score <= suggestionThreshold {
		return nil, nil
	}
	return &CategorySuggestion{Category: categories[best.Index], Score: best.Score}, nil
}

// ---- Categories ----

func (s *CatalogService) CreateCategory(category *model.Category, createdBy string) error {
	if existing, err := s.categoryRepo.FindByName(category.Name); err == nil && existing != nil {
		return ErrCategoryNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	category.CreatedBy = createdBy
	category.IsActive = true
	return s.categoryRepo.Create(category)
}

func (s *CatalogService) UpdateCategory(id uuid.UUID, updated *model.Category, updatedBy string) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if other, err := s.categoryRepo.FindByName(updated.Name); err == nil && other.ID != id {
		return nil, ErrCategoryNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Icon = updated.Icon
	existing.Color = updated.Color
	existing.UpdatedBy = updatedBy
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CatalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAllActive()
}

// DeleteCategory refuses to remove a category that still has active products;
// they must be reassigned or deleted first.
func (s *CatalogService) DeleteCategory(id uuid.UUID, deletedBy string) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	count, err := s.productRepo.CountActiveByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}
	return s.categoryRepo.SoftDelete(id, deletedBy)
}

// ---- Suppliers ----

func (s *CatalogService) CreateSupplier(supplier *model.Supplier, createdBy string) error {
	if existing, err := s.supplierRepo.FindByName(supplier.Name); err == nil && existing != nil {
		return ErrSupplierNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	supplier.CreatedBy = createdBy
	supplier.IsActive = true
	return s.supplierRepo.Create(supplier)
}

func (s *CatalogService) UpdateSupplier(id uuid.UUID, updated *model.Supplier, updatedBy string) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	if other, err := s.supplierRepo.FindByName(updated.Name); err == nil && other.ID != id {
		return nil, ErrSupplierNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	existing.Name = updated.Name
	existing.ContactPerson = updated.ContactPerson
	existing.Email = updated.Email
	existing.Phone = updated.Phone
	existing.Address = updated.Address
	existing.Website = updated.Website
	existing.CreditLimit = updated.CreditLimit
	existing.OutstandingBalance = updated.OutstandingBalance
	existing.Rating = updated.Rating
	existing.UpdatedBy = updatedBy
	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CatalogService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAllActive()
}

func (s *CatalogService) DeleteSupplier(id uuid.UUID, deletedBy string) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}
	count, err := s.productRepo.CountActiveBySupplier(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSupplierHasProducts
	}
	return s.supplierRepo.SoftDelete(id, deletedBy)
}
