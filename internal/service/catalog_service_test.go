package service

import (
	"errors"
	"testing"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeProductRepo embeds the interface and overrides only what a test needs;
// calling anything else panics, which is what we want.
type fakeProductRepo struct {
	repository.ProductRepository
	products       []model.Product
	activeByCat    map[uuid.UUID]int64
	searchFn       func(repository.ProductFilter) ([]model.Product, int64, error)
	softDeleted    []uuid.UUID
	findByIDsOrder func([]uuid.UUID) []model.Product
}

func (f *fakeProductRepo) Search(filter repository.ProductFilter) ([]model.Product, int64, error) {
	if f.searchFn != nil {
		return f.searchFn(filter)
	}
	return nil, 0, nil
}

func (f *fakeProductRepo) FindAllActive() ([]model.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	if f.findByIDsOrder != nil {
		return f.findByIDsOrder(ids), nil
	}
	byID := make(map[uuid.UUID]model.Product)
	for _, p := range f.products {
		byID[p.ID] = p
	}
	var out []model.Product
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) CountActiveByCategory(id uuid.UUID) (int64, error) {
	return f.activeByCat[id], nil
}

func (f *fakeProductRepo) SoftDelete(id uuid.UUID, _ string) error {
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

type fakeCategoryRepo struct {
	repository.CategoryRepository
	categories  []model.Category
	softDeleted []uuid.UUID
}

func (f *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) FindAllActive() ([]model.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) SoftDelete(id uuid.UUID, _ string) error {
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func testProduct(name, sku, description string) model.Product {
	p := model.Product{Name: name, SKU: sku, Description: description, IsActive: true}
	p.ID = uuid.New()
	return p
}

func newTestCatalog(productRepo *fakeProductRepo, categoryRepo *fakeCategoryRepo) *CatalogService {
	if categoryRepo == nil {
		categoryRepo = &fakeCategoryRepo{}
	}
	return NewCatalogService(productRepo, categoryRepo, nil, zap.NewNop())
}

func TestSearchFallsBackOnZeroLiteralMatches(t *testing.T) {
	mouse := testProduct("Wireless Mouse Logitech", "WM-001", "2.4ghz wireless mouse with usb receiver")
	keyboard := testProduct("Mechanical Keyboard", "KB-001", "rgb mechanical gaming keyboard")
	drive := testProduct("USB Flash Drive 32GB", "FD-032", "portable usb storage")

	repo := &fakeProductRepo{products: []model.Product{drive, keyboard, mouse}}
	repo.searchFn = func(repository.ProductFilter) ([]model.Product, int64, error) {
		return nil, 0, nil // literal search finds nothing
	}

	page, err := newTestCatalog(repo, nil).SearchProducts(repository.ProductFilter{
		Query: "wireles mouse", Page: 1, PerPage: 12,
	})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if !page.Fallback {
		t.Fatal("expected fallback search to be used")
	}
	if len(page.Products) == 0 {
		t.Fatal("fallback returned nothing")
	}
	if page.Products[0].ID != mouse.ID {
		t.Errorf("best match: got %q, want %q", page.Products[0].Name, mouse.Name)
	}
}

func TestSearchFallbackPreservesSimilarityOrder(t *testing.T) {
	mouse := testProduct("Wireless Mouse", "WM-001", "wireless mouse")
	pad := testProduct("Mouse Pad", "MP-001", "cloth mouse pad")

	repo := &fakeProductRepo{products: []model.Product{pad, mouse}}
	repo.searchFn = func(repository.ProductFilter) ([]model.Product, int64, error) {
		return nil, 0, nil
	}
	// Return rows reversed relative to the requested rank order, like a
	// database would be free to do.
	repo.findByIDsOrder = func(ids []uuid.UUID) []model.Product {
		byID := map[uuid.UUID]model.Product{mouse.ID: mouse, pad.ID: pad}
		out := make([]model.Product, 0, len(ids))
		for i := len(ids) - 1; i >= 0; i-- {
			out = append(out, byID[ids[i]])
		}
		return out
	}

	page, err := newTestCatalog(repo, nil).SearchProducts(repository.ProductFilter{
		Query: "wireless mouse", Page: 1, PerPage: 12,
	})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(page.Products) < 2 {
		t.Fatalf("expected both products, got %d", len(page.Products))
	}
	if page.Products[0].ID != mouse.ID {
		t.Errorf("rank order lost after re-fetch: first is %q", page.Products[0].Name)
	}
}

func TestSearchNoFallbackWithoutQuery(t *testing.T) {
	repo := &fakeProductRepo{}
	called := false
	repo.searchFn = func(repository.ProductFilter) ([]model.Product, int64, error) {
		called = true
		return nil, 0, nil
	}

	page, err := newTestCatalog(repo, nil).SearchProducts(repository.ProductFilter{Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if !called {
		t.Fatal("structured search not executed")
	}
	if page.Fallback {
		t.Error("fallback used for an empty query")
	}
}

func TestSearchLiteralHitSkipsFallback(t *testing.T) {
	mouse := testProduct("Wireless Mouse", "WM-001", "")
	repo := &fakeProductRepo{}
	repo.searchFn = func(repository.ProductFilter) ([]model.Product, int64, error) {
		return []model.Product{mouse}, 1, nil
	}

	page, err := newTestCatalog(repo, nil).SearchProducts(repository.ProductFilter{
		Query: "mouse", Page: 1, PerPage: 12,
	})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if page.Fallback {
		t.Error("fallback used despite literal matches")
	}
	if page.Total != 1 || len(page.Products) != 1 {
		t.Errorf("got total=%d len=%d", page.Total, len(page.Products))
	}
}

func TestDeleteCategoryBlockedByActiveProducts(t *testing.T) {
	category := model.Category{Name: "Peripherals"}
	category.ID = uuid.New()

	categoryRepo := &fakeCategoryRepo{categories: []model.Category{category}}
	productRepo := &fakeProductRepo{activeByCat: map[uuid.UUID]int64{category.ID: 4}}

	err := newTestCatalog(productRepo, categoryRepo).DeleteCategory(category.ID, "admin")
	if !errors.Is(err, ErrCategoryHasProducts) {
		t.Fatalf("expected ErrCategoryHasProducts, got %v", err)
	}
	if len(categoryRepo.softDeleted) != 0 {
		t.Error("category was deleted despite active products")
	}
}

func TestDeleteCategoryWhenEmpty(t *testing.T) {
	category := model.Category{Name: "Obsolete"}
	category.ID = uuid.New()

	categoryRepo := &fakeCategoryRepo{categories: []model.Category{category}}
	productRepo := &fakeProductRepo{activeByCat: map[uuid.UUID]int64{}}

	if err := newTestCatalog(productRepo, categoryRepo).DeleteCategory(category.ID, "admin"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if len(categoryRepo.softDeleted) != 1 || categoryRepo.softDeleted[0] != category.ID {
		t.Error("category was not soft deleted")
	}
}

func TestSuggestCategoryThreshold(t *testing.T) {
	peripherals := model.Category{Name: "Computer Peripherals", Description: "mice keyboards monitors webcams"}
	peripherals.ID = uuid.New()
	food := model.Category{Name: "Canned Goods", Description: "canned food preserves"}
	food.ID = uuid.New()

	categoryRepo := &fakeCategoryRepo{categories: []model.Category{food, peripherals}}
	svc := newTestCatalog(&fakeProductRepo{}, categoryRepo)

	suggestion, err := svc.SuggestCategory("Wireless Mouse", "optical mouse for computer use")
	if err != nil {
		t.Fatalf("SuggestCategory: %v", err)
	}
	if suggestion == nil {
		t.Fatal("expected a suggestion")
	}
	if suggestion.Category.ID != peripherals.ID {
		t.Errorf("suggested %q, want %q", suggestion.Category.Name, peripherals.Name)
	}

	// Totally unrelated text yields no suggestion rather than a weak one.
	suggestion, err = svc.SuggestCategory("Garden Hose", "rubber watering hose")
	if err != nil {
		t.Fatalf("SuggestCategory: %v", err)
	}
	if suggestion != nil {
		t.Errorf("expected no suggestion, got %q (%.3f)", suggestion.Category.Name, suggestion.Score)
	}
}
