package repository

import (
	"strings"

	"github.com/Innie12/Inventory-Management-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter describes the structured product listing query.
type ProductFilter struct {
	Query       string
	CategoryID  *uuid.UUID
	SupplierID  *uuid.UUID
	StockStatus string // in_stock, low_stock, out_of_stock
	SortBy      string // newest, oldest, name_asc, name_desc, quantity_asc, quantity_desc, price_asc, price_desc
	Page        int
	PerPage     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	FindAllActive() ([]model.Product, error)
	FindLowStock() ([]model.Product, error)
	Search(filter ProductFilter) ([]model.Product, int64, error)
	QuickSearch(q string, limit int) ([]model.Product, error)
	CountActiveByCategory(categoryID uuid.UUID) (int64, error)
	CountActiveBySupplier(supplierID uuid.UUID) (int64, error)
	UpdateStock(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error
	SoftDelete(id uuid.UUID, deletedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Supplier").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "barcode = ?", barcode).Error
	return &product, err
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Supplier").
		Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Supplier").
		Where("is_active = ?", true).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("is_active = ? AND quantity <= reorder_level", true).
		Order("quantity ASC").Find(&products).Error
	return products, err
}

// Search runs the structured filter query with pagination. The tf-idf
// fallback is layered on top of this in the catalog service when it returns
// zero rows for a text query.
func (r *productRepo) Search(filter ProductFilter) ([]model.Product, int64, error) {
	q := r.db.Model(&model.Product{}).Where("is_active = ?", true)

	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + s + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ? OR description ILIKE ?",
			like, like, like, like)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SupplierID != nil {
		q = q.Where("supplier_id = ?", *filter.SupplierID)
	}
	switch filter.StockStatus {
	case "in_stock":
		q = q.Where("quantity > reorder_level")
	case "low_stock":
		q = q.Where("quantity <= reorder_level AND quantity > 0")
	case "out_of_stock":
		q = q.Where("quantity = 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case "name_asc":
		q = q.Order("name ASC")
	case "name_desc":
		q = q.Order("name DESC")
	case "quantity_asc":
		q = q.Order("quantity ASC")
	case "quantity_desc":
		q = q.Order("quantity DESC")
	case "price_asc":
		q = q.Order("selling_price ASC")
	case "price_desc":
		q = q.Order("selling_price DESC")
	case "oldest":
		q = q.Order("created_at ASC")
	default: // newest
		q = q.Order("created_at DESC")
	}

	var products []model.Product
	err := q.Preload("Category").Preload("Supplier").
		Limit(filter.PerPage).Offset((filter.Page - 1) * filter.PerPage).
		Find(&products).Error
	return products, total, err
}

// QuickSearch powers the autocomplete endpoint: literal match only, capped.
func (r *productRepo) QuickSearch(q string, limit int) ([]model.Product, error) {
	like := "%" + q + "%"
	var products []model.Product
	err := r.db.Where("is_active = ?", true).
		Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", like, like, like).
		Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) CountActiveByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	return count, err
}

func (r *productRepo) CountActiveBySupplier(supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("supplier_id = ? AND is_active = ?", supplierID, true).
		Count(&count).Error
	return count, err
}

// UpdateStock takes *gorm.DB (tx) so it can run inside a transaction.
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		}).Error
}

// SoftDelete flips the active flag; rows are never physically removed so that
// ledger entries and audit logs keep valid references.
func (r *productRepo) SoftDelete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": deletedBy,
		}).Error
}
