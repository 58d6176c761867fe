package repository

import (
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementData aggregates ledger quantities per month for chart data.
type StockMovementData struct {
	Month    string `json:"month"`
	StockIn  int    `json:"stock_in"`
	StockOut int    `json:"stock_out"`
}

// DashboardStats is the overview block on the dashboard.
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	TotalCategories int64   `json:"total_categories"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalValue      float64 `json:"total_value"`
}

// CategoryDistribution is one slice of the category chart.
type CategoryDistribution struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type TransactionRepository interface {
	FindAll(page, perPage int) ([]model.InventoryTransaction, int64, error)
	FindByID(id uuid.UUID) (*model.InventoryTransaction, error)
	FindByProduct(productID uuid.UUID, limit int) ([]model.InventoryTransaction, error)
	FindBetween(start, end time.Time) ([]model.InventoryTransaction, error)
	GetStockMovement(start, end time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
	GetCategoryDistribution() ([]CategoryDistribution, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll(page, perPage int) ([]model.InventoryTransaction, int64, error) {
	var total int64
	if err := r.db.Model(&model.InventoryTransaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []model.InventoryTransaction
	err := r.db.Preload("Product").Preload("User").
		Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.InventoryTransaction, error) {
	var transaction model.InventoryTransaction
	err := r.db.Preload("Product").Preload("User").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.InventoryTransaction, error) {
	var transactions []model.InventoryTransaction
	err := r.db.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindBetween(start, end time.Time) ([]model.InventoryTransaction, error) {
	var transactions []model.InventoryTransaction
	err := r.db.Preload("Product").Preload("User").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(start, end time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.InventoryTransaction{}).
		Select(`
			to_char(created_at, 'YYYY-MM') as month,
			COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE 0 END), 0) as stock_in,
			COALESCE(SUM(CASE WHEN type = 'out' THEN quantity ELSE 0 END), 0) as stock_out
		`).
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("to_char(created_at, 'YYYY-MM')").
		Order("month ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Month, &data.StockIn, &data.StockOut); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).
		Where("is_active = ?", true).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Category{}).
		Where("is_active = ?", true).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("is_active = ? AND quantity <= reorder_level", true).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(quantity * cost_price), 0)").
		Scan(&stats.TotalValue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *transactionRepo) GetCategoryDistribution() ([]CategoryDistribution, error) {
	var results []CategoryDistribution
	err := r.db.Model(&model.Category{}).
		Select("categories.name, COUNT(products.id) as count").
		Joins("JOIN products ON products.category_id = categories.id AND products.is_active = true").
		Group("categories.id, categories.name").
		Scan(&results).Error
	return results, err
}
