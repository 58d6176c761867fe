package service

import (
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
)

// DashboardData is everything the dashboard screen renders in one payload.
type DashboardData struct {
	Stats                *repository.DashboardStats        `json:"stats"`
	StockMovement        []repository.StockMovementData    `json:"stock_movement"`
	CategoryDistribution []repository.CategoryDistribution `json:"category_distribution"`
	LowStockProducts     []model.Product                   `json:"low_stock_products"`
	RecentTransactions   []model.InventoryTransaction      `json:"recent_transactions"`
}

type DashboardService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
	}
}

// Overview assembles the dashboard in one call. Movement covers the trailing
// six months including the current one.
func (s *DashboardService) Overview() (*DashboardData, error) {
	stats, err := s.transactionRepo.GetDashboardStats()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	movement, err := s.transactionRepo.GetStockMovement(start, now)
	if err != nil {
		return nil, err
	}

	distribution, err := s.transactionRepo.GetCategoryDistribution()
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, err
	}

	recent, _, err := s.transactionRepo.FindAll(1, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Stats:                stats,
		StockMovement:        movement,
		CategoryDistribution: distribution,
		LowStockProducts:     lowStock,
		RecentTransactions:   recent,
	}, nil
}
