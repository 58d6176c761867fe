package service

import (
	"errors"
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrZeroDelta       = errors.New("stock adjustment requires a non-zero delta")
	ErrProductInactive = errors.New("product is inactive")
)

// AdjustStockInput is one requested quantity change. Delta is signed: positive
// receives stock, negative issues it.
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     int
	Reference string
	Remarks   string
}

// StockService is the only write path for product quantities. Every change
// runs in one transaction that locks the product row, appends a ledger entry
// and, when the result is at or below the reorder level, fans a low-stock
// notification out to every active admin.
type StockService struct {
	db              *gorm.DB
	productRepo     repository.ProductRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	hub             *ws.Hub
	log             *zap.Logger
}

func NewStockService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	hub *ws.Hub,
	log *zap.Logger,
) *StockService {
	return &StockService{
		db:              db,
		productRepo:     productRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		hub:             hub,
		log:             log,
	}
}

// buildLedgerEntry derives the immutable ledger row from the product's current
// quantity and the signed delta: direction from the sign, magnitude absolute,
// with before/after snapshots.
func buildLedgerEntry(product *model.Product, userID uuid.UUID, in AdjustStockInput) *model.InventoryTransaction {
	txType := model.TxIn
	magnitude := in.Delta
	if in.Delta < 0 {
		txType = model.TxOut
		magnitude = -in.Delta
	}
	return &model.InventoryTransaction{
		ProductID:      product.ID,
		UserID:         userID,
		Type:           txType,
		Quantity:       magnitude,
		QuantityBefore: product.Quantity,
		QuantityAfter:  product.Quantity + in.Delta,
		Reference:      in.Reference,
		Remarks:        in.Remarks,
	}
}

// Adjust applies one signed quantity change atomically. A zero delta is
// rejected before anything is touched. The quantity is allowed to go negative;
// oversold stock still shows up honestly in the ledger.
func (s *StockService) Adjust(in AdjustStockInput, actor *model.User) (*model.InventoryTransaction, error) {
	if in.Delta == 0 {
		return nil, ErrZeroDelta
	}

	var (
		entry   *model.InventoryTransaction
		product model.Product
		lowHit  bool
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Lock the product row so concurrent adjustments serialize.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", in.ProductID).Error; err != nil {
			return err
		}
		if !product.IsActive {
			return ErrProductInactive
		}

		// 2. Append the ledger entry with before/after snapshots.
		entry = buildLedgerEntry(&product, actor.ID, in)
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		// 3. Persist the new quantity.
		if err := s.productRepo.UpdateStock(tx, product.ID, entry.QuantityAfter, actor.Username); err != nil {
			return err
		}
		product.Quantity = entry.QuantityAfter

		// 4. Low-stock fan-out inside the same transaction: either the
		// adjustment and its alerts both land, or neither does.
		if product.IsLowStock() {
			lowHit = true
			admins, err := s.userRepo.FindActiveAdmins(tx)
			if err != nil {
				return err
			}
			alerts := BuildLowStockAlerts(&product, admins)
			if len(alerts) > 0 {
				if err := tx.Create(&alerts).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Realtime push happens strictly after commit.
	if s.hub != nil {
		s.hub.BroadcastEvent("stock_updated", map[string]interface{}{
			"product_id": product.ID,
			"sku":        product.SKU,
			"name":       product.Name,
			"quantity":   product.Quantity,
			"type":       entry.Type,
			"delta":      in.Delta,
			"at":         time.Now(),
		})
		if lowHit {
			s.hub.BroadcastEvent("low_stock_alert", map[string]interface{}{
				"product_id":    product.ID,
				"sku":           product.SKU,
				"name":          product.Name,
				"quantity":      product.Quantity,
				"reorder_level": product.ReorderLevel,
			})
		}
	}

	return entry, nil
}

// History returns the most recent ledger entries for one product.
func (s *StockService) History(productID uuid.UUID, limit int) ([]model.InventoryTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.transactionRepo.FindByProduct(productID, limit)
}

// ListTransactions pages through the full ledger, newest first.
func (s *StockService) ListTransactions(page, perPage int) ([]model.InventoryTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return s.transactionRepo.FindAll(page, perPage)
}
