package service

import (
	"errors"
	"testing"

	"github.com/Innie12/Inventory-Management-System/internal/model"

	"github.com/google/uuid"
)

func TestAdjustRejectsZeroDelta(t *testing.T) {
	// A zero delta fails before any dependency is touched, so nil deps are fine.
	s := NewStockService(nil, nil, nil, nil, nil, nil)

	_, err := s.Adjust(AdjustStockInput{ProductID: uuid.New(), Delta: 0}, &model.User{})
	if !errors.Is(err, ErrZeroDelta) {
		t.Fatalf("expected ErrZeroDelta, got %v", err)
	}
}

func TestBuildLedgerEntry(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name       string
		quantity   int
		delta      int
		wantType   model.TransactionType
		wantQty    int
		wantBefore int
		wantAfter  int
	}{
		{"receive stock", 10, 5, model.TxIn, 5, 10, 15},
		{"issue stock", 10, -3, model.TxOut, 3, 10, 7},
		{"issue below zero", 2, -5, model.TxOut, 5, 2, -3},
		{"receive from zero", 0, 20, model.TxIn, 20, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &model.Product{Quantity: tt.quantity}
			product.ID = productID

			entry := buildLedgerEntry(product, userID, AdjustStockInput{
				ProductID: productID,
				Delta:     tt.delta,
				Reference: "PO-001",
			})

			if entry.Type != tt.wantType {
				t.Errorf("type: got %s, want %s", entry.Type, tt.wantType)
			}
			if entry.Quantity != tt.wantQty {
				t.Errorf("quantity: got %d, want %d", entry.Quantity, tt.wantQty)
			}
			if entry.QuantityBefore != tt.wantBefore {
				t.Errorf("quantity_before: got %d, want %d", entry.QuantityBefore, tt.wantBefore)
			}
			if entry.QuantityAfter != tt.wantAfter {
				t.Errorf("quantity_after: got %d, want %d", entry.QuantityAfter, tt.wantAfter)
			}
			if entry.ProductID != productID || entry.UserID != userID {
				t.Error("entry does not reference product and user")
			}
			if entry.Reference != "PO-001" {
				t.Errorf("reference: got %q", entry.Reference)
			}
		})
	}
}

// The ledger magnitude is always positive regardless of direction; the sign
// lives in the type.
func TestLedgerMagnitudeAlwaysPositive(t *testing.T) {
	product := &model.Product{Quantity: 100}
	for _, delta := range []int{-250, -1, 1, 250} {
		entry := buildLedgerEntry(product, uuid.New(), AdjustStockInput{Delta: delta})
		if entry.Quantity <= 0 {
			t.Errorf("delta %d produced non-positive magnitude %d", delta, entry.Quantity)
		}
		if entry.QuantityAfter-entry.QuantityBefore != delta {
			t.Errorf("delta %d: after-before = %d", delta, entry.QuantityAfter-entry.QuantityBefore)
		}
	}
}
