package domain

import (
	"errors"
	"testing"
)

func TestApplyMovement_StockIn(t *testing.T) {
	product := Product{ID: 1, Name: "Widget", Stock: 10, ReorderPoint: 5}

	updated, txn, err := ApplyMovement(product, MovementIn, 3)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if updated.Stock != 13 {
		t.Errorf("expected stock 13, got %d", updated.Stock)
	}
	if txn.ProductID != 1 {
		t.Errorf("expected product id 1, got %d", txn.ProductID)
	}
	if txn.Type != MovementIn {
		t.Errorf("expected type %q, got %q", MovementIn, txn.Type)
	}
	if txn.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", txn.Quantity)
	}
	if txn.ID == "" {
		t.Error("expected non-empty transaction id")
	}
	if txn.CreatedAt.IsZero() {
		t.Error("expected transaction timestamp to be set")
	}
}

func TestApplyMovement_StockOut(t *testing.T) {
	product := Product{ID: 1, Stock: 10, ReorderPoint: 5}

	updated, txn, err := ApplyMovement(product, MovementOut, 3)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if updated.Stock != 7 {
		t.Errorf("expected stock 7, got %d", updated.Stock)
	}
	if txn.Type != MovementOut {
		t.Errorf("expected type %q, got %q", MovementOut, txn.Type)
	}
}

func TestApplyMovement_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		movement MovementType
		quantity int
		wantErr  error
	}{
		{"insufficient stock", 7, MovementOut, 8, ErrInsufficientStock},
		{"exact drain allowed", 7, MovementOut, 7, nil},
		{"zero quantity", 10, MovementIn, 0, ErrInvalidQuantity},
		{"negative quantity", 10, MovementOut, -4, ErrInvalidQuantity},
		{"unknown movement type", 10, MovementType("transfer"), 1, ErrInvalidMovementType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := Product{ID: 1, Stock: tt.stock}

			updated, txn, err := ApplyMovement(product, tt.movement, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}

			if err != nil {
				// Rejection is non-mutating: the caller's snapshot stays
				// untouched and no transaction is minted.
				if product.Stock != tt.stock {
					t.Errorf("snapshot mutated on rejection: %d", product.Stock)
				}
				if updated != (Product{}) || txn != (Transaction{}) {
					t.Error("rejected movement returned non-zero results")
				}
			}
		})
	}
}

// The ledger invariant: after any sequence of accepted movements, stock
// equals the net sum of recorded transaction quantities.
func TestApplyMovement_Invariant(t *testing.T) {
	product := Product{ID: 9, Stock: 0}

	movements := []struct {
		movement MovementType
		quantity int
	}{
		{MovementIn, 10}, {MovementOut, 4}, {MovementIn, 1},
		{MovementOut, 7}, {MovementOut, 3}, {MovementIn, 5},
	}

	var ledger []Transaction
	for _, m := range movements {
		updated, txn, err := ApplyMovement(product, m.movement, m.quantity)
		if err != nil {
			continue // rejected movements leave product and ledger untouched
		}
		product = updated
		ledger = append(ledger, txn)
	}

	net := 0
	for _, txn := range ledger {
		switch txn.Type {
		case MovementIn:
			net += txn.Quantity
		case MovementOut:
			net -= txn.Quantity
		}
	}

	if product.Stock != net {
		t.Errorf("invariant broken: stock=%d, ledger net=%d", product.Stock, net)
	}
	if product.Stock < 0 {
		t.Errorf("stock went negative: %d", product.Stock)
	}
}
