package http

import (
	"net/http"
	"testing"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

func TestMovementLabel(t *testing.T) {
	tests := []struct {
		name         string
		movementType string
		want         string
	}{
		{"stock in", "in", "in"},
		{"stock out", "out", "out"},
		{"empty", "", "invalid"},
		{"unknown type", "transfer", "invalid"},
		{"wrong case", "OUT", "invalid"},
		{"arbitrary input", "in'; DROP TABLE products", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := movementLabel(tt.movementType); got != tt.want {
				t.Errorf("movementLabel(%q) = %q, want %q", tt.movementType, got, tt.want)
			}
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing credential", authz.ErrMissingCredential, http.StatusUnauthorized},
		{"invalid credential", authz.ErrInvalidCredential, http.StatusUnauthorized},
		{"forbidden", authz.ErrForbidden, http.StatusForbidden},
		{"product not found", domain.ErrProductNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"duplicate request", domain.ErrDuplicateRequest, http.StatusConflict},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusBadRequest},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"invalid movement type", domain.ErrInvalidMovementType, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorStatus(tt.err); got != tt.want {
				t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
