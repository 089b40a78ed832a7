package command

import (
	"errors"
	"testing"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

func TestCreateProduct(t *testing.T) {
	repo := newMockProductRepo()
	h := NewCreateProductHandler(repo)

	product, err := h.Handle(CreateProductCommand{
		Principal:    admin,
		Name:         "Hex bolt M8",
		Category:     "fasteners",
		Stock:        100,
		ReorderPoint: 20,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if product.ID == 0 {
		t.Error("expected assigned product id")
	}
	if product.Stock != 100 {
		t.Errorf("expected initial stock 100, got %d", product.Stock)
	}
}

func TestCreateProduct_OnlyAdmin(t *testing.T) {
	repo := newMockProductRepo()
	h := NewCreateProductHandler(repo)

	for _, p := range []authz.Principal{manager, staff} {
		_, err := h.Handle(CreateProductCommand{Principal: p, Name: "x"})
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got %v", p.Role, err)
		}
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	repo := newMockProductRepo()
	h := NewCreateProductHandler(repo)

	tests := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"missing name", CreateProductCommand{Principal: admin}},
		{"negative stock", CreateProductCommand{Principal: admin, Name: "x", Stock: -1}},
		{"negative reorder point", CreateProductCommand{Principal: admin, Name: "x", ReorderPoint: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.Handle(tt.cmd); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Name: "old", Category: "misc", Stock: 5, ReorderPoint: 2})
	h := NewUpdateProductHandler(repo)

	name := "new name"
	reorder := 10
	product, err := h.Handle(UpdateProductCommand{
		Principal:    admin,
		ProductID:    1,
		Name:         &name,
		ReorderPoint: &reorder,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if product.Name != "new name" || product.ReorderPoint != 10 {
		t.Errorf("unexpected product: %+v", product)
	}
	if product.Category != "misc" {
		t.Errorf("untouched field changed: %q", product.Category)
	}
	// Stock is ledger-owned and must survive catalog updates untouched.
	if product.Stock != 5 {
		t.Errorf("catalog update changed stock: %d", product.Stock)
	}
}

func TestUpdateProduct_ManagerForbidden(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Name: "old"})
	h := NewUpdateProductHandler(repo)

	name := "x"
	_, err := h.Handle(UpdateProductCommand{Principal: manager, ProductID: 1, Name: &name})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := newMockProductRepo()
	h := NewUpdateProductHandler(repo)

	_, err := h.Handle(UpdateProductCommand{Principal: admin, ProductID: 404})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Name: "gone"})
	h := NewDeleteProductHandler(repo)

	if err := h.Handle(DeleteProductCommand{Principal: admin, ProductID: 1}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := h.Handle(DeleteProductCommand{Principal: admin, ProductID: 1}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}

	if err := h.Handle(DeleteProductCommand{Principal: staff, ProductID: 2}); !errors.Is(err, authz.ErrForbidden) {
		t.Errorf("expected ErrForbidden for staff, got %v", err)
	}
}
