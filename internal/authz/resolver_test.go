package authz

import (
	"errors"
	"testing"

	"github.com/tair/inventory-ledger/pkg/auth"
)

func TestResolve_Success(t *testing.T) {
	p, err := Resolve(&auth.Claims{UserID: 42, Username: "amira", Role: RoleManager})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if p.UserID != 42 || p.Username != "amira" || p.Role != RoleManager {
		t.Errorf("unexpected principal: %+v", p)
	}
}

func TestResolve_MissingCredential(t *testing.T) {
	if _, err := Resolve(nil); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
}

func TestResolve_MalformedClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims *auth.Claims
	}{
		{"missing identity", &auth.Claims{Role: RoleAdmin}},
		{"missing role", &auth.Claims{UserID: 7, Username: "kay"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.claims); !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("expected ErrInvalidCredential, got %v", err)
			}
		})
	}
}

// Unknown role values resolve but deny everything downstream; resolution
// checks structure, authorization fails closed.
func TestResolve_UnknownRoleDeniesDownstream(t *testing.T) {
	p, err := Resolve(&auth.Claims{UserID: 5, Username: "eve", Role: "auditor"})
	if err != nil {
		t.Fatalf("expected structural resolve to pass, got %v", err)
	}

	for _, op := range allOperations {
		if Authorize(p, op) {
			t.Errorf("unresolved role allowed %s", op)
		}
	}
}
