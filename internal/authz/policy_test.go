package authz

import "testing"

var allOperations = []Operation{
	OpCreateProduct,
	OpReadProduct,
	OpUpdateProduct,
	OpDeleteProduct,
	OpCreateTransaction,
	OpReadTransaction,
}

func TestAuthorize_PolicyTable(t *testing.T) {
	// The full policy table: role -> operation -> allowed.
	want := map[string]map[Operation]bool{
		RoleAdmin: {
			OpCreateProduct: true, OpReadProduct: true, OpUpdateProduct: true,
			OpDeleteProduct: true, OpCreateTransaction: true, OpReadTransaction: true,
		},
		RoleManager: {
			OpCreateProduct: false, OpReadProduct: true, OpUpdateProduct: false,
			OpDeleteProduct: false, OpCreateTransaction: true, OpReadTransaction: true,
		},
		RoleStaff: {
			OpCreateProduct: false, OpReadProduct: true, OpUpdateProduct: false,
			OpDeleteProduct: false, OpCreateTransaction: false, OpReadTransaction: true,
		},
	}

	for role, ops := range want {
		for op, allowed := range ops {
			got := Authorize(Principal{UserID: 1, Role: role}, op)
			if got != allowed {
				t.Errorf("Authorize(%s, %s) = %v, want %v", role, op, got, allowed)
			}
		}
	}
}

func TestAuthorize_FailClosed(t *testing.T) {
	// Unknown roles deny every operation.
	for _, role := range []string{"", "superadmin", "ADMIN", "guest"} {
		for _, op := range allOperations {
			if Authorize(Principal{UserID: 1, Role: role}, op) {
				t.Errorf("unknown role %q allowed %s", role, op)
			}
		}
	}

	// Unknown operations deny for every role.
	for _, role := range []string{RoleAdmin, RoleManager, RoleStaff} {
		if Authorize(Principal{UserID: 1, Role: role}, Operation("drop-database")) {
			t.Errorf("role %s allowed unknown operation", role)
		}
	}
}

func TestRequire(t *testing.T) {
	staff := Principal{UserID: 3, Role: RoleStaff}

	if err := Require(staff, OpReadProduct); err != nil {
		t.Errorf("expected staff read-product allowed, got %v", err)
	}
	if err := Require(staff, OpCreateTransaction); err != ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
