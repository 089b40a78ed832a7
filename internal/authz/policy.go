package authz

// Operation is one of the finite set of actions the capability table covers.
type Operation string

const (
	OpCreateProduct     Operation = "create-product"
	OpReadProduct       Operation = "read-product"
	OpUpdateProduct     Operation = "update-product"
	OpDeleteProduct     Operation = "delete-product"
	OpCreateTransaction Operation = "create-transaction"
	OpReadTransaction   Operation = "read-transaction"
)

// capabilities is the single declarative policy table. Only admins mutate
// the product catalog; managers and admins record stock movements; every
// authenticated role reads.
var capabilities = map[string]map[Operation]bool{
	RoleAdmin: {
		OpCreateProduct:     true,
		OpReadProduct:       true,
		OpUpdateProduct:     true,
		OpDeleteProduct:     true,
		OpCreateTransaction: true,
		OpReadTransaction:   true,
	},
	RoleManager: {
		OpReadProduct:       true,
		OpCreateTransaction: true,
		OpReadTransaction:   true,
	},
	RoleStaff: {
		OpReadProduct:     true,
		OpReadTransaction: true,
	},
}

// Authorize reports whether the principal's role permits the operation.
// Unknown roles and unknown operations deny.
func Authorize(p Principal, op Operation) bool {
	return capabilities[p.Role][op]
}

// Require returns ErrForbidden unless the principal may perform op.
func Require(p Principal, op Operation) error {
	if !Authorize(p, op) {
		return ErrForbidden
	}
	return nil
}
