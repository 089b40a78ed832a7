// Package authz decides, per operation, whether an authenticated principal
// is allowed to perform it. Capabilities are a pure function of the
// principal's role; nothing in this package reads or writes state.
package authz

// Roles known to the capability table. Any other role value denies.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Principal is the authenticated identity acting on a request. It is derived
// once from a verified claim set and treated as an immutable value for the
// remainder of the request.
type Principal struct {
	UserID   uint
	Username string
	Role     string
}
