package authz

import "github.com/tair/inventory-ledger/pkg/auth"

// Resolve turns a verified claim set into a Principal. Signature and expiry
// checks already happened in pkg/auth; this only validates structural
// completeness. A nil claim set means no credential was presented.
func Resolve(claims *auth.Claims) (Principal, error) {
	if claims == nil {
		return Principal{}, ErrMissingCredential
	}
	if claims.UserID == 0 || claims.Role == "" {
		return Principal{}, ErrInvalidCredential
	}

	return Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
