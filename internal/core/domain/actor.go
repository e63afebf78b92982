package domain

// Actor identifies the authenticated caller of a service operation. It is
// extracted from the JWT claims by the auth middleware, once per request.
type Actor struct {
	TenantID string
	UserID   string
	Role     UserRole
}

// IsApprover reports whether the actor may approve, reject or adjust.
func (a Actor) IsApprover() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}
