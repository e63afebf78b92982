package domain

// ScopeKind enumerates how wide a caller's read/write access is within a tenant.
type ScopeKind string

const (
	// ScopeSelf restricts access to records owned by the caller.
	ScopeSelf ScopeKind = "SELF"
	// ScopeCostCenters grants access to the caller's own records plus records
	// in the cost centers the caller manages.
	ScopeCostCenters ScopeKind = "COST_CENTERS"
	// ScopeTenantWide grants access to every record within the tenant.
	ScopeTenantWide ScopeKind = "TENANT_WIDE"
)

// AccessScope is computed once per request from the caller's role and their
// cost-center assignments, and passed into repository queries as a typed
// filter. Tenant isolation is always applied on top of the scope.
type AccessScope struct {
	Kind          ScopeKind
	UserID        string
	CostCenterIDs []string // populated for ScopeCostCenters
}

// ScopeForUser derives the access scope for a user. Managers are scoped to
// their own records plus the cost centers explicitly assigned to them.
func ScopeForUser(user User, managedCostCenterIDs []string) AccessScope {
	switch user.Role {
	case RoleAdmin:
		return AccessScope{Kind: ScopeTenantWide, UserID: user.UserID}
	case RoleManager:
		return AccessScope{Kind: ScopeCostCenters, UserID: user.UserID, CostCenterIDs: managedCostCenterIDs}
	default:
		return AccessScope{Kind: ScopeSelf, UserID: user.UserID}
	}
}

// Allows reports whether a record owned by ownerID in costCenterID is visible
// under the scope.
func (s AccessScope) Allows(ownerID, costCenterID string) bool {
	switch s.Kind {
	case ScopeTenantWide:
		return true
	case ScopeCostCenters:
		if s.UserID == ownerID {
			return true
		}
		for _, id := range s.CostCenterIDs {
			if id == costCenterID {
				return true
			}
		}
		return false
	default:
		return s.UserID == ownerID
	}
}
