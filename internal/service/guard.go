package service

import (
	"github.com/Tomlord1122/tenant-backend/internal/domain"
)

// RequireAdmin fails with a forbidden error unless u is an ADMIN.
func RequireAdmin(u *domain.User) error {
	if u == nil || !u.IsAdmin() {
		return domain.Forbidden("Insufficient permissions. ADMIN role required.")
	}
	return nil
}

// RequireSameOrganization fails with a forbidden error when orgID is not
// u's organization. It must run before any operation that takes an
// organization id from the caller.
func RequireSameOrganization(u *domain.User, orgID uint) error {
	if u == nil || u.OrganizationID != orgID {
		return domain.Forbidden("Access denied. You can only access your organization's data.")
	}
	return nil
}
