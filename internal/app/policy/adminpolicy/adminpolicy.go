// Package adminpolicy decides what an admin caller may do to admin
// accounts and moderated resources. Handlers resolve the caller and
// target documents, then ask the policy; the policy itself never
// touches the database, which keeps it testable in isolation.
package adminpolicy

import "github.com/verdantapp/verdant/internal/domain/models"

// CanCreateAdmin reports whether the caller may create admin accounts.
// Only superAdmins can.
func CanCreateAdmin(caller *models.Admin) bool {
	return caller != nil && caller.IsSuperAdmin()
}

// CanModifyAdmin reports whether the caller may update the target's
// profile or password. Any admin may modify a regular admin; touching a
// superAdmin record requires the caller to be a superAdmin too.
func CanModifyAdmin(caller, target *models.Admin) bool {
	if caller == nil || target == nil {
		return false
	}
	if target.IsSuperAdmin() {
		return caller.IsSuperAdmin()
	}
	return true
}

// CanDeleteAdmin reports whether the caller may delete the target.
// A superAdmin target requires a superAdmin caller; otherwise the
// caller must be a superAdmin or be deleting their own record.
func CanDeleteAdmin(caller, target *models.Admin) bool {
	if caller == nil || target == nil {
		return false
	}
	if target.IsSuperAdmin() {
		return caller.IsSuperAdmin()
	}
	if caller.IsSuperAdmin() {
		return true
	}
	return caller.ID == target.ID
}

// CanModerate reports whether the caller may run destructive moderation
// (squad deletion, product deletion). superAdmin only.
func CanModerate(caller *models.Admin) bool {
	return caller != nil && caller.IsSuperAdmin()
}
