// Package policy centralizes the role-based access rules. Handlers call
// these predicates explicitly after the auth middleware has established
// the caller's identity; reads never go through policy, they are public.
package policy

import "reviewhub/internal/http-api/models"

// IsAdmin reports whether the role carries admin privileges.
func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// IsModerator reports whether the role is moderator or above.
func IsModerator(role string) bool {
	return role == models.RoleModerator || role == models.RoleAdmin
}

// CanManageCatalog gates category, genre and title mutation.
func CanManageCatalog(role string) bool {
	return IsAdmin(role)
}

// CanManageUsers gates the /users collection.
func CanManageUsers(role string) bool {
	return IsAdmin(role)
}

// CanModifyAuthored gates review and comment mutation: the author may
// touch their own resource, moderators and admins may touch any.
func CanModifyAuthored(actorID, authorID, role string) bool {
	if actorID != "" && actorID == authorID {
		return true
	}
	return IsModerator(role)
}
