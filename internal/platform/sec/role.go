// Copyright (c) 2026 Gamedex. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to a user account.
// Roles are stored as integers 1-4 and form a strict hierarchy.
type Role int

const (
	// Read-only catalog access
	RoleViewer Role = 1

	// Can create and update catalog entries
	RoleEditor Role = 2

	// Can additionally delete catalog entries
	RoleModerator Role = 3

	// Unrestricted access including user management
	RoleAdmin Role = 4
)

// Valid reports whether r is within the defined role range.
func (r Role) Valid() bool {
	return r >= RoleViewer && r <= RoleAdmin
}

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r >= target
}

// String returns the human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleViewer:
		return "viewer"
	case RoleEditor:
		return "editor"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// # Identity

// Principal is the identity established by a successful authentication
// check. It is injected into the request context by the auth gate and
// consumed by role checks and audit logging.
type Principal struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
