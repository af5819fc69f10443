package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleDriver  Role = "driver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDriver:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   uuid.UUID
	Email    string
	Role     Role
	DriverID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}

// IsStaff reports whether the principal manages the fleet (admin or manager).
func (p Principal) IsStaff() bool {
	return p.IsAdmin() || p.IsManager()
}
