package model

import "time"

// Roles recognised by the API.  Admins manage accounts and the catalog;
// employees handle day-to-day bookings.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User mirrors the 'users' table.  PasswordHash is never serialized.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether r is a recognised account role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEmployee
}
