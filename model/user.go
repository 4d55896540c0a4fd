package model

import "time"

// RoleName identifies one of the pre-seeded capability roles. End users never
// create roles; they only reference them.
type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

// Role is a seeded role record.
type Role struct {
	ID   int      `json:"id"`
	Name RoleName `json:"name"`
}

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // The bcrypt hash is never exposed in JSON responses.
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
