package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Group     string    `json:"group"`
	Email     string    `json:"email,omitempty"`
	Role      UserRole  `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type CreateUserParams struct {
	Name  string
	Group string
	Email string
	Role  UserRole
}
