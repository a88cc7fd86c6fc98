package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Authorization decisions go through
// the capability predicates below rather than raw string comparison.
type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleHost, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CanListCars reports whether the role may create and manage car listings.
func (r Role) CanListCars() bool {
	return r == RoleHost || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name" validate:"required"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"size:120;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the slice of a user exposed to the car's host on the
// bookings-by-car listing.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
