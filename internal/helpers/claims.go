package helpers

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joshua-takyi/driveway/internal/models"
)

// Claims is the caller identity carried by a bearer token: id, email, role.
type Claims struct {
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserUUID parses the subject id. Tokens minted by this service always carry
// a UUID, so a parse failure means the token came from somewhere else.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

func (c *Claims) IsAdmin() bool {
	return c.Role.IsAdmin()
}

func (c *Claims) IsHost() bool {
	return c.Role == models.RoleHost
}

// CanListCars reports whether the caller may create and manage car listings.
func (c *Claims) CanListCars() bool {
	return c.Role.CanListCars()
}

// IsOwner reports whether the caller is the identity with the given id.
func (c *Claims) IsOwner(id uuid.UUID) bool {
	return c.UserID == id.String()
}
