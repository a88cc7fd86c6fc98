package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/driveway/internal/helpers"
	"github.com/joshua-takyi/driveway/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// UserService covers the self-hosted auth configuration: register and login
// issue the same bearer tokens an external identity provider would.
type UserService struct {
	store     models.Store
	jwtSecret string
}

func NewUserService(store models.Store, jwtSecret string) *UserService {
	return &UserService{store: store, jwtSecret: jwtSecret}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

func (us *UserService) Register(ctx context.Context, in *RegisterInput) (*models.User, string, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}

	role := models.RoleUser
	if in.Role != "" {
		parsed, ok := models.ParseRole(in.Role)
		if !ok || parsed.IsAdmin() {
			return nil, "", fmt.Errorf("%w: invalid role %q", models.ErrInvalidArgument, in.Role)
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("%w: hash password: %v", models.ErrInternal, err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := us.store.Users().CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := helpers.SignToken(created, us.jwtSecret, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: sign token: %v", models.ErrInternal, err)
	}
	return created, token, nil
}

// Login checks credentials and mints a bearer token. Unknown email and wrong
// password produce the same error so the endpoint does not leak which one it
// was.
func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email", models.ErrInvalidArgument)
	}

	user, err := us.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", models.ErrForbidden)
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", models.ErrForbidden)
	}

	token, err := helpers.SignToken(user, us.jwtSecret, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: sign token: %v", models.ErrInternal, err)
	}
	return user, token, nil
}
