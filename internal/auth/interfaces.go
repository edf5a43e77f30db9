package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence operations the service depends on
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
