package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-directory.backend/internal/domain/entities"
)

// UserRepository defines user operations backed by the identity provider admin API
type UserRepository interface {
	List(ctx context.Context) ([]*entities.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	Update(ctx context.Context, id uuid.UUID, input entities.UpdateUserInput) (*entities.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthProvider defines the end-user session operations of the identity provider
type AuthProvider interface {
	SignUp(ctx context.Context, input entities.SignUpInput) (*entities.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*entities.AuthSession, error)
	RecoverPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, accessToken, password string) error
}
