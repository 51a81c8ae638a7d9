package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/pkg/utils"
)

// StartupRepository defines startup data operations
type StartupRepository interface {
	Create(ctx context.Context, startup *entities.Startup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Startup, error)
	Update(ctx context.Context, startup *entities.Startup) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListApproved(ctx context.Context, filter entities.StartupFilter, pagination utils.PaginationParams) ([]*entities.Startup, int64, error)
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Startup, int64, error)
	ListAll(ctx context.Context) ([]*entities.Startup, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entities.Startup, error)
	Latest(ctx context.Context, limit int) ([]*entities.Startup, error)
	CountApproved(ctx context.Context) (int64, error)
	FilterOptions(ctx context.Context) (*entities.FilterOptions, error)
}
