package repositories

import (
	"context"

	"startup-directory.backend/internal/domain/entities"
)

// DraftStore persists in-progress submission wizards.
// Load returns ErrNotFound when nothing is stored under id.
type DraftStore interface {
	Save(ctx context.Context, draft *entities.Draft) error
	Load(ctx context.Context, id string) (*entities.Draft, error)
	Clear(ctx context.Context, id string) error
}
