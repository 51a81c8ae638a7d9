package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-directory.backend/internal/domain/entities"
)

// OwnershipClaimRepository defines ownership claim data operations
type OwnershipClaimRepository interface {
	Create(ctx context.Context, claim *entities.OwnershipClaim) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.OwnershipClaim, error)
	GetByUserAndStartup(ctx context.Context, userID, startupID uuid.UUID) (*entities.OwnershipClaim, error)
	HasApprovedOwner(ctx context.Context, startupID uuid.UUID) (bool, error)
	IsOwner(ctx context.Context, userID, startupID uuid.UUID) (bool, error)
	// Approve flips a pending claim to approved. A second approved claim for the
	// same startup is rejected by the store with ErrAlreadyExists.
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteByStartup(ctx context.Context, startupID uuid.UUID) error
	List(ctx context.Context, filter entities.ClaimFilter) ([]*entities.ClaimView, error)
	CountPending(ctx context.Context) (int64, error)
}
