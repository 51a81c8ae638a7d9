package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-directory.backend/internal/domain/entities"
)

// SubmissionRepository defines submission data operations
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entities.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Submission, error)
	List(ctx context.Context, status *entities.SubmissionStatus) ([]*entities.Submission, error)
	// MarkReviewed moves a pending submission to its terminal state.
	// Returns ErrConflict when the submission is no longer pending.
	MarkReviewed(ctx context.Context, id uuid.UUID, review entities.SubmissionReview) error
	CountByStatus(ctx context.Context, status entities.SubmissionStatus) (int64, error)
}
