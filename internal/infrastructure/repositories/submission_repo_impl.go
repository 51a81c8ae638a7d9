package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/infrastructure/models"
	"startup-directory.backend/pkg/utils"
)

// SubmissionRepository implements submission data operations
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission
func (r *SubmissionRepository) Create(ctx context.Context, submission *entities.Submission) error {
	if submission.ID == uuid.Nil {
		submission.ID = utils.GenerateUUIDv7()
	}
	if submission.Status == "" {
		submission.Status = entities.SubmissionStatusPending
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	submission.UpdatedAt = submission.CreatedAt

	profile, err := profileToModel(submission.StartupProfile)
	if err != nil {
		return err
	}
	m := &models.Submission{
		ID:             submission.ID,
		StartupProfile: profile,
		SubmitterEmail: submission.SubmitterEmail,
		Status:         string(submission.Status),
		AdminNotes:     submission.AdminNotes.Ptr(),
		CreatedAt:      submission.CreatedAt,
		UpdatedAt:      submission.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// GetByID gets a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Submission, error) {
	var m models.Submission
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return r.toEntity(&m), nil
}

// List lists submissions newest first, optionally narrowed to one status
func (r *SubmissionRepository) List(ctx context.Context, status *entities.SubmissionStatus) ([]*entities.Submission, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var ms []models.Submission
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Submission, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

// MarkReviewed moves a pending submission to its terminal state
func (r *SubmissionRepository) MarkReviewed(ctx context.Context, id uuid.UUID, review entities.SubmissionReview) error {
	updates := map[string]interface{}{
		"status":              string(review.Status),
		"admin_notes":         review.AdminNotes.Ptr(),
		"reviewed_by":         review.ReviewedBy,
		"reviewed_at":         review.ReviewedAt,
		"approved_startup_id": review.ApprovedStartupID,
		"updated_at":          time.Now().UTC(),
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, string(entities.SubmissionStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domainerrors.ErrConflict
	}
	return nil
}

// CountByStatus counts submissions in one moderation state
func (r *SubmissionRepository) CountByStatus(ctx context.Context, status entities.SubmissionStatus) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Submission{}).Where("status = ?", string(status)).Count(&total).Error
	return total, err
}

func (r *SubmissionRepository) toEntity(m *models.Submission) *entities.Submission {
	return &entities.Submission{
		ID:                m.ID,
		StartupProfile:    profileFromModel(m.StartupProfile),
		SubmitterEmail:    m.SubmitterEmail,
		Status:            entities.SubmissionStatus(m.Status),
		AdminNotes:        null.StringFromPtr(m.AdminNotes),
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        null.TimeFromPtr(m.ReviewedAt),
		ApprovedStartupID: m.ApprovedStartupID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
