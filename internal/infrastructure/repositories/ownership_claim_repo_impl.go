package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/infrastructure/models"
	"startup-directory.backend/pkg/utils"
)

// OwnershipClaimRepository implements ownership claim data operations
type OwnershipClaimRepository struct {
	db *gorm.DB
}

// NewOwnershipClaimRepository creates a new ownership claim repository
func NewOwnershipClaimRepository(db *gorm.DB) *OwnershipClaimRepository {
	return &OwnershipClaimRepository{db: db}
}

// Create inserts a claim; a second claim by the same user on the same startup yields ErrAlreadyExists
func (r *OwnershipClaimRepository) Create(ctx context.Context, claim *entities.OwnershipClaim) error {
	if claim.ID == uuid.Nil {
		claim.ID = utils.GenerateUUIDv7()
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now().UTC()
	}
	m := &models.StartupOwner{
		ID:        claim.ID,
		UserID:    claim.UserID,
		StartupID: claim.StartupID,
		Approved:  claim.Approved,
		CreatedAt: claim.CreatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// GetByID gets a claim by ID
func (r *OwnershipClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.OwnershipClaim, error) {
	var m models.StartupOwner
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return toClaimEntity(&m), nil
}

// GetByUserAndStartup gets the claim a user holds on a startup
func (r *OwnershipClaimRepository) GetByUserAndStartup(ctx context.Context, userID, startupID uuid.UUID) (*entities.OwnershipClaim, error) {
	var m models.StartupOwner
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND startup_id = ?", userID, startupID).
		First(&m).Error
	if err != nil {
		return nil, translateReadError(err)
	}
	return toClaimEntity(&m), nil
}

// HasApprovedOwner reports whether any approved claim exists for the startup
func (r *OwnershipClaimRepository) HasApprovedOwner(ctx context.Context, startupID uuid.UUID) (bool, error) {
	var ms []models.StartupOwner
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("startup_id = ? AND approved = ?", startupID, true).
		Limit(1).
		Find(&ms).Error
	if err != nil {
		return false, err
	}
	return len(ms) > 0, nil
}

// IsOwner reports whether userID holds the approved claim on startupID
func (r *OwnershipClaimRepository) IsOwner(ctx context.Context, userID, startupID uuid.UUID) (bool, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.StartupOwner{}).
		Where("user_id = ? AND startup_id = ? AND approved = ?", userID, startupID, true).
		Count(&total).Error
	return total > 0, err
}

// Approve flips a pending claim to approved.
// ErrConflict: the claim was approved meanwhile. ErrAlreadyExists: the startup already has an approved owner.
func (r *OwnershipClaimRepository) Approve(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.StartupOwner{}).
		Where("id = ? AND approved = ?", id, false).
		Update("approved", true)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domainerrors.ErrConflict
	}
	return nil
}

// Delete removes a claim
func (r *OwnershipClaimRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.StartupOwner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every claim of a user
func (r *OwnershipClaimRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.StartupOwner{}, "user_id = ?", userID).Error
}

// DeleteByStartup removes every claim on a startup
func (r *OwnershipClaimRepository) DeleteByStartup(ctx context.Context, startupID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.StartupOwner{}, "startup_id = ?", startupID).Error
}

type claimRow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	StartupID   uuid.UUID
	Approved    bool
	CreatedAt   time.Time
	StartupName string
	StartupSlug string
}

// List lists claims newest first with their startup name and slug
func (r *OwnershipClaimRepository) List(ctx context.Context, filter entities.ClaimFilter) ([]*entities.ClaimView, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Table("startup_owners AS so").
		Select("so.id, so.user_id, so.startup_id, so.approved, so.created_at, s.name AS startup_name, s.slug AS startup_slug").
		Joins("JOIN startups s ON s.id = so.startup_id").
		Order("so.created_at DESC")
	if filter.UserID != nil {
		query = query.Where("so.user_id = ?", *filter.UserID)
	}
	if filter.Approved != nil {
		query = query.Where("so.approved = ?", *filter.Approved)
	}

	var rows []claimRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ClaimView, 0, len(rows))
	for _, row := range rows {
		claim := entities.OwnershipClaim{Approved: row.Approved}
		out = append(out, &entities.ClaimView{
			ID:          row.ID,
			UserID:      row.UserID,
			StartupID:   row.StartupID,
			StartupName: row.StartupName,
			StartupSlug: row.StartupSlug,
			Approved:    row.Approved,
			Status:      claim.Status(),
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

// CountPending counts claims awaiting review
func (r *OwnershipClaimRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.StartupOwner{}).Where("approved = ?", false).Count(&total).Error
	return total, err
}

func toClaimEntity(m *models.StartupOwner) *entities.OwnershipClaim {
	return &entities.OwnershipClaim{
		ID:        m.ID,
		UserID:    m.UserID,
		StartupID: m.StartupID,
		Approved:  m.Approved,
		CreatedAt: m.CreatedAt,
	}
}
