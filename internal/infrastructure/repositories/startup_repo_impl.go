package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/infrastructure/models"
	"startup-directory.backend/pkg/utils"
)

// StartupRepository implements startup data operations
type StartupRepository struct {
	db *gorm.DB
}

// NewStartupRepository creates a new startup repository
func NewStartupRepository(db *gorm.DB) *StartupRepository {
	return &StartupRepository{db: db}
}

// Create inserts a startup; a slug already in use yields ErrAlreadyExists
func (r *StartupRepository) Create(ctx context.Context, startup *entities.Startup) error {
	if startup.ID == uuid.Nil {
		startup.ID = utils.GenerateUUIDv7()
	}
	now := time.Now().UTC()
	if startup.CreatedAt.IsZero() {
		startup.CreatedAt = now
	}
	startup.UpdatedAt = startup.CreatedAt

	profile, err := profileToModel(startup.StartupProfile)
	if err != nil {
		return err
	}
	m := &models.Startup{
		ID:             startup.ID,
		StartupProfile: profile,
		IsApproved:     startup.IsApproved,
		CreatedBy:      startup.CreatedBy,
		CreatedAt:      startup.CreatedAt,
		UpdatedAt:      startup.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// GetByID gets a startup by ID
func (r *StartupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error) {
	var m models.Startup
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return r.toEntity(&m), nil
}

// GetBySlug gets a startup by slug, approved or not
func (r *StartupRepository) GetBySlug(ctx context.Context, slug string) (*entities.Startup, error) {
	var m models.Startup
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return r.toEntity(&m), nil
}

// Update writes the descriptive fields of a startup
func (r *StartupRepository) Update(ctx context.Context, startup *entities.Startup) error {
	profile, err := profileToModel(startup.StartupProfile)
	if err != nil {
		return err
	}
	updates := profileColumns(profile)
	startup.UpdatedAt = time.Now().UTC()
	updates["updated_at"] = startup.UpdatedAt

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Startup{}).Where("id = ?", startup.ID).Updates(updates)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a startup
func (r *StartupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Startup{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListApproved returns one page of approved startups matching filter, newest first, and the total match count
func (r *StartupRepository) ListApproved(ctx context.Context, filter entities.StartupFilter, pagination utils.PaginationParams) ([]*entities.Startup, int64, error) {
	var total int64
	query := applyStartupFilter(GetDB(ctx, r.db).WithContext(ctx).Model(&models.Startup{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Startup
	query = applyStartupFilter(GetDB(ctx, r.db).WithContext(ctx).Model(&models.Startup{}), filter).
		Order("startups.created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), total, nil
}

// ListAll lists every startup including unapproved ones
func (r *StartupRepository) ListAll(ctx context.Context) ([]*entities.Startup, error) {
	var ms []models.Startup
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// List returns one page of every startup including unapproved ones, newest first
func (r *StartupRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Startup, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Startup{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Startup
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), total, nil
}

// ListByOwner lists the startups userID holds an approved claim on
func (r *StartupRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entities.Startup, error) {
	var ms []models.Startup
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Startup{}).
		Joins("JOIN startup_owners so ON so.startup_id = startups.id").
		Where("so.user_id = ? AND so.approved = ?", userID, true).
		Order("startups.name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// Latest returns the newest approved startups
func (r *StartupRepository) Latest(ctx context.Context, limit int) ([]*entities.Startup, error) {
	var ms []models.Startup
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// CountApproved counts publicly visible startups
func (r *StartupRepository) CountApproved(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Startup{}).Where("is_approved = ?", true).Count(&total).Error
	return total, err
}

// FilterOptions collects the distinct locations, tags and founding-year span of approved startups
func (r *StartupRepository) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	approved := func() *gorm.DB { return db.Model(&models.Startup{}).Where("is_approved = ?", true) }

	var locations []string
	if err := approved().Distinct("location").Order("location ASC").Pluck("location", &locations).Error; err != nil {
		return nil, err
	}

	var tagSets []pq.StringArray
	if err := approved().Pluck("tags", &tagSets).Error; err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	tags := []string{}
	for _, set := range tagSets {
		for _, t := range set {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)

	var span struct {
		MinYear *int
		MaxYear *int
	}
	if err := approved().Select("MIN(founding_year) AS min_year, MAX(founding_year) AS max_year").Scan(&span).Error; err != nil {
		return nil, err
	}
	year := time.Now().Year()
	years := entities.YearRange{Min: year, Max: year}
	if span.MinYear != nil {
		years.Min = *span.MinYear
	}
	if span.MaxYear != nil {
		years.Max = *span.MaxYear
	}

	if locations == nil {
		locations = []string{}
	}
	return &entities.FilterOptions{Locations: locations, Tags: tags, Years: years}, nil
}

func (r *StartupRepository) toEntities(ms []models.Startup) []*entities.Startup {
	out := make([]*entities.Startup, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out
}

func (r *StartupRepository) toEntity(m *models.Startup) *entities.Startup {
	return &entities.Startup{
		ID:             m.ID,
		StartupProfile: profileFromModel(m.StartupProfile),
		IsApproved:     m.IsApproved,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
