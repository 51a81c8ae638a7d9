package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/internal/validation"
	"startup-directory.backend/pkg/logger"
	"startup-directory.backend/pkg/utils"
)

// FeaturedCount is how many of the newest startups the home page shows
const FeaturedCount = 6

// StartupUsecase serves the public directory and owner edits
type StartupUsecase struct {
	startups     repositories.StartupRepository
	claims       repositories.OwnershipClaimRepository
	storage      repositories.FileStorage
	pitchBucket  string
	signedURLTTL time.Duration
}

// NewStartupUsecase creates a new startup usecase
func NewStartupUsecase(
	startups repositories.StartupRepository,
	claims repositories.OwnershipClaimRepository,
	storage repositories.FileStorage,
	pitchBucket string,
	signedURLTTL time.Duration,
) *StartupUsecase {
	return &StartupUsecase{
		startups:     startups,
		claims:       claims,
		storage:      storage,
		pitchBucket:  pitchBucket,
		signedURLTTL: signedURLTTL,
	}
}

// List returns one fixed-size page of approved startups matching filter
func (u *StartupUsecase) List(ctx context.Context, filter entities.StartupFilter) (*entities.StartupPage, error) {
	if filter.YearFrom != nil && filter.YearTo != nil && *filter.YearFrom > *filter.YearTo {
		return nil, domainerrors.BadRequest("yearFrom must not be after yearTo")
	}

	pagination := utils.FixedPage(filter.Page)
	startups, total, err := u.startups.ListApproved(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	return &entities.StartupPage{
		Items: summaries(startups),
		Meta:  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	}, nil
}

// GetBySlug returns an approved startup with fields gated by the caller's role
func (u *StartupUsecase) GetBySlug(ctx context.Context, auth *entities.AuthContext, slug string) (*entities.Startup, error) {
	startup, err := u.startups.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}
	if !startup.IsApproved {
		return nil, domainerrors.NotFound("startup not found")
	}
	return startup.VisibleTo(auth), nil
}

// Featured returns the newest approved startups
func (u *StartupUsecase) Featured(ctx context.Context) ([]entities.StartupSummary, error) {
	startups, err := u.startups.Latest(ctx, FeaturedCount)
	if err != nil {
		return nil, err
	}
	return summaries(startups), nil
}

// Stats summarizes the approved directory
func (u *StartupUsecase) Stats(ctx context.Context) (*entities.DirectoryStats, error) {
	total, err := u.startups.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := u.startups.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.DirectoryStats{
		TotalStartups:   total,
		TotalLocations:  len(opts.Locations),
		TotalIndustries: len(opts.Tags),
	}, nil
}

// Filters returns the values the listing filters can take
func (u *StartupUsecase) Filters(ctx context.Context) (*entities.FilterOptions, error) {
	return u.startups.FilterOptions(ctx)
}

// ListOwned returns the full records of the startups the caller owns
func (u *StartupUsecase) ListOwned(ctx context.Context, auth *entities.AuthContext) ([]*entities.Startup, error) {
	if err := requireAuthenticated(auth); err != nil {
		return nil, err
	}
	return u.startups.ListByOwner(ctx, auth.UserID)
}

// UpdateOwned applies an owner's edit. Only allow-listed fields change, the
// record is re-validated and the slug follows the name.
func (u *StartupUsecase) UpdateOwned(ctx context.Context, auth *entities.AuthContext, id uuid.UUID, input entities.StartupUpdateInput) (*entities.Startup, error) {
	if err := requireAuthenticated(auth); err != nil {
		return nil, err
	}

	owner, err := u.claims.IsOwner(ctx, auth.UserID, id)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, domainerrors.Forbidden("only the approved owner can edit this startup")
	}

	current, err := u.startups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}

	updated, err := validation.ApplyStartupUpdate(current, input)
	if err != nil {
		return nil, validationFailed(err)
	}

	if updated.Slug != current.Slug {
		existing, err := u.startups.GetBySlug(ctx, updated.Slug)
		switch {
		case err == nil && existing.ID != current.ID:
			return nil, slugTaken(existing)
		case err != nil && !errors.Is(err, domainerrors.ErrNotFound):
			return nil, err
		}
	}

	if err := u.startups.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return nil, domainerrors.Conflict("a startup with this slug already exists")
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}

	logger.Info(ctx, "Startup updated by owner", zap.String("startup_id", id.String()), zap.String("slug", updated.Slug))
	return updated, nil
}

// PitchDeckURL issues a short-lived download URL for an investor
func (u *StartupUsecase) PitchDeckURL(ctx context.Context, auth *entities.AuthContext, id uuid.UUID) (string, error) {
	if err := requireRole(auth, entities.UserRoleInvestor); err != nil {
		return "", err
	}

	startup, err := u.startups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("startup not found")
		}
		return "", err
	}
	if !startup.IsApproved {
		return "", domainerrors.NotFound("startup not found")
	}
	if !startup.PitchDeckURL.Valid || startup.PitchDeckURL.String == "" {
		return "", domainerrors.NotFound("pitch deck not available")
	}

	ref := startup.PitchDeckURL.String
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	signed, err := u.storage.SignedURL(ctx, u.pitchBucket, ref, u.signedURLTTL)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("pitch deck not available")
		}
		logger.Error(ctx, "Failed to sign pitch deck URL", zap.String("startup_id", id.String()), zap.Error(err))
		return "", upstreamFailure("failed to generate pitch deck link", err)
	}
	return signed, nil
}

func summaries(startups []*entities.Startup) []entities.StartupSummary {
	out := make([]entities.StartupSummary, 0, len(startups))
	for _, s := range startups {
		out = append(out, s.Summary())
	}
	return out
}
