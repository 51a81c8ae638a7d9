package usecases

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/internal/validation"
	"startup-directory.backend/pkg/logger"
	"startup-directory.backend/pkg/utils"
)

var exportHeader = []string{
	"id",
	"name",
	"slug",
	"short_description",
	"long_description",
	"logo_url",
	"founding_year",
	"operating_status",
	"location",
	"tags",
	"employee_range",
	"website",
	"email",
	"phone",
	"funding_received",
	"pitch_deck_url",
	"approved",
	"created_by",
	"created_at",
	"updated_at",
}

// AdminUsecase handles direct catalogue management by admins
type AdminUsecase struct {
	startups    repositories.StartupRepository
	submissions repositories.SubmissionRepository
	claims      repositories.OwnershipClaimRepository
	storage     repositories.FileStorage
	buckets     StorageBuckets
	uow         repositories.UnitOfWork
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	startups repositories.StartupRepository,
	submissions repositories.SubmissionRepository,
	claims repositories.OwnershipClaimRepository,
	storage repositories.FileStorage,
	buckets StorageBuckets,
	uow repositories.UnitOfWork,
) *AdminUsecase {
	return &AdminUsecase{
		startups:    startups,
		submissions: submissions,
		claims:      claims,
		storage:     storage,
		buckets:     buckets,
		uow:         uow,
	}
}

// ListStartups returns every startup, approved or not, one page at a time
func (u *AdminUsecase) ListStartups(ctx context.Context, auth *entities.AuthContext, pagination utils.PaginationParams) ([]*entities.Startup, utils.PaginationMeta, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	if pagination.Limit == 0 {
		pagination.Limit = utils.DirectoryPageSize
	}
	startups, total, err := u.startups.List(ctx, pagination)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return startups, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// GetStartup returns the ungated record
func (u *AdminUsecase) GetStartup(ctx context.Context, auth *entities.AuthContext, id uuid.UUID) (*entities.Startup, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	startup, err := u.startups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}
	return startup, nil
}

// CreateStartup publishes a startup directly, bypassing the moderation queue
func (u *AdminUsecase) CreateStartup(ctx context.Context, auth *entities.AuthContext, form entities.SubmissionForm, files entities.SubmissionFiles) (*entities.Startup, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	profile, err := validation.ValidateProfile(form, files)
	if err != nil {
		return nil, validationFailed(err)
	}

	existing, err := u.startups.GetBySlug(ctx, profile.Slug)
	switch {
	case err == nil:
		return nil, slugTaken(existing)
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}

	uploaded, err := uploadProfileFiles(ctx, u.storage, u.buckets, "startups", profile, files)
	if err != nil {
		return nil, err
	}

	creator := auth.UserID
	startup := &entities.Startup{
		StartupProfile: *profile,
		IsApproved:     true,
		CreatedBy:      &creator,
	}
	if err := u.startups.Create(ctx, startup); err != nil {
		uploaded.remove(ctx, u.storage)
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("a startup with this slug already exists")
		}
		return nil, err
	}

	logger.Info(ctx, "Startup created by admin", zap.String("startup_id", startup.ID.String()), zap.String("slug", startup.Slug))
	return startup, nil
}

// DeleteStartup removes a startup together with its ownership claims
func (u *AdminUsecase) DeleteStartup(ctx context.Context, auth *entities.AuthContext, id uuid.UUID) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.claims.DeleteByStartup(txCtx, id); err != nil {
			return err
		}
		return u.startups.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("startup not found")
		}
		return err
	}

	logger.Info(ctx, "Startup deleted", zap.String("startup_id", id.String()))
	return nil
}

// Stats summarizes the moderation workload
func (u *AdminUsecase) Stats(ctx context.Context, auth *entities.AuthContext) (*entities.AdminStats, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	pending, err := u.submissions.CountByStatus(ctx, entities.SubmissionStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := u.startups.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := u.claims.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.AdminStats{
		PendingSubmissions: pending,
		ApprovedStartups:   approved,
		PendingClaims:      claims,
	}, nil
}

// ExportFilename is the download name of an export taken at t
func ExportFilename(t time.Time) string {
	return "startups_" + t.UTC().Format("2006-01-02") + ".csv"
}

// ExportCSV writes every startup, newest first, as CSV to w
func (u *AdminUsecase) ExportCSV(ctx context.Context, auth *entities.AuthContext, w io.Writer) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}

	startups, err := u.startups.ListAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range startups {
		if err := cw.Write(exportRow(s)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(s *entities.Startup) []string {
	approved := "no"
	if s.IsApproved {
		approved = "yes"
	}
	createdBy := ""
	if s.CreatedBy != nil {
		createdBy = s.CreatedBy.String()
	}
	return []string{
		s.ID.String(),
		s.Name,
		s.Slug,
		s.ShortDescription,
		s.LongDescription,
		nullable(s.LogoURL),
		strconv.Itoa(s.FoundingYear),
		string(s.OperatingStatus),
		s.Location,
		strings.Join(s.Tags, "; "),
		nullable(s.EmployeeRange),
		nullable(s.Website),
		nullable(s.Email),
		nullable(s.Phone),
		nullable(s.FundingReceived),
		nullable(s.PitchDeckURL),
		approved,
		createdBy,
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func nullable(s null.String) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
