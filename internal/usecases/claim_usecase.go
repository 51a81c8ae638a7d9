package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/pkg/logger"
)

const (
	msgAlreadyOwned   = "startup already has an approved owner"
	msgAlreadyClaimed = "you have already claimed this startup"
)

// ClaimUsecase handles ownership claims
type ClaimUsecase struct {
	claims   repositories.OwnershipClaimRepository
	startups repositories.StartupRepository
	uow      repositories.UnitOfWork
}

// NewClaimUsecase creates a new claim usecase
func NewClaimUsecase(
	claims repositories.OwnershipClaimRepository,
	startups repositories.StartupRepository,
	uow repositories.UnitOfWork,
) *ClaimUsecase {
	return &ClaimUsecase{
		claims:   claims,
		startups: startups,
		uow:      uow,
	}
}

// Create files a pending claim by an entrepreneur on an approved startup
func (u *ClaimUsecase) Create(ctx context.Context, auth *entities.AuthContext, startupID uuid.UUID) (*entities.OwnershipClaim, error) {
	if err := requireRole(auth, entities.UserRoleEntrepreneur); err != nil {
		return nil, err
	}

	startup, err := u.startups.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}
	if !startup.IsApproved {
		return nil, domainerrors.NotFound("startup not found")
	}

	owned, err := u.claims.HasApprovedOwner(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, domainerrors.Conflict(msgAlreadyOwned)
	}

	_, err = u.claims.GetByUserAndStartup(ctx, auth.UserID, startupID)
	switch {
	case err == nil:
		return nil, domainerrors.Conflict(msgAlreadyClaimed)
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}

	claim := &entities.OwnershipClaim{UserID: auth.UserID, StartupID: startupID}
	if err := u.claims.Create(ctx, claim); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict(msgAlreadyClaimed)
		}
		return nil, err
	}

	claimDecisions.WithLabelValues("created").Inc()
	logger.Info(ctx, "Ownership claim created", zap.String("claim_id", claim.ID.String()), zap.String("startup_id", startupID.String()))
	return claim, nil
}

// Approve grants ownership. The storage layer's unique index on approved claims is
// the actual guard: of two concurrent approvals for one startup exactly one succeeds.
func (u *ClaimUsecase) Approve(ctx context.Context, auth *entities.AuthContext, claimID uuid.UUID) (*entities.OwnershipClaim, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	var claim *entities.OwnershipClaim
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		claim, err = u.claims.GetByID(lockCtx, claimID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("claim not found")
			}
			return err
		}
		if claim.Approved {
			return domainerrors.Conflict("claim already approved")
		}

		owned, err := u.claims.HasApprovedOwner(lockCtx, claim.StartupID)
		if err != nil {
			return err
		}
		if owned {
			return domainerrors.Conflict(msgAlreadyOwned)
		}

		switch err := u.claims.Approve(txCtx, claimID); {
		case err == nil:
			claim.Approved = true
			return nil
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return domainerrors.Conflict(msgAlreadyOwned)
		case errors.Is(err, domainerrors.ErrConflict):
			return domainerrors.Conflict("claim already approved")
		case errors.Is(err, domainerrors.ErrNotFound):
			return domainerrors.NotFound("claim not found")
		default:
			return err
		}
	})
	if err != nil {
		if _, ok := domainerrors.AsAppError(err); ok {
			claimDecisions.WithLabelValues("approve_refused").Inc()
		}
		return nil, err
	}

	claimDecisions.WithLabelValues("approved").Inc()
	logger.Info(ctx, "Ownership claim approved", zap.String("claim_id", claimID.String()), zap.String("startup_id", claim.StartupID.String()))
	return claim, nil
}

// Reject deletes the claim outright
func (u *ClaimUsecase) Reject(ctx context.Context, auth *entities.AuthContext, claimID uuid.UUID) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if err := u.claims.Delete(ctx, claimID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("claim not found")
		}
		return err
	}
	claimDecisions.WithLabelValues("rejected").Inc()
	logger.Info(ctx, "Ownership claim rejected", zap.String("claim_id", claimID.String()))
	return nil
}

// ListMine returns the caller's claims with their status
func (u *ClaimUsecase) ListMine(ctx context.Context, auth *entities.AuthContext) ([]*entities.ClaimView, error) {
	if err := requireAuthenticated(auth); err != nil {
		return nil, err
	}
	userID := auth.UserID
	return u.claims.List(ctx, entities.ClaimFilter{UserID: &userID})
}

// List returns claims for moderation, optionally narrowed to pending or approved
func (u *ClaimUsecase) List(ctx context.Context, auth *entities.AuthContext, status string) ([]*entities.ClaimView, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	var filter entities.ClaimFilter
	switch entities.ClaimStatus(status) {
	case "":
	case entities.ClaimStatusPending:
		approved := false
		filter.Approved = &approved
	case entities.ClaimStatusApproved:
		approved := true
		filter.Approved = &approved
	default:
		return nil, domainerrors.BadRequest("status must be pending or approved")
	}
	return u.claims.List(ctx, filter)
}
