package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/pkg/logger"
)

func alreadyProcessed() error {
	return domainerrors.Conflict("submission already processed")
}

// ModerationUsecase moves submissions out of the pending state
type ModerationUsecase struct {
	submissions repositories.SubmissionRepository
	startups    repositories.StartupRepository
}

// NewModerationUsecase creates a new moderation usecase
func NewModerationUsecase(
	submissions repositories.SubmissionRepository,
	startups repositories.StartupRepository,
) *ModerationUsecase {
	return &ModerationUsecase{
		submissions: submissions,
		startups:    startups,
	}
}

// Approve publishes a pending submission as an approved startup.
// A slug already in use yields a conflict naming the existing startup and creates nothing.
func (u *ModerationUsecase) Approve(ctx context.Context, auth *entities.AuthContext, id uuid.UUID, input entities.ModerationInput) (*entities.ApprovalResult, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	submission, err := u.pendingSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := u.startups.GetBySlug(ctx, submission.Slug)
	switch {
	case err == nil:
		return nil, slugTaken(existing)
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}

	reviewer := auth.UserID
	startup := &entities.Startup{
		StartupProfile: submission.StartupProfile,
		IsApproved:     true,
		CreatedBy:      &reviewer,
	}
	if err := u.startups.Create(ctx, startup); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			if existing, lookupErr := u.startups.GetBySlug(ctx, submission.Slug); lookupErr == nil {
				return nil, slugTaken(existing)
			}
			return nil, domainerrors.Conflict("a startup with this slug already exists")
		}
		return nil, err
	}

	review := entities.SubmissionReview{
		Status:            entities.SubmissionStatusApproved,
		AdminNotes:        trimmedNote(input.AdminNotes),
		ReviewedBy:        reviewer,
		ReviewedAt:        now().UTC(),
		ApprovedStartupID: &startup.ID,
	}
	if err := u.submissions.MarkReviewed(ctx, id, review); err != nil {
		// The startup is already published and stays the source of truth.
		logger.Error(ctx, "Startup created but submission review was not recorded",
			zap.String("submission_id", id.String()),
			zap.String("startup_id", startup.ID.String()),
			zap.Error(err))
	} else {
		applyReview(submission, review)
	}

	moderationDecisions.WithLabelValues(string(entities.SubmissionStatusApproved)).Inc()
	logger.Info(ctx, "Submission approved",
		zap.String("submission_id", id.String()),
		zap.String("startup_id", startup.ID.String()),
		zap.String("slug", startup.Slug))

	return &entities.ApprovalResult{Startup: startup, Submission: submission}, nil
}

// Reject closes a pending submission; a non-empty note is mandatory
func (u *ModerationUsecase) Reject(ctx context.Context, auth *entities.AuthContext, id uuid.UUID, input entities.ModerationInput) (*entities.Submission, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	note := trimmedNote(input.AdminNotes)
	if !note.Valid {
		return nil, domainerrors.Validation("validation failed", map[string]string{
			"admin_notes": "a rejection reason is required",
		})
	}

	submission, err := u.pendingSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	review := entities.SubmissionReview{
		Status:     entities.SubmissionStatusRejected,
		AdminNotes: note,
		ReviewedBy: auth.UserID,
		ReviewedAt: now().UTC(),
	}
	if err := u.submissions.MarkReviewed(ctx, id, review); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrConflict):
			return nil, alreadyProcessed()
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound("submission not found")
		}
		return nil, err
	}
	applyReview(submission, review)

	moderationDecisions.WithLabelValues(string(entities.SubmissionStatusRejected)).Inc()
	logger.Info(ctx, "Submission rejected", zap.String("submission_id", id.String()))
	return submission, nil
}

func (u *ModerationUsecase) pendingSubmission(ctx context.Context, id uuid.UUID) (*entities.Submission, error) {
	submission, err := u.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("submission not found")
		}
		return nil, err
	}
	if !submission.IsPending() {
		return nil, alreadyProcessed()
	}
	return submission, nil
}

func applyReview(s *entities.Submission, review entities.SubmissionReview) {
	reviewer := review.ReviewedBy
	s.Status = review.Status
	s.AdminNotes = review.AdminNotes
	s.ReviewedBy = &reviewer
	s.ReviewedAt = null.TimeFrom(review.ReviewedAt)
	s.ApprovedStartupID = review.ApprovedStartupID
}

func trimmedNote(note string) null.String {
	note = strings.TrimSpace(note)
	if note == "" {
		return null.String{}
	}
	return null.StringFrom(note)
}
