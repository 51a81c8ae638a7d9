package usecases

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/internal/validation"
	"startup-directory.backend/pkg/logger"
)

// StorageBuckets names the buckets uploads go to
type StorageBuckets struct {
	Logos      string
	PitchDecks string
}

// now is the clock used for upload paths and review timestamps
var now = time.Now

// SubmissionUsecase handles the public submission intake
type SubmissionUsecase struct {
	submissions repositories.SubmissionRepository
	storage     repositories.FileStorage
	buckets     StorageBuckets
}

// NewSubmissionUsecase creates a new submission usecase
func NewSubmissionUsecase(
	submissions repositories.SubmissionRepository,
	storage repositories.FileStorage,
	buckets StorageBuckets,
) *SubmissionUsecase {
	return &SubmissionUsecase{
		submissions: submissions,
		storage:     storage,
		buckets:     buckets,
	}
}

// Submit validates the wizard form, uploads its files and queues a pending submission
func (u *SubmissionUsecase) Submit(ctx context.Context, form entities.SubmissionForm, files entities.SubmissionFiles) (*entities.Submission, error) {
	valid, err := validation.ValidateSubmission(form, files)
	if err != nil {
		return nil, validationFailed(err)
	}

	uploaded, err := uploadProfileFiles(ctx, u.storage, u.buckets, "submissions", &valid.Profile, files)
	if err != nil {
		return nil, err
	}

	submission := &entities.Submission{
		StartupProfile: valid.Profile,
		SubmitterEmail: valid.SubmitterEmail,
		Status:         entities.SubmissionStatusPending,
	}
	if err := u.submissions.Create(ctx, submission); err != nil {
		uploaded.remove(ctx, u.storage)
		logger.Error(ctx, "Failed to create submission", zap.String("slug", valid.Profile.Slug), zap.Error(err))
		return nil, upstreamFailure("failed to save submission", err)
	}

	submissionsReceived.Inc()
	logger.Info(ctx, "Submission received", zap.String("submission_id", submission.ID.String()), zap.String("slug", submission.Slug))
	return submission, nil
}

// ValidateStep checks a single wizard step
func (u *SubmissionUsecase) ValidateStep(step int, form entities.SubmissionForm, files entities.SubmissionFiles) error {
	if step < validation.StepIdentity || step > validation.TotalSteps {
		return domainerrors.BadRequest(fmt.Sprintf("step must be between 1 and %d", validation.TotalSteps))
	}
	if errs := validation.ValidateStep(step, form, files); len(errs) > 0 {
		return validationFailed(errs)
	}
	return nil
}

// List returns submissions for the moderation queue, newest first
func (u *SubmissionUsecase) List(ctx context.Context, auth *entities.AuthContext, status string) ([]*entities.Submission, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	var filter *entities.SubmissionStatus
	if status != "" {
		s := entities.SubmissionStatus(status)
		if !s.Valid() {
			return nil, domainerrors.BadRequest("status must be pending, approved or rejected")
		}
		filter = &s
	}
	return u.submissions.List(ctx, filter)
}

// Get returns one submission
func (u *SubmissionUsecase) Get(ctx context.Context, auth *entities.AuthContext, id uuid.UUID) (*entities.Submission, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	submission, err := u.submissions.GetByID(ctx, id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("submission not found")
		}
		return nil, err
	}
	return submission, nil
}

type uploadedFiles []struct{ bucket, path string }

func (f uploadedFiles) remove(ctx context.Context, storage repositories.FileStorage) {
	for _, obj := range f {
		if err := storage.Remove(ctx, obj.bucket, obj.path); err != nil {
			logger.Warn(ctx, "Failed to remove orphaned upload", zap.String("bucket", obj.bucket), zap.String("path", obj.path), zap.Error(err))
		}
	}
}

// uploadProfileFiles stores the logo publicly and the pitch deck privately under prefix.
// The logo URL is the public URL; the pitch deck keeps its object path so it can only be
// reached through a signed URL.
func uploadProfileFiles(
	ctx context.Context,
	storage repositories.FileStorage,
	buckets StorageBuckets,
	prefix string,
	profile *entities.StartupProfile,
	files entities.SubmissionFiles,
) (uploadedFiles, error) {
	var done uploadedFiles
	stamp := now().UnixMilli()

	if files.Logo != nil {
		path := fmt.Sprintf("%s/%d-%s.%s", prefix, stamp, profile.Slug, fileExtension(files.Logo))
		if err := storage.Upload(ctx, buckets.Logos, path, files.Logo.Content, files.Logo.ContentType); err != nil {
			logger.Error(ctx, "Logo upload failed", zap.String("path", path), zap.Error(err))
			return nil, upstreamFailure("failed to upload logo", err)
		}
		done = append(done, struct{ bucket, path string }{buckets.Logos, path})
		profile.LogoURL.SetValid(storage.PublicURL(buckets.Logos, path))
	}

	if files.PitchDeck != nil {
		path := fmt.Sprintf("%s/%d-%s-pitch.pdf", prefix, stamp, profile.Slug)
		if err := storage.Upload(ctx, buckets.PitchDecks, path, files.PitchDeck.Content, files.PitchDeck.ContentType); err != nil {
			logger.Error(ctx, "Pitch deck upload failed", zap.String("path", path), zap.Error(err))
			done.remove(ctx, storage)
			return nil, upstreamFailure("failed to upload pitch deck", err)
		}
		done = append(done, struct{ bucket, path string }{buckets.PitchDecks, path})
		profile.PitchDeckURL.SetValid(path)
	}

	return done, nil
}

func fileExtension(a *entities.Attachment) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Filename)), "."); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(a.ContentType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}
