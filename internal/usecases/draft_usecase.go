package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/internal/validation"
	"startup-directory.backend/pkg/logger"
)

const draftWriteTimeout = 5 * time.Second

type pendingDraft struct {
	timer *time.Timer
	draft *entities.Draft
}

// DraftUsecase autosaves wizard drafts. Saves for the same draft inside the
// debounce window collapse into one trailing write of the latest state.
//
// Draft ids are issued by Create and are random UUIDs. A draft created with a
// session belongs to that user; anyone else gets "draft not found".
type DraftUsecase struct {
	store    repositories.DraftStore
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*pendingDraft
	writing map[string]chan struct{}
}

// NewDraftUsecase creates a new draft usecase; debounce <= 0 writes through
func NewDraftUsecase(store repositories.DraftStore, debounce time.Duration) *DraftUsecase {
	return &DraftUsecase{
		store:    store,
		debounce: debounce,
		pending:  make(map[string]*pendingDraft),
		writing:  make(map[string]chan struct{}),
	}
}

// Create starts a draft under a fresh id. It is written immediately.
func (u *DraftUsecase) Create(ctx context.Context, caller *entities.AuthContext, step int, values entities.SubmissionForm) (*entities.Draft, error) {
	if err := checkDraftStep(step); err != nil {
		return nil, err
	}

	draft := &entities.Draft{ID: uuid.NewString(), Step: step, Values: values, SavedAt: now().UTC()}
	if caller != nil && caller.Authenticated {
		draft.OwnerID = uuid.NullUUID{UUID: caller.UserID, Valid: true}
	}
	if err := u.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Save records the wizard state of an existing draft. With debouncing the write happens later.
func (u *DraftUsecase) Save(ctx context.Context, caller *entities.AuthContext, id string, step int, values entities.SubmissionForm) (*entities.Draft, error) {
	if err := checkDraftStep(step); err != nil {
		return nil, err
	}
	current, err := u.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	draft := &entities.Draft{ID: id, OwnerID: current.OwnerID, Step: step, Values: values, SavedAt: now().UTC()}
	if u.debounce <= 0 {
		if err := u.store.Save(ctx, draft); err != nil {
			return nil, err
		}
		return draft, nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if p, ok := u.pending[id]; ok {
		p.draft = draft
		p.timer.Reset(u.debounce)
		return draft, nil
	}
	u.pending[id] = &pendingDraft{
		draft: draft,
		timer: time.AfterFunc(u.debounce, func() { u.flushOne(id) }),
	}
	return draft, nil
}

// Load returns the draft and the first step that still needs attention
func (u *DraftUsecase) Load(ctx context.Context, caller *entities.AuthContext, id string) (*entities.DraftResume, error) {
	draft, err := u.authorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return &entities.DraftResume{
		Draft:      draft,
		ResumeStep: validation.FirstInvalidStep(draft.Values),
	}, nil
}

// Clear drops the draft and any write still waiting.
// A write already in flight finishes before the stored copy is removed.
func (u *DraftUsecase) Clear(ctx context.Context, caller *entities.AuthContext, id string) error {
	if _, err := u.authorized(ctx, caller, id); err != nil {
		return err
	}

	u.mu.Lock()
	if p, ok := u.pending[id]; ok {
		p.timer.Stop()
		delete(u.pending, id)
	}
	inflight := u.writing[id]
	u.mu.Unlock()

	if inflight != nil {
		select {
		case <-inflight:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return u.store.Clear(ctx, id)
}

// Flush writes every pending draft now; used on shutdown
func (u *DraftUsecase) Flush(ctx context.Context) error {
	u.mu.Lock()
	drafts := make([]*entities.Draft, 0, len(u.pending))
	for id, p := range u.pending {
		p.timer.Stop()
		drafts = append(drafts, p.draft)
		delete(u.pending, id)
	}
	u.mu.Unlock()

	var errs []error
	for _, d := range drafts {
		if err := u.store.Save(ctx, d); err != nil {
			errs = append(errs, fmt.Errorf("draft %s: %w", d.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (u *DraftUsecase) flushOne(id string) {
	u.mu.Lock()
	p, ok := u.pending[id]
	if !ok {
		u.mu.Unlock()
		return
	}
	delete(u.pending, id)
	done := make(chan struct{})
	u.writing[id] = done
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		if u.writing[id] == done {
			delete(u.writing, id)
		}
		u.mu.Unlock()
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), draftWriteTimeout)
	defer cancel()
	if err := u.store.Save(ctx, p.draft); err != nil {
		logger.Error(ctx, "Draft autosave failed", zap.String("draft_id", id), zap.Error(err))
	}
}

// authorized returns the newest state of draft id if caller may use it
func (u *DraftUsecase) authorized(ctx context.Context, caller *entities.AuthContext, id string) (*entities.Draft, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domainerrors.BadRequest("invalid draft id")
	}

	u.mu.Lock()
	var draft *entities.Draft
	if p, ok := u.pending[id]; ok {
		draft = p.draft
	}
	u.mu.Unlock()

	if draft == nil {
		var err error
		draft, err = u.store.Load(ctx, id)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("draft not found")
			}
			return nil, err
		}
	}

	if draft.OwnerID.Valid && (caller == nil || !caller.Authenticated || caller.UserID != draft.OwnerID.UUID) {
		return nil, domainerrors.NotFound("draft not found")
	}
	return draft, nil
}

func checkDraftStep(step int) error {
	if step < validation.StepIdentity || step > validation.TotalSteps {
		return domainerrors.BadRequest(fmt.Sprintf("step must be between 1 and %d", validation.TotalSteps))
	}
	return nil
}
