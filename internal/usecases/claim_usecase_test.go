package usecases_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/usecases"
)

type claimFixture struct {
	claims   *MockOwnershipClaimRepository
	startups *MockStartupRepository
	uow      *MockUnitOfWork
	uc       *usecases.ClaimUsecase
}

func newClaimFixture() *claimFixture {
	f := &claimFixture{
		claims:   new(MockOwnershipClaimRepository),
		startups: new(MockStartupRepository),
		uow:      new(MockUnitOfWork),
	}
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.uow.On("WithLock", mock.Anything).Return(context.Background())
	f.uc = usecases.NewClaimUsecase(f.claims, f.startups, f.uow)
	return f
}

func approvedStartup() *entities.Startup {
	return &entities.Startup{ID: uuid.New(), StartupProfile: entities.StartupProfile{Name: "Acme", Slug: "acme"}, IsApproved: true}
}

func TestClaimUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newClaimFixture()
		user := authAs(entities.UserRoleEntrepreneur)
		startup := approvedStartup()

		f.startups.On("GetByID", ctx, startup.ID).Return(startup, nil).Once()
		f.claims.On("HasApprovedOwner", ctx, startup.ID).Return(false, nil).Once()
		f.claims.On("GetByUserAndStartup", ctx, user.UserID, startup.ID).Return(nil, domainerrors.ErrNotFound).Once()
		f.claims.On("Create", ctx, mock.Anything).Return(nil).Once()

		claim, err := f.uc.Create(ctx, user, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, user.UserID, claim.UserID)
		assert.Equal(t, entities.ClaimStatusPending, claim.Status())
	})

	t.Run("only entrepreneurs", func(t *testing.T) {
		f := newClaimFixture()
		_, err := f.uc.Create(ctx, authAs(entities.UserRoleInvestor), uuid.New())
		requireAppError(t, err, http.StatusForbidden)
		_, err = f.uc.Create(ctx, entities.Anonymous(), uuid.New())
		requireAppError(t, err, http.StatusUnauthorized)
	})

	t.Run("unapproved startup is hidden", func(t *testing.T) {
		f := newClaimFixture()
		startup := approvedStartup()
		startup.IsApproved = false
		f.startups.On("GetByID", ctx, startup.ID).Return(startup, nil).Once()

		_, err := f.uc.Create(ctx, authAs(entities.UserRoleEntrepreneur), startup.ID)
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("already owned", func(t *testing.T) {
		f := newClaimFixture()
		startup := approvedStartup()
		f.startups.On("GetByID", ctx, startup.ID).Return(startup, nil).Once()
		f.claims.On("HasApprovedOwner", ctx, startup.ID).Return(true, nil).Once()

		_, err := f.uc.Create(ctx, authAs(entities.UserRoleEntrepreneur), startup.ID)
		appErr := requireAppError(t, err, http.StatusConflict)
		assert.Equal(t, "startup already has an approved owner", appErr.Message)
	})

	t.Run("duplicate claim", func(t *testing.T) {
		f := newClaimFixture()
		user := authAs(entities.UserRoleEntrepreneur)
		startup := approvedStartup()
		f.startups.On("GetByID", ctx, startup.ID).Return(startup, nil).Once()
		f.claims.On("HasApprovedOwner", ctx, startup.ID).Return(false, nil).Once()
		f.claims.On("GetByUserAndStartup", ctx, user.UserID, startup.ID).Return(&entities.OwnershipClaim{ID: uuid.New()}, nil).Once()

		_, err := f.uc.Create(ctx, user, startup.ID)
		appErr := requireAppError(t, err, http.StatusConflict)
		assert.Equal(t, "you have already claimed this startup", appErr.Message)
		f.claims.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

// Two entrepreneurs claim the same startup; approving A makes B's approval fail.
func TestClaimUsecase_Approve_SecondOwnerRejected(t *testing.T) {
	f := newClaimFixture()
	admin := authAs(entities.UserRoleAdmin)
	startupID := uuid.New()
	claimA := &entities.OwnershipClaim{ID: uuid.New(), UserID: uuid.New(), StartupID: startupID}
	claimB := &entities.OwnershipClaim{ID: uuid.New(), UserID: uuid.New(), StartupID: startupID}

	f.claims.On("GetByID", mock.Anything, claimA.ID).Return(claimA, nil).Once()
	f.claims.On("HasApprovedOwner", mock.Anything, startupID).Return(false, nil).Once()
	f.claims.On("Approve", mock.Anything, claimA.ID).Return(nil).Once()

	got, err := f.uc.Approve(context.Background(), admin, claimA.ID)
	require.NoError(t, err)
	assert.True(t, got.Approved)

	f.claims.On("GetByID", mock.Anything, claimB.ID).Return(claimB, nil).Once()
	f.claims.On("HasApprovedOwner", mock.Anything, startupID).Return(true, nil).Once()

	_, err = f.uc.Approve(context.Background(), admin, claimB.ID)
	appErr := requireAppError(t, err, http.StatusConflict)
	assert.Equal(t, "startup already has an approved owner", appErr.Message)
	f.claims.AssertNotCalled(t, "Approve", mock.Anything, claimB.ID)
	assert.False(t, claimB.Approved)
}

func TestClaimUsecase_Approve_StoreRefusals(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		status  int
		message string
	}{
		{"unique index", domainerrors.ErrAlreadyExists, http.StatusConflict, "startup already has an approved owner"},
		{"approved meanwhile", domainerrors.ErrConflict, http.StatusConflict, "claim already approved"},
		{"deleted meanwhile", domainerrors.ErrNotFound, http.StatusNotFound, "claim not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newClaimFixture()
			claim := &entities.OwnershipClaim{ID: uuid.New(), UserID: uuid.New(), StartupID: uuid.New()}
			f.claims.On("GetByID", mock.Anything, claim.ID).Return(claim, nil).Once()
			f.claims.On("HasApprovedOwner", mock.Anything, claim.StartupID).Return(false, nil).Once()
			f.claims.On("Approve", mock.Anything, claim.ID).Return(tc.repoErr).Once()

			_, err := f.uc.Approve(context.Background(), authAs(entities.UserRoleAdmin), claim.ID)
			appErr := requireAppError(t, err, tc.status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestClaimUsecase_Approve_AlreadyApproved(t *testing.T) {
	f := newClaimFixture()
	claim := &entities.OwnershipClaim{ID: uuid.New(), StartupID: uuid.New(), Approved: true}
	f.claims.On("GetByID", mock.Anything, claim.ID).Return(claim, nil).Once()

	_, err := f.uc.Approve(context.Background(), authAs(entities.UserRoleAdmin), claim.ID)
	appErr := requireAppError(t, err, http.StatusConflict)
	assert.Equal(t, "claim already approved", appErr.Message)
	f.uow.AssertCalled(t, "WithLock", mock.Anything)
}

func TestClaimUsecase_RejectAndList(t *testing.T) {
	ctx := context.Background()
	f := newClaimFixture()
	admin := authAs(entities.UserRoleAdmin)

	id := uuid.New()
	f.claims.On("Delete", ctx, id).Return(nil).Once()
	require.NoError(t, f.uc.Reject(ctx, admin, id))

	missing := uuid.New()
	f.claims.On("Delete", ctx, missing).Return(domainerrors.ErrNotFound).Once()
	requireAppError(t, f.uc.Reject(ctx, admin, missing), http.StatusNotFound)

	pending := false
	f.claims.On("List", ctx, entities.ClaimFilter{Approved: &pending}).Return([]*entities.ClaimView{{ID: uuid.New()}}, nil).Once()
	views, err := f.uc.List(ctx, admin, "pending")
	require.NoError(t, err)
	assert.Len(t, views, 1)

	_, err = f.uc.List(ctx, admin, "rejected")
	requireAppError(t, err, http.StatusBadRequest)

	user := authAs(entities.UserRoleEntrepreneur)
	f.claims.On("List", ctx, entities.ClaimFilter{UserID: &user.UserID}).Return([]*entities.ClaimView{}, nil).Once()
	mine, err := f.uc.ListMine(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = f.uc.ListMine(ctx, entities.Anonymous())
	requireAppError(t, err, http.StatusUnauthorized)
}
