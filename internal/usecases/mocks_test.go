package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock StartupRepository
type MockStartupRepository struct {
	mock.Mock
}

func (m *MockStartupRepository) Create(ctx context.Context, startup *entities.Startup) error {
	args := m.Called(ctx, startup)
	return args.Error(0)
}

func (m *MockStartupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Startup), args.Error(1)
}

func (m *MockStartupRepository) GetBySlug(ctx context.Context, slug string) (*entities.Startup, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Startup), args.Error(1)
}

func (m *MockStartupRepository) Update(ctx context.Context, startup *entities.Startup) error {
	args := m.Called(ctx, startup)
	return args.Error(0)
}

func (m *MockStartupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStartupRepository) ListApproved(ctx context.Context, filter entities.StartupFilter, pagination utils.PaginationParams) ([]*entities.Startup, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Startup), args.Get(1).(int64), args.Error(2)
}

func (m *MockStartupRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Startup, int64, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Startup), args.Get(1).(int64), args.Error(2)
}

func (m *MockStartupRepository) ListAll(ctx context.Context) ([]*entities.Startup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Startup), args.Error(1)
}

func (m *MockStartupRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entities.Startup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Startup), args.Error(1)
}

func (m *MockStartupRepository) Latest(ctx context.Context, limit int) ([]*entities.Startup, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Startup), args.Error(1)
}

func (m *MockStartupRepository) CountApproved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStartupRepository) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FilterOptions), args.Error(1)
}

// Mock SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *entities.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, status *entities.SubmissionStatus) ([]*entities.Submission, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) MarkReviewed(ctx context.Context, id uuid.UUID, review entities.SubmissionReview) error {
	args := m.Called(ctx, id, review)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CountByStatus(ctx context.Context, status entities.SubmissionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// Mock OwnershipClaimRepository
type MockOwnershipClaimRepository struct {
	mock.Mock
}

func (m *MockOwnershipClaimRepository) Create(ctx context.Context, claim *entities.OwnershipClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockOwnershipClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.OwnershipClaim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OwnershipClaim), args.Error(1)
}

func (m *MockOwnershipClaimRepository) GetByUserAndStartup(ctx context.Context, userID, startupID uuid.UUID) (*entities.OwnershipClaim, error) {
	args := m.Called(ctx, userID, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OwnershipClaim), args.Error(1)
}

func (m *MockOwnershipClaimRepository) HasApprovedOwner(ctx context.Context, startupID uuid.UUID) (bool, error) {
	args := m.Called(ctx, startupID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOwnershipClaimRepository) IsOwner(ctx context.Context, userID, startupID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, startupID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOwnershipClaimRepository) Approve(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnershipClaimRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnershipClaimRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockOwnershipClaimRepository) DeleteByStartup(ctx context.Context, startupID uuid.UUID) error {
	args := m.Called(ctx, startupID)
	return args.Error(0)
}

func (m *MockOwnershipClaimRepository) List(ctx context.Context, filter entities.ClaimFilter) ([]*entities.ClaimView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ClaimView), args.Error(1)
}

func (m *MockOwnershipClaimRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, bucket, path string, content []byte, contentType string) error {
	args := m.Called(ctx, bucket, path, content, contentType)
	return args.Error(0)
}

func (m *MockFileStorage) Remove(ctx context.Context, bucket, path string) error {
	args := m.Called(ctx, bucket, path)
	return args.Error(0)
}

func (m *MockFileStorage) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func (m *MockFileStorage) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, path, ttl)
	return args.String(0), args.Error(1)
}

// Mock DraftStore
type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Save(ctx context.Context, draft *entities.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftStore) Load(ctx context.Context, id string) (*entities.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draft), args.Error(1)
}

func (m *MockDraftStore) Clear(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, input entities.UpdateUserInput) (*entities.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock AuthProvider
type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) SignUp(ctx context.Context, input entities.SignUpInput) (*entities.AuthSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthSession), args.Error(1)
}

func (m *MockAuthProvider) SignIn(ctx context.Context, email, password string) (*entities.AuthSession, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthSession), args.Error(1)
}

func (m *MockAuthProvider) RecoverPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthProvider) UpdatePassword(ctx context.Context, accessToken, password string) error {
	args := m.Called(ctx, accessToken, password)
	return args.Error(0)
}
