package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/pkg/utils"
)

// In-memory implementations of the repository ports. They keep just enough
// behaviour for the handlers to be exercised through the real usecases.

type memStartups struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entities.Startup
}

func newMemStartups(seed ...*entities.Startup) *memStartups {
	m := &memStartups{rows: map[uuid.UUID]*entities.Startup{}}
	for _, s := range seed {
		m.rows[s.ID] = s
	}
	return m
}

func (m *memStartups) Create(_ context.Context, s *entities.Startup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Slug == s.Slug {
			return domainerrors.ErrAlreadyExists
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memStartups) GetByID(_ context.Context, id uuid.UUID) (*entities.Startup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStartups) GetBySlug(_ context.Context, slug string) (*entities.Startup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (m *memStartups) Update(_ context.Context, s *entities.Startup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memStartups) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStartups) sorted(keep func(*entities.Startup) bool) []*entities.Startup {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entities.Startup
	for _, s := range m.rows {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func page(rows []*entities.Startup, p utils.PaginationParams) []*entities.Startup {
	if p.Limit <= 0 {
		return rows
	}
	start := p.CalculateOffset()
	if start >= len(rows) {
		return nil
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func (m *memStartups) ListApproved(_ context.Context, f entities.StartupFilter, p utils.PaginationParams) ([]*entities.Startup, int64, error) {
	rows := m.sorted(func(s *entities.Startup) bool {
		if !s.IsApproved {
			return false
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(s.Name+" "+s.ShortDescription), strings.ToLower(f.Query)) {
			return false
		}
		if f.Location != "" && !strings.EqualFold(s.Location, f.Location) {
			return false
		}
		if f.EmployeeRange != "" && s.EmployeeRange.String != f.EmployeeRange {
			return false
		}
		if f.YearFrom != nil && s.FoundingYear < *f.YearFrom {
			return false
		}
		if f.YearTo != nil && s.FoundingYear > *f.YearTo {
			return false
		}
		for _, want := range f.Tags {
			found := false
			for _, tag := range s.Tags {
				found = found || tag == want
			}
			if !found {
				return false
			}
		}
		return true
	})
	return page(rows, p), int64(len(rows)), nil
}

func (m *memStartups) List(_ context.Context, p utils.PaginationParams) ([]*entities.Startup, int64, error) {
	rows := m.sorted(func(*entities.Startup) bool { return true })
	return page(rows, p), int64(len(rows)), nil
}

func (m *memStartups) ListAll(_ context.Context) ([]*entities.Startup, error) {
	return m.sorted(func(*entities.Startup) bool { return true }), nil
}

func (m *memStartups) ListByOwner(_ context.Context, _ uuid.UUID) ([]*entities.Startup, error) {
	return nil, nil
}

func (m *memStartups) Latest(_ context.Context, limit int) ([]*entities.Startup, error) {
	rows := m.sorted(func(s *entities.Startup) bool { return s.IsApproved })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *memStartups) CountApproved(_ context.Context) (int64, error) {
	return int64(len(m.sorted(func(s *entities.Startup) bool { return s.IsApproved }))), nil
}

func (m *memStartups) FilterOptions(_ context.Context) (*entities.FilterOptions, error) {
	return &entities.FilterOptions{Locations: []string{}, Tags: []string{}}, nil
}

type memSubmissions struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entities.Submission
}

func newMemSubmissions() *memSubmissions {
	return &memSubmissions{rows: map[uuid.UUID]*entities.Submission{}}
}

func (m *memSubmissions) Create(_ context.Context, s *entities.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSubmissions) GetByID(_ context.Context, id uuid.UUID) (*entities.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubmissions) List(_ context.Context, status *entities.SubmissionStatus) ([]*entities.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.Submission{}
	for _, s := range m.rows {
		if status == nil || s.Status == *status {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSubmissions) MarkReviewed(_ context.Context, id uuid.UUID, review entities.SubmissionReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if !s.IsPending() {
		return domainerrors.ErrConflict
	}
	s.Status = review.Status
	s.AdminNotes = review.AdminNotes
	return nil
}

func (m *memSubmissions) CountByStatus(_ context.Context, status entities.SubmissionStatus) (int64, error) {
	rows, _ := m.List(context.Background(), &status)
	return int64(len(rows)), nil
}

type memClaims struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entities.OwnershipClaim
}

func newMemClaims() *memClaims {
	return &memClaims{rows: map[uuid.UUID]*entities.OwnershipClaim{}}
}

func (m *memClaims) Create(_ context.Context, c *entities.OwnershipClaim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.UserID == c.UserID && existing.StartupID == c.StartupID {
			return domainerrors.ErrAlreadyExists
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memClaims) GetByID(_ context.Context, id uuid.UUID) (*entities.OwnershipClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memClaims) GetByUserAndStartup(_ context.Context, userID, startupID uuid.UUID) (*entities.OwnershipClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.UserID == userID && c.StartupID == startupID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (m *memClaims) HasApprovedOwner(_ context.Context, startupID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.StartupID == startupID && c.Approved {
			return true, nil
		}
	}
	return false, nil
}

func (m *memClaims) IsOwner(_ context.Context, userID, startupID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.UserID == userID && c.StartupID == startupID && c.Approved {
			return true, nil
		}
	}
	return false, nil
}

func (m *memClaims) Approve(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	for _, other := range m.rows {
		if other.StartupID == c.StartupID && other.Approved && other.ID != id {
			return domainerrors.ErrAlreadyExists
		}
	}
	c.Approved = true
	return nil
}

func (m *memClaims) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memClaims) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.rows {
		if c.UserID == userID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *memClaims) DeleteByStartup(_ context.Context, startupID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.rows {
		if c.StartupID == startupID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *memClaims) List(_ context.Context, f entities.ClaimFilter) ([]*entities.ClaimView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.ClaimView{}
	for _, c := range m.rows {
		if f.UserID != nil && c.UserID != *f.UserID {
			continue
		}
		if f.Approved != nil && c.Approved != *f.Approved {
			continue
		}
		out = append(out, &entities.ClaimView{
			ID:        c.ID,
			UserID:    c.UserID,
			StartupID: c.StartupID,
			Approved:  c.Approved,
			Status:    c.Status(),
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

func (m *memClaims) CountPending(_ context.Context) (int64, error) {
	approved := false
	rows, _ := m.List(context.Background(), entities.ClaimFilter{Approved: &approved})
	return int64(len(rows)), nil
}

type memUsers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entities.User
}

func newMemUsers(seed ...*entities.User) *memUsers {
	m := &memUsers{rows: map[uuid.UUID]*entities.User{}}
	for _, u := range seed {
		m.rows[u.ID] = u
	}
	return m
}

func (m *memUsers) List(_ context.Context) ([]*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.User{}
	for _, u := range m.rows {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Update(_ context.Context, id uuid.UUID, input entities.UpdateUserInput) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memAuth struct {
	signUps  []entities.SignUpInput
	password string
}

func (m *memAuth) SignUp(_ context.Context, input entities.SignUpInput) (*entities.AuthSession, error) {
	m.signUps = append(m.signUps, input)
	return &entities.AuthSession{AccessToken: "access", User: &entities.User{ID: uuid.New(), Email: input.Email, Role: input.Role}}, nil
}

func (m *memAuth) SignIn(_ context.Context, email, password string) (*entities.AuthSession, error) {
	if password != "correct-horse-1" {
		return nil, domainerrors.Unauthorized("invalid login credentials")
	}
	return &entities.AuthSession{AccessToken: "access", TokenType: "bearer"}, nil
}

func (m *memAuth) RecoverPassword(_ context.Context, _ string) error {
	return nil
}

func (m *memAuth) UpdatePassword(_ context.Context, _, password string) error {
	m.password = password
	return nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Upload(_ context.Context, bucket, path string, content []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+path] = content
	return nil
}

func (m *memStorage) Remove(_ context.Context, bucket, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+path)
	return nil
}

func (m *memStorage) PublicURL(bucket, path string) string {
	return "https://storage.example.com/public/" + bucket + "/" + path
}

func (m *memStorage) SignedURL(_ context.Context, bucket, path string, _ time.Duration) (string, error) {
	return "https://storage.example.com/sign/" + bucket + "/" + path + "?token=t", nil
}

func (m *memStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type memDrafts struct {
	mu   sync.Mutex
	rows map[string]*entities.Draft
}

func newMemDrafts() *memDrafts {
	return &memDrafts{rows: map[string]*entities.Draft{}}
}

func (m *memDrafts) Save(_ context.Context, d *entities.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *memDrafts) Load(_ context.Context, id string) (*entities.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDrafts) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memDrafts) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok
}

type inlineUnitOfWork struct{}

func (inlineUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineUnitOfWork) WithLock(ctx context.Context) context.Context {
	return ctx
}

var (
	_ repositories.StartupRepository        = (*memStartups)(nil)
	_ repositories.SubmissionRepository     = (*memSubmissions)(nil)
	_ repositories.OwnershipClaimRepository = (*memClaims)(nil)
	_ repositories.UserRepository           = (*memUsers)(nil)
	_ repositories.AuthProvider             = (*memAuth)(nil)
	_ repositories.FileStorage              = (*memStorage)(nil)
	_ repositories.DraftStore               = (*memDrafts)(nil)
	_ repositories.UnitOfWork               = inlineUnitOfWork{}
)
