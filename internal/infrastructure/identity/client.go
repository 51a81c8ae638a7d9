package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/volatiletech/null/v8"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
)

// Client wraps the identity provider API (/auth/v1).
// Admin calls authenticate with the service key, end-user flows with the anon key.
type Client struct {
	admin      gotrue.Client
	public     gotrue.Client
	httpClient *http.Client
}

// NewClient creates an identity provider client
func NewClient(baseURL, serviceKey, anonKey string, httpClient *http.Client) *Client {
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	authURL := strings.TrimRight(baseURL, "/") + "/auth/v1"
	return &Client{
		admin:      gotrue.New("", serviceKey).WithCustomGoTrueURL(authURL).WithToken(serviceKey),
		public:     gotrue.New("", anonKey).WithCustomGoTrueURL(authURL).WithToken(anonKey),
		httpClient: httpClient,
	}
}

const listPageSize = 1000

// List returns every registered user
func (c *Client) List(ctx context.Context) ([]*entities.User, error) {
	users := make([]*entities.User, 0)
	for page := 1; ; page++ {
		query := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(listPageSize)},
		}
		resp, err := c.scoped(ctx, c.admin, query).AdminListUsers()
		if err != nil {
			return nil, c.fail(ctx, err)
		}
		for i := range resp.Users {
			users = append(users, toUser(&resp.Users[i]))
		}
		if len(resp.Users) < listPageSize {
			return users, nil
		}
	}
}

// GetByID returns one user
func (c *Client) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	resp, err := c.scoped(ctx, c.admin, nil).AdminGetUser(types.AdminGetUserRequest{UserID: id})
	if err != nil {
		return nil, c.fail(ctx, err)
	}
	return toUser(&resp.User), nil
}

// Update merges role and full name into the user's existing metadata
func (c *Client) Update(ctx context.Context, id uuid.UUID, input entities.UpdateUserInput) (*entities.User, error) {
	api := c.scoped(ctx, c.admin, nil)
	current, err := api.AdminGetUser(types.AdminGetUserRequest{UserID: id})
	if err != nil {
		return nil, c.fail(ctx, err)
	}

	metadata := map[string]interface{}{}
	for k, v := range current.UserMetadata {
		metadata[k] = v
	}
	if input.Role != nil {
		metadata["role"] = string(*input.Role)
	}
	if input.FullName != nil {
		metadata["full_name"] = *input.FullName
	}

	updated, err := api.AdminUpdateUser(types.AdminUpdateUserRequest{UserID: id, UserMetadata: metadata})
	if err != nil {
		return nil, c.fail(ctx, err)
	}
	return toUser(&updated.User), nil
}

// Delete removes the account
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.scoped(ctx, c.admin, nil).AdminDeleteUser(types.AdminDeleteUserRequest{UserID: id}); err != nil {
		return c.fail(ctx, err)
	}
	return nil
}

// SignUp registers a user with role, full name and company metadata.
// The session is empty when the provider requires email confirmation.
func (c *Client) SignUp(ctx context.Context, input entities.SignUpInput) (*entities.AuthSession, error) {
	data := map[string]interface{}{
		"role":      string(input.Role),
		"full_name": input.FullName,
	}
	if input.Company != "" {
		data["company"] = input.Company
	}
	resp, err := c.scoped(ctx, c.public, nil).Signup(types.SignupRequest{
		Email:    input.Email,
		Password: input.Password,
		Data:     data,
	})
	if err != nil {
		return nil, c.fail(ctx, err)
	}

	session := toSession(&resp.Session)
	if session.User == nil && resp.User.ID != uuid.Nil {
		session.User = toUser(&resp.User)
	}
	return session, nil
}

// SignIn exchanges email and password for a session
func (c *Client) SignIn(ctx context.Context, email, password string) (*entities.AuthSession, error) {
	resp, err := c.scoped(ctx, c.public, nil).SignInWithEmailPassword(email, password)
	if err != nil {
		err = c.fail(ctx, err)
		if errors.Is(err, domainerrors.ErrBadRequest) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	return toSession(&resp.Session), nil
}

// RecoverPassword sends the password recovery email
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	if err := c.scoped(ctx, c.public, nil).Recover(types.RecoverRequest{Email: email}); err != nil {
		return c.fail(ctx, err)
	}
	return nil
}

// UpdatePassword changes the password of the user owning accessToken
func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) error {
	_, err := c.scoped(ctx, c.public.WithToken(accessToken), nil).UpdateUser(types.UpdateUserRequest{Password: &password})
	if err == nil {
		return nil
	}
	err = c.fail(ctx, err)
	if errors.Is(err, domainerrors.ErrBadRequest) {
		return domainerrors.ErrUnauthorized
	}
	return err
}

// scoped binds one provider call to ctx and appends query to its URL
func (c *Client) scoped(ctx context.Context, api gotrue.Client, query url.Values) gotrue.Client {
	return api.WithClient(http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: &requestScope{ctx: ctx, query: query, next: c.httpClient.Transport},
	})
}

type requestScope struct {
	ctx   context.Context
	query url.Values
	next  http.RoundTripper
}

func (s *requestScope) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(s.ctx)
	if len(s.query) > 0 {
		q := out.URL.Query()
		for k, v := range s.query {
			q[k] = v
		}
		out.URL.RawQuery = q.Encode()
	}
	next := s.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(out)
}

// fail maps a provider error, preferring the caller's cancellation
func (c *Client) fail(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return translateError(err)
}

// the provider client reports non-2xx answers as "response status code N: body"
var statusPattern = regexp.MustCompile(`(?s)^response status code (\d+)(?:: (.*))?$`)

func translateError(err error) error {
	if errors.Is(err, types.ErrInvalidTokenRequest) {
		return domainerrors.BadRequest("email and password are required")
	}
	m := statusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrUpstream, err)
	}
	status, _ := strconv.Atoi(m[1])
	return statusError(status, m[2])
}

type errorPayload struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func statusError(status int, body string) error {
	var payload errorPayload
	_ = json.Unmarshal([]byte(body), &payload)
	msg := payload.Msg
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = payload.ErrorDescription
	}

	switch {
	case status == http.StatusNotFound:
		return domainerrors.ErrNotFound
	case status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "already"):
		return domainerrors.Conflict(msg)
	case status >= 400 && status < 500:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeBadRequest, msg, domainerrors.ErrBadRequest)
	default:
		return fmt.Errorf("%w: identity request failed with status %d: %s", domainerrors.ErrUpstream, status, body)
	}
}

func toUser(u *types.User) *entities.User {
	user := &entities.User{
		ID:        u.ID,
		Email:     u.Email,
		Role:      entities.UserRole(metadataString(u.UserMetadata, "role")),
		FullName:  optional(metadataString(u.UserMetadata, "full_name")),
		Company:   optional(metadataString(u.UserMetadata, "company")),
		CreatedAt: u.CreatedAt,
	}
	if !user.Role.Valid() {
		user.Role = entities.UserRoleEntrepreneur
	}
	if u.LastSignInAt != nil {
		user.LastSignInAt = null.TimeFrom(*u.LastSignInAt)
	}
	return user
}

func toSession(s *types.Session) *entities.AuthSession {
	session := &entities.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		TokenType:    s.TokenType,
	}
	if s.User.ID != uuid.Nil {
		session.User = toUser(&s.User)
	}
	return session
}

func metadataString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func optional(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
