package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/usecases"
)

var testBuckets = usecases.StorageBuckets{Logos: "startup-logos", PitchDecks: "pitch-decks"}

var uploadNames = map[string]string{"logo": "logo.png", "pitch_deck": "deck.pdf"}

var pdfBody = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type fixture struct {
	startups    *memStartups
	submissions *memSubmissions
	claims      *memClaims
	users       *memUsers
	auth        *memAuth
	storage     *memStorage
	drafts      *memDrafts

	caller *entities.AuthContext
	token  string
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		startups:    newMemStartups(),
		submissions: newMemSubmissions(),
		claims:      newMemClaims(),
		users:       newMemUsers(),
		auth:        &memAuth{},
		storage:     newMemStorage(),
		drafts:      newMemDrafts(),
		caller:      entities.Anonymous(),
	}

	uow := inlineUnitOfWork{}
	drafts := usecases.NewDraftUsecase(f.drafts, 0)
	claims := usecases.NewClaimUsecase(f.claims, f.startups, uow)

	submissionH := NewSubmissionHandler(
		usecases.NewSubmissionUsecase(f.submissions, f.storage, testBuckets),
		usecases.NewModerationUsecase(f.submissions, f.startups),
		drafts,
	)
	startupH := NewStartupHandler(usecases.NewStartupUsecase(f.startups, f.claims, f.storage, testBuckets.PitchDecks, time.Hour), claims)
	adminH := NewAdminHandler(
		usecases.NewAdminUsecase(f.startups, f.submissions, f.claims, f.storage, testBuckets, uow),
		claims,
		usecases.NewUserUsecase(f.users, f.claims),
	)
	draftH := NewDraftHandler(drafts)
	authH := NewAuthHandler(usecases.NewAuthUsecase(f.auth))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.AuthContextKey, f.caller)
		c.Set(middleware.AccessTokenKey, f.token)
		c.Next()
	})

	v1 := r.Group("/api/v1")
	v1.POST("/submissions", submissionH.Submit)
	v1.POST("/submissions/validate", submissionH.ValidateStep)
	v1.GET("/startups", startupH.List)
	v1.GET("/startups/featured", startupH.Featured)
	v1.GET("/startups/:slug", startupH.GetBySlug)
	v1.PATCH("/startups/:id", startupH.Update)
	v1.GET("/startups/:slug/pitch-deck", startupH.PitchDeck)
	v1.POST("/startups/:id/claim", startupH.Claim)
	v1.GET("/me/claims", startupH.MyClaims)
	v1.POST("/drafts", draftH.Create)
	v1.PUT("/drafts/:id", draftH.Save)
	v1.GET("/drafts/:id", draftH.Get)
	v1.DELETE("/drafts/:id", draftH.Delete)
	v1.POST("/auth/signup", authH.SignUp)
	v1.POST("/auth/signin", authH.SignIn)
	v1.POST("/auth/password", authH.ChangePassword)

	admin := v1.Group("/admin")
	admin.GET("/submissions", submissionH.List)
	admin.GET("/submissions/:id", submissionH.Get)
	admin.POST("/submissions/:id/approve", submissionH.Approve)
	admin.POST("/submissions/:id/reject", submissionH.Reject)
	admin.GET("/startups", adminH.ListStartups)
	admin.GET("/startups/export", adminH.Export)
	admin.DELETE("/startups/:id", adminH.DeleteStartup)
	admin.GET("/claims", adminH.ListClaims)
	admin.POST("/claims/:id/approve", adminH.ApproveClaim)
	admin.DELETE("/claims/:id", adminH.RejectClaim)
	admin.PATCH("/users/:id", adminH.UpdateUser)
	admin.DELETE("/users/:id", adminH.DeleteUser)

	f.router = r
	return f
}

func (f *fixture) as(role entities.UserRole) uuid.UUID {
	id := uuid.New()
	f.caller = &entities.AuthContext{UserID: id, Email: string(role) + "@example.com", Role: role, Authenticated: true}
	f.token = "token-" + id.String()
	return id
}

func (f *fixture) anonymous() {
	f.caller = entities.Anonymous()
	f.token = ""
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doMultipart(t *testing.T, path string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		part, err := mw.CreateFormFile(field, uploadNames[field])
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func submissionFields() map[string]string {
	return map[string]string{
		"name":              "Café Ñú",
		"short_description": "Coffee for founders.",
		"long_description":  "Specialty coffee roasted for the local startup scene, delivered fresh to coworking spaces every single morning.",
		"founding_year":     "2020",
		"location":          "Valencia",
		"tags":              `["Foodtech","SaaS"]`,
		"employee_range":    "1-10",
		"operating_status":  "active",
		"email":             "hello@cafe-nu.example.com",
		"phone":             "+34 600 000 000",
		"social_links":      `{"linkedin":"https://linkedin.com/company/cafe-nu"}`,
		"submitter_email":   "founder@cafe-nu.example.com",
	}
}

func seedStartup(f *fixture, name, slug string) *entities.Startup {
	s := &entities.Startup{
		ID: uuid.New(),
		StartupProfile: entities.StartupProfile{
			Name:             name,
			Slug:             slug,
			ShortDescription: "A startup called " + name,
			LongDescription:  strings.Repeat(name+" builds software for small businesses across Spain. ", 3),
			FoundingYear:     2019,
			OperatingStatus:  entities.StartupStatusActive,
			Location:         "Madrid",
			Tags:             []string{"SaaS"},
			EmployeeRange:    null.StringFrom("11-50"),
			Email:            null.StringFrom("team@" + slug + ".example.com"),
			Phone:            null.StringFrom("+34 911 000 000"),
			PitchDeckURL:     null.StringFrom("startups/" + slug + "-pitch.pdf"),
		},
		IsApproved: true,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	f.startups.rows[s.ID] = s
	return s
}
