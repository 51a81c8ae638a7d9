package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/internal/usecases"
)

// StartupHandler serves the public directory, owner edits and claims
type StartupHandler struct {
	startups *usecases.StartupUsecase
	claims   *usecases.ClaimUsecase
}

// NewStartupHandler creates a new startup handler
func NewStartupHandler(startups *usecases.StartupUsecase, claims *usecases.ClaimUsecase) *StartupHandler {
	return &StartupHandler{startups: startups, claims: claims}
}

// List handles the filtered directory listing
// GET /api/v1/startups?q=&location=&tags=&yearFrom=&yearTo=&employeeRange=&page=
func (h *StartupHandler) List(c *gin.Context) {
	filter, err := parseStartupFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.startups.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Featured returns the newest approved startups
// GET /api/v1/startups/featured
func (h *StartupHandler) Featured(c *gin.Context) {
	items, err := h.startups.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Stats returns the home page counters
// GET /api/v1/startups/stats
func (h *StartupHandler) Stats(c *gin.Context) {
	stats, err := h.startups.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Filters returns the values the listing filters accept
// GET /api/v1/startups/filters
func (h *StartupHandler) Filters(c *gin.Context) {
	opts, err := h.startups.Filters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

// GetBySlug returns the detail view, gated by the caller's role
// GET /api/v1/startups/:slug
func (h *StartupHandler) GetBySlug(c *gin.Context) {
	startup, err := h.startups.GetBySlug(c.Request.Context(), middleware.GetAuthContext(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, startup)
}

// Update applies an owner's edit
// PATCH /api/v1/startups/:id
func (h *StartupHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "startup")
	if !ok {
		return
	}
	var input entities.StartupUpdateInput
	if !bindJSON(c, &input) {
		return
	}

	startup, err := h.startups.UpdateOwned(c.Request.Context(), middleware.GetAuthContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, startup)
}

// PitchDeck redirects an investor to a short-lived download link.
// The route shares its first segment with the detail route, so the ID arrives as :slug.
// GET /api/v1/startups/:slug/pitch-deck
func (h *StartupHandler) PitchDeck(c *gin.Context) {
	id, ok := parseUUIDParam(c, "slug", "startup")
	if !ok {
		return
	}

	url, err := h.startups.PitchDeckURL(c.Request.Context(), middleware.GetAuthContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, url)
}

// Claim files an ownership claim for the caller
// POST /api/v1/startups/:id/claim
func (h *StartupHandler) Claim(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "startup")
	if !ok {
		return
	}

	claim, err := h.claims.Create(c.Request.Context(), middleware.GetAuthContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, claim)
}

// MyClaims lists the caller's claims with their status
// GET /api/v1/me/claims
func (h *StartupHandler) MyClaims(c *gin.Context) {
	claims, err := h.claims.ListMine(c.Request.Context(), middleware.GetAuthContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": claims})
}

// MyStartups lists the startups the caller owns
// GET /api/v1/me/startups
func (h *StartupHandler) MyStartups(c *gin.Context) {
	startups, err := h.startups.ListOwned(c.Request.Context(), middleware.GetAuthContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": startups})
}

func parseStartupFilter(c *gin.Context) (entities.StartupFilter, error) {
	filter := entities.StartupFilter{
		Query:         strings.TrimSpace(c.Query("q")),
		Location:      strings.TrimSpace(c.Query("location")),
		EmployeeRange: strings.TrimSpace(c.Query("employeeRange")),
		Tags:          splitList(c.QueryArray("tags")),
	}

	var err error
	if filter.YearFrom, err = optionalInt(c, "yearFrom"); err != nil {
		return filter, err
	}
	if filter.YearTo, err = optionalInt(c, "yearTo"); err != nil {
		return filter, err
	}
	page, err := optionalInt(c, "page")
	if err != nil {
		return filter, err
	}
	if page != nil {
		filter.Page = *page
	}
	return filter, nil
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domainerrors.BadRequest(key + " must be a number")
	}
	return &v, nil
}

// splitList accepts both repeated parameters and comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
