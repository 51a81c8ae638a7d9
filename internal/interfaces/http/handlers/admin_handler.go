package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/internal/usecases"
	"startup-directory.backend/pkg/utils"
)

// AdminHandler handles catalogue, claim and user administration
type AdminHandler struct {
	admin  *usecases.AdminUsecase
	claims *usecases.ClaimUsecase
	users  *usecases.UserUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *usecases.AdminUsecase, claims *usecases.ClaimUsecase, users *usecases.UserUsecase) *AdminHandler {
	return &AdminHandler{admin: admin, claims: claims, users: users}
}

// ListStartups returns every startup, paginated
// GET /api/v1/admin/startups?page=&limit=
func (h *AdminHandler) ListStartups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DirectoryPageSize)))

	startups, meta, err := h.admin.ListStartups(c.Request.Context(), middleware.GetAuthContext(c), utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, startups, meta)
}

// GetStartup returns the full record
// GET /api/v1/admin/startups/:id
func (h *AdminHandler) GetStartup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "startup")
	if !ok {
		return
	}
	startup, err := h.admin.GetStartup(c.Request.Context(), middleware.GetAuthContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, startup)
}

// CreateStartup publishes a startup without going through the queue
// POST /api/v1/admin/startups
func (h *AdminHandler) CreateStartup(c *gin.Context) {
	form, files, err := parseSubmissionMultipart(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	startup, err := h.admin.CreateStartup(c.Request.Context(), middleware.GetAuthContext(c), form, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, startup)
}

// DeleteStartup removes a startup and its claims
// DELETE /api/v1/admin/startups/:id
func (h *AdminHandler) DeleteStartup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "startup")
	if !ok {
		return
	}
	if err := h.admin.DeleteStartup(c.Request.Context(), middleware.GetAuthContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export downloads the catalogue as CSV
// GET /api/v1/admin/startups/export
func (h *AdminHandler) Export(c *gin.Context) {
	// Buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.admin.ExportCSV(c.Request.Context(), middleware.GetAuthContext(c), &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+usecases.ExportFilename(timeNow())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Stats returns the moderation dashboard counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context(), middleware.GetAuthContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListClaims returns claims for moderation
// GET /api/v1/admin/claims?status=pending|approved
func (h *AdminHandler) ListClaims(c *gin.Context) {
	claims, err := h.claims.List(c.Request.Context(), middleware.GetAuthContext(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": claims})
}

// ApproveClaim grants ownership
// POST /api/v1/admin/claims/:id/approve
func (h *AdminHandler) ApproveClaim(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "claim")
	if !ok {
		return
	}
	claim, err := h.claims.Approve(c.Request.Context(), middleware.GetAuthContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, claim)
}

// RejectClaim deletes a claim
// DELETE /api/v1/admin/claims/:id
func (h *AdminHandler) RejectClaim(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "claim")
	if !ok {
		return
	}
	if err := h.claims.Reject(c.Request.Context(), middleware.GetAuthContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers returns every account
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), middleware.GetAuthContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": users})
}

// UpdateUser changes role and display name
// PATCH /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "user")
	if !ok {
		return
	}
	var input entities.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.GetAuthContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteUser removes an account and its claims
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "user")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.GetAuthContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
