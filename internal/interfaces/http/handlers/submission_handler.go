package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/internal/usecases"
	"startup-directory.backend/pkg/logger"
)

// SubmissionHandler handles the public intake and the moderation queue
type SubmissionHandler struct {
	submissions *usecases.SubmissionUsecase
	moderation  *usecases.ModerationUsecase
	drafts      *usecases.DraftUsecase
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(
	submissions *usecases.SubmissionUsecase,
	moderation *usecases.ModerationUsecase,
	drafts *usecases.DraftUsecase,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		moderation:  moderation,
		drafts:      drafts,
	}
}

// Submit handles the wizard submission
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	form, files, err := parseSubmissionMultipart(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	submission, err := h.submissions.Submit(c.Request.Context(), form, files)
	if err != nil {
		response.Error(c, err)
		return
	}

	if draftID := c.PostForm("draft_id"); draftID != "" && h.drafts != nil {
		if err := h.drafts.Clear(c.Request.Context(), middleware.GetAuthContext(c), draftID); err != nil {
			logger.Warn(c.Request.Context(), "Failed to clear submitted draft", zap.String("draft_id", draftID), zap.Error(err))
		}
	}

	response.Success(c, http.StatusCreated, submission)
}

// ValidateStep checks one wizard step without saving anything
// POST /api/v1/submissions/validate?step=N
func (h *SubmissionHandler) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Query("step"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("step must be a number"))
		return
	}

	var form entities.SubmissionForm
	var files entities.SubmissionFiles
	if isMultipart(c) {
		form, files, err = parseSubmissionMultipart(c)
		if err != nil {
			response.Error(c, err)
			return
		}
	} else if !bindJSON(c, &form) {
		return
	}

	if err := h.submissions.ValidateStep(step, form, files); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": true, "step": step})
}

// List returns the moderation queue
// GET /api/v1/admin/submissions?status=
func (h *SubmissionHandler) List(c *gin.Context) {
	submissions, err := h.submissions.List(c.Request.Context(), middleware.GetAuthContext(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": submissions})
}

// Get returns one submission
// GET /api/v1/admin/submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "submission")
	if !ok {
		return
	}
	submission, err := h.submissions.Get(c.Request.Context(), middleware.GetAuthContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, submission)
}

// Approve publishes a submission
// POST /api/v1/admin/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "submission")
	if !ok {
		return
	}
	input, ok := bindModerationInput(c)
	if !ok {
		return
	}

	result, err := h.moderation.Approve(c.Request.Context(), middleware.GetAuthContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Reject closes a submission with a reason
// POST /api/v1/admin/submissions/:id/reject
func (h *SubmissionHandler) Reject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "submission")
	if !ok {
		return
	}
	input, ok := bindModerationInput(c)
	if !ok {
		return
	}

	submission, err := h.moderation.Reject(c.Request.Context(), middleware.GetAuthContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, submission)
}

// bindModerationInput accepts an empty body as "no notes"
func bindModerationInput(c *gin.Context) (entities.ModerationInput, bool) {
	var input entities.ModerationInput
	if c.Request.ContentLength == 0 {
		return input, true
	}
	return input, bindJSON(c, &input)
}
