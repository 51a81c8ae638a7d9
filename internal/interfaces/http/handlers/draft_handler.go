package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/internal/usecases"
)

// DraftHandler handles wizard autosave
type DraftHandler struct {
	drafts *usecases.DraftUsecase
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *usecases.DraftUsecase) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

type saveDraftRequest struct {
	Step   int                     `json:"step"`
	Values entities.SubmissionForm `json:"values"`
}

// Create starts a draft and returns its id
// POST /api/v1/drafts
func (h *DraftHandler) Create(c *gin.Context) {
	var req saveDraftRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.drafts.Create(c.Request.Context(), middleware.GetAuthContext(c), req.Step, req.Values)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, draft)
}

// Save stores the wizard state; the write may be deferred
// PUT /api/v1/drafts/:id
func (h *DraftHandler) Save(c *gin.Context) {
	var req saveDraftRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), middleware.GetAuthContext(c), c.Param("id"), req.Step, req.Values)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, draft)
}

// Get returns the draft and the step to resume from
// GET /api/v1/drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	resume, err := h.drafts.Load(c.Request.Context(), middleware.GetAuthContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resume)
}

// Delete drops the draft
// DELETE /api/v1/drafts/:id
func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.drafts.Clear(c.Request.Context(), middleware.GetAuthContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
