package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/internal/usecases"
)

// AuthHandler handles the account forms
type AuthHandler struct {
	auth *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp registers an account
// POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input entities.SignUpInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.auth.SignUp(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, session)
}

// SignIn exchanges credentials for a session
// POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input entities.SignInInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.auth.SignIn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// ResetPassword sends a recovery email
// POST /api/v1/auth/password/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "if the address is registered, a recovery email has been sent"})
}

// ChangePassword sets a new password for the signed in user
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input entities.NewPasswordInput
	if !bindJSON(c, &input) {
		return
	}
	err := h.auth.ChangePassword(c.Request.Context(), middleware.GetAuthContext(c), middleware.GetAccessToken(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}
