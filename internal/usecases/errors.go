package usecases

import (
	"errors"
	"net/http"

	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/validation"
)

// validationFailed turns schema errors into a 400 carrying the field messages
func validationFailed(err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return domainerrors.Validation("validation failed", fieldErrs.Fields())
	}
	return err
}

func requireAuthenticated(auth *entities.AuthContext) error {
	if auth == nil || !auth.Authenticated {
		return domainerrors.Unauthorized("authentication required")
	}
	return nil
}

func requireRole(auth *entities.AuthContext, roles ...entities.UserRole) error {
	if err := requireAuthenticated(auth); err != nil {
		return err
	}
	if !auth.HasRole(roles...) {
		return domainerrors.Forbidden("insufficient permissions")
	}
	return nil
}

func requireAdmin(auth *entities.AuthContext) error {
	return requireRole(auth, entities.UserRoleAdmin)
}

// slugTaken is the structured conflict naming the startup that already owns a slug
func slugTaken(existing *entities.Startup) error {
	return domainerrors.Conflict("a startup with this slug already exists").
		WithDetails(map[string]interface{}{"existingStartup": existing.Ref()})
}

func upstreamFailure(message string, err error) error {
	return domainerrors.NewAppError(http.StatusInternalServerError, domainerrors.CodeInternalError, message, err)
}
