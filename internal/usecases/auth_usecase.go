package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/internal/validation"
	"startup-directory.backend/pkg/logger"
)

// AuthUsecase validates the account forms and delegates them to the identity provider
type AuthUsecase struct {
	provider repositories.AuthProvider
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(provider repositories.AuthProvider) *AuthUsecase {
	return &AuthUsecase{provider: provider}
}

// SignUp registers an entrepreneur or investor
func (u *AuthUsecase) SignUp(ctx context.Context, input entities.SignUpInput) (*entities.AuthSession, error) {
	if err := validation.ValidateSignUp(input); err != nil {
		return nil, validationFailed(err)
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.Company = strings.TrimSpace(input.Company)

	session, err := u.provider.SignUp(ctx, input)
	if err != nil {
		return nil, providerError(ctx, "sign up", err)
	}
	logger.Info(ctx, "User signed up", zap.String("role", string(input.Role)))
	return session, nil
}

// SignIn exchanges credentials for a session
func (u *AuthUsecase) SignIn(ctx context.Context, input entities.SignInInput) (*entities.AuthSession, error) {
	if err := validation.ValidateSignIn(input); err != nil {
		return nil, validationFailed(err)
	}

	session, err := u.provider.SignIn(ctx, strings.ToLower(strings.TrimSpace(input.Email)), input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnauthorized) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, providerError(ctx, "sign in", err)
	}
	return session, nil
}

// ResetPassword sends a recovery email. Unknown addresses succeed silently.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input entities.ResetPasswordInput) error {
	if err := validation.ValidateResetPassword(input); err != nil {
		return validationFailed(err)
	}

	err := u.provider.RecoverPassword(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return providerError(ctx, "recover password", err)
	}
	return nil
}

// ChangePassword sets a new password for the caller's session
func (u *AuthUsecase) ChangePassword(ctx context.Context, auth *entities.AuthContext, accessToken string, input entities.NewPasswordInput) error {
	if err := requireAuthenticated(auth); err != nil {
		return err
	}
	if err := validation.ValidateNewPassword(input); err != nil {
		return validationFailed(err)
	}

	if err := u.provider.UpdatePassword(ctx, accessToken, input.Password); err != nil {
		if errors.Is(err, domainerrors.ErrUnauthorized) {
			return domainerrors.Unauthorized("session expired")
		}
		return providerError(ctx, "update password", err)
	}
	logger.Info(ctx, "Password changed", zap.String("user_id", auth.UserID.String()))
	return nil
}

func providerError(ctx context.Context, op string, err error) error {
	if _, ok := domainerrors.AsAppError(err); ok {
		return err
	}
	logger.Error(ctx, "Identity provider request failed", zap.String("op", op), zap.Error(err))
	return upstreamFailure("failed to "+op, err)
}
