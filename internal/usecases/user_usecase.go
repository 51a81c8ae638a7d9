package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/domain/repositories"
	"startup-directory.backend/pkg/logger"
)

// UserUsecase manages identity provider accounts on behalf of admins
type UserUsecase struct {
	users  repositories.UserRepository
	claims repositories.OwnershipClaimRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(users repositories.UserRepository, claims repositories.OwnershipClaimRepository) *UserUsecase {
	return &UserUsecase{users: users, claims: claims}
}

// List returns every account
func (u *UserUsecase) List(ctx context.Context, auth *entities.AuthContext) ([]*entities.User, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to list users", zap.Error(err))
		return nil, upstreamFailure("failed to list users", err)
	}
	return users, nil
}

// Update changes role and display name. Admins cannot drop their own admin role.
func (u *UserUsecase) Update(ctx context.Context, auth *entities.AuthContext, id uuid.UUID, input entities.UpdateUserInput) (*entities.User, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	if input.Role != nil && !input.Role.Valid() {
		return nil, domainerrors.Validation("validation failed", map[string]string{
			"role": "must be entrepreneur, investor or admin",
		})
	}
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			input.FullName = nil
		} else {
			input.FullName = &name
		}
	}
	if input.Role == nil && input.FullName == nil {
		return nil, domainerrors.BadRequest("nothing to update")
	}
	if id == auth.UserID && input.Role != nil && *input.Role != entities.UserRoleAdmin {
		return nil, domainerrors.BadRequest("you cannot change your own admin role")
	}

	user, err := u.users.Update(ctx, id, input)
	if err != nil {
		return nil, userError(ctx, "update", err)
	}

	logger.Info(ctx, "User updated", zap.String("user_id", id.String()), zap.String("role", string(user.Role)))
	return user, nil
}

// Delete removes an account and its ownership claims. Admins cannot delete themselves.
func (u *UserUsecase) Delete(ctx context.Context, auth *entities.AuthContext, id uuid.UUID) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}
	if id == auth.UserID {
		return domainerrors.BadRequest("you cannot delete your own account")
	}

	if err := u.users.Delete(ctx, id); err != nil {
		return userError(ctx, "delete", err)
	}
	if err := u.claims.DeleteByUser(ctx, id); err != nil {
		logger.Error(ctx, "User deleted but claims were kept", zap.String("user_id", id.String()), zap.Error(err))
		return err
	}

	logger.Info(ctx, "User deleted", zap.String("user_id", id.String()))
	return nil
}

func userError(ctx context.Context, op string, err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("user not found")
	}
	if _, ok := domainerrors.AsAppError(err); ok {
		return err
	}
	logger.Error(ctx, "Identity provider request failed", zap.String("op", op), zap.Error(err))
	return upstreamFailure("failed to "+op+" user", err)
}
