package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

// UseCase serves the authenticated user's own account record.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateInput is a sparse profile patch.
type UpdateInput struct {
	Username *string
	Email    *string
}

// Update applies the supplied fields to the caller's own profile. A changed
// email must not collide with another account.
func (uc *UseCase) Update(ctx context.Context, userID string, in UpdateInput) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "username cannot be empty")
		}
		user.Username = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "email cannot be empty")
		}
		if email != user.Email {
			if _, err := uc.users.GetByEmail(ctx, email); err == nil {
				return nil, domain.ErrEmailTaken
			} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("profile updated", zap.String("user_id", userID))
	return user, nil
}
