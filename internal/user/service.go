package user

import (
	"context"
	"log/slog"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/identity"
)

type Repository interface {
	Create(p *Profile) error
	GetByID(id string) (*Profile, error)
	Update(id string, updates map[string]interface{}) (*Profile, error)
	UpdateEmail(id, email string) error
	Delete(id string) error
}

type Service struct {
	repo     Repository
	provider identity.Provider
	logger   *slog.Logger
}

func NewService(repo Repository, provider identity.Provider, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

func (s *Service) GetProfile(userID string) (*Profile, error) {
	p, err := s.repo.GetByID(userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to fetch profile", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch user profile", err)
	}
	return p, nil
}

// UpdateProfile patches the editable profile fields. Keys outside the
// allow-list are dropped silently; a patch left empty after filtering is a
// client error.
func (s *Service) UpdateProfile(userID string, updates map[string]interface{}) (*Profile, error) {
	patch := internal.FilterPatch(updates, patchableFields...)
	if len(patch) == 0 {
		return nil, internal.NewValidationError(
			"No valid fields to update", internal.ErrCodeEmptyPatch)
	}

	if extra, present := patch["extra"]; present && extra != nil {
		if _, ok := extra.(map[string]interface{}); !ok {
			return nil, internal.NewValidationError(
				"Field 'extra' must be an object", internal.ErrCodeValidationFailed)
		}
	}

	p, err := s.repo.Update(userID, patch)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update user profile", err)
	}
	return p, nil
}

// UpdateEmail changes the address at the provider first, then mirrors it
// locally. The provider sends a confirmation mail as part of the admin update.
func (s *Service) UpdateEmail(ctx context.Context, userID, email string) (*identity.User, error) {
	if email == "" {
		return nil, internal.NewValidationError("Email is required", internal.ErrCodeMissingFields)
	}

	updated, err := s.provider.AdminUpdateEmail(ctx, userID, email)
	if err != nil {
		s.logger.Error("provider email update failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError("Failed to update email", internal.ErrCodeIdentityProvider).WithCause(err)
	}

	if err := s.repo.UpdateEmail(userID, email); err != nil {
		s.logger.Error("profile email mirror failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError("Failed to update email", internal.ErrCodeStoreFailure).WithCause(err)
	}

	s.logger.Info("email updated", "user_id", userID)
	return updated, nil
}

// DeleteAccount removes the identity at the provider and then the mirror
// row. A mirror failure after the identity is gone is unrecoverable here and
// surfaces as a server error.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.provider.AdminDeleteUser(ctx, userID); err != nil {
		s.logger.Error("provider delete failed", "error", err, "user_id", userID)
		return internal.NewDependencyError("Failed to delete user", err)
	}

	if err := s.repo.Delete(userID); err != nil {
		s.logger.Error("profile delete failed", "error", err, "user_id", userID)
		return internal.NewInternalError("Failed to delete user profile", err)
	}

	s.logger.Info("account deleted", "user_id", userID)
	return nil
}
