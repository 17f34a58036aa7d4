package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/identity"
)

// Service delegates every credential flow to the identity provider and keeps
// the mirrored profile row in sync.
type Service struct {
	provider identity.Provider
	mirror   ProfileMirror
	logger   *slog.Logger
}

func NewService(provider identity.Provider, mirror ProfileMirror, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		mirror:   mirror,
		logger:   logger,
	}
}

// Register creates the identity and its mirrored profile row. If the mirror
// insert fails after the identity exists, the identity is deleted again so no
// orphaned account remains.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*identity.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.provider.SignUp(ctx, dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, internal.ErrEmailRegistered
		}
		s.logger.Error("signup failed", "error", err, "email", dto.Email)
		return nil, internal.NewDependencyError("Failed to register user", err)
	}

	if err := s.mirror.CreateProfile(user.ID, user.Email); err != nil {
		s.logger.Error("profile mirror insert failed, rolling back identity",
			"error", err, "user_id", user.ID)

		if delErr := s.provider.AdminDeleteUser(ctx, user.ID); delErr != nil {
			s.logger.Error("compensating identity delete failed; orphaned identity remains",
				"error", delErr, "user_id", user.ID)
		}
		return nil, internal.NewInternalError("Failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login exchanges credentials for a session. Unknown email and wrong password
// produce the same error so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*identity.Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	session, err := s.provider.SignInWithPassword(ctx, dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("login failed", "error", err)
		return nil, internal.NewDependencyError("Failed to log in", err)
	}

	return session, nil
}

// ForgotPassword triggers the provider's recovery flow. The response never
// reveals whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.provider.Recover(ctx, dto.Email); err != nil {
		s.logger.Error("password recovery request failed", "error", err)
		return internal.NewDependencyError("Failed to request password reset", err)
	}

	return nil
}

// ResetPassword completes a recovery flow using the access token from the
// recovery link.
func (s *Service) ResetPassword(ctx context.Context, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.provider.UpdatePassword(ctx, dto.AccessToken, dto.Password); err != nil {
		if errors.Is(err, identity.ErrInvalidToken) || errors.Is(err, identity.ErrTokenExpired) {
			return internal.NewValidationError("Invalid or expired recovery token", internal.ErrCodeInvalidToken)
		}
		s.logger.Error("password reset failed", "error", err)
		return internal.NewDependencyError("Failed to reset password", err)
	}

	return nil
}

// ChangePassword re-verifies the current password through a fresh password
// grant before updating, so a leaked session alone cannot rotate credentials.
func (s *Service) ChangePassword(ctx context.Context, user *User, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	session, err := s.provider.SignInWithPassword(ctx, user.Email, dto.CurrentPassword)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return internal.ErrWrongPassword
		}
		s.logger.Error("current password verification failed", "error", err, "user_id", user.ID)
		return internal.NewDependencyError("Failed to change password", err)
	}

	if err := s.provider.UpdatePassword(ctx, session.AccessToken, dto.NewPassword); err != nil {
		s.logger.Error("password update failed", "error", err, "user_id", user.ID)
		return internal.NewDependencyError("Failed to change password", err)
	}

	s.logger.Info("password changed", "user_id", user.ID)
	return nil
}

// Authenticate resolves a bearer token to an identity for the middleware.
// Missing token handling lives in the middleware; here a token is always
// present.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	user, err := s.provider.UserFromToken(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) || errors.Is(err, identity.ErrTokenExpired) {
			return nil, internal.ErrInvalidToken
		}
		s.logger.Error("token verification failed", "error", err)
		return nil, internal.NewDependencyError("Authentication failed", err)
	}

	return &User{ID: user.ID, Email: user.Email}, nil
}
