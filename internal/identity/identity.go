// Package identity wraps the external credential provider. The service never
// stores or hashes credentials itself; every flow is delegated to the
// provider's HTTP API and the provider remains the source of truth for
// identities and tokens.
package identity

import (
	"context"
	"errors"
	"time"
)

// User is the identity record resolved from the provider.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Session is the result of a successful password grant.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         User   `json:"user"`
}

// Provider is the credential oracle. Implementations must distinguish the
// sentinel errors below from transport failures so callers can map them to
// client vs. server errors.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	Recover(ctx context.Context, email string) error
	UserFromToken(ctx context.Context, accessToken string) (*User, error)
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
	AdminUpdateEmail(ctx context.Context, userID, email string) (*User, error)
	AdminDeleteUser(ctx context.Context, userID string) error
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAdminKeyMissing    = errors.New("service key not configured for admin operation")
)
