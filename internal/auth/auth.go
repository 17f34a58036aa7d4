package auth

import (
	"context"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// User is the authenticated identity attached to the request context by the
// middleware. ID is the provider's stable user id and scopes every row store
// query downstream.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// ProfileMirror seeds the profile row that shadows each identity in the row
// store. Implemented by the user repository; the email and delete flows live
// with the user service.
type ProfileMirror interface {
	CreateProfile(userID, email string) error
}

// MinPasswordLength is the hardened minimum; earlier iterations of the API
// accepted 6.
const MinPasswordLength = 8
