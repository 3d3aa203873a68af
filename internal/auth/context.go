package auth

import (
	"context"

	"resourcehub/internal/models"
)

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the resolved identity for a request: the session subject
// plus the tier/role the authorization checks run against.
type Claims struct {
	UserID uint
	Name   string
	Email  string
	Role   models.Role
	Tier   models.Tier
}

// IsTier1 reports whether the caller holds the privileged tier that
// gates administrative operations.
func (c Claims) IsTier1() bool { return c.Tier == models.Tier1 }

// DisplayName is the snapshot text written into audit rows and
// invitation records.
func (c Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Email != "" {
		return c.Email
	}
	return "Unknown"
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}
