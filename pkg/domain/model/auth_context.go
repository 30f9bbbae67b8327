package model

import (
	"context"
	"slices"
	"time"

	"github.com/secmon-lab/covidash/pkg/domain/types"
)

type contextKey string

const authContextKey contextKey = "authContext"

// ScopeQuery allows running free-text SQL
const ScopeQuery = "query"

// AuthContext is the verified identity of a request. It is preserved across async boundaries.
type AuthContext struct {
	Subject   types.UserID `json:"sub,omitempty"`
	Scopes    []string     `json:"scopes,omitempty"`
	ExpiresAt time.Time    `json:"exp,omitempty"`
}

// HasScope reports whether the token granted scope
func (a *AuthContext) HasScope(scope string) bool {
	if a == nil {
		return false
	}
	return slices.Contains(a.Scopes, scope)
}

// WithAuthContext adds AuthContext to the context
func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	if authCtx == nil {
		return ctx
	}
	return context.WithValue(ctx, authContextKey, authCtx)
}

// GetAuthContext retrieves AuthContext from the context
func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	authCtx, ok := ctx.Value(authContextKey).(*AuthContext)
	return authCtx, ok && authCtx != nil
}

// UserIDFromContext returns the authenticated subject, or an empty ID for anonymous requests
func UserIDFromContext(ctx context.Context) types.UserID {
	if authCtx, ok := GetAuthContext(ctx); ok {
		return authCtx.Subject
	}
	return ""
}

// Clone creates a deep copy of the AuthContext
func (a *AuthContext) Clone() *AuthContext {
	if a == nil {
		return nil
	}
	return &AuthContext{
		Subject:   a.Subject,
		Scopes:    slices.Clone(a.Scopes),
		ExpiresAt: a.ExpiresAt,
	}
}
