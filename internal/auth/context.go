package auth

import "context"

// Fallback actor names recorded when a request carries no identity
const (
	SystemUserName = "System User"
	AdminUserName  = "Admin User"
)

// UserContext holds the identity attached to a request
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Roles       []string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Actor is the name and email written to activity logs
type Actor struct {
	Name  string
	Email string
}

// ActorFromContext returns the request identity, or an actor named fallback
// with no email for anonymous requests.
func ActorFromContext(ctx context.Context, fallback string) Actor {
	if user, ok := FromContext(ctx); ok {
		name := user.DisplayName
		if name == "" {
			name = user.Email
		}
		if name == "" {
			name = fallback
		}
		return Actor{Name: name, Email: user.Email}
	}
	return Actor{Name: fallback}
}
