// Package session classifies inbound requests as authenticated or anonymous
// and guards operations that need an identity.
package session

import (
	"context"

	"github.com/kevinaaaquil/bookshelf/backend/models"
)

// Session is either Authenticated or Anonymous. It is computed per request
// and never persisted.
type Session interface {
	isSession()
}

type Authenticated struct {
	AccountID string
	Username  string
	Email     string
}

type Anonymous struct{}

func (Authenticated) isSession() {}
func (Anonymous) isSession()     {}

// RequireAuthenticated returns the account id carried by s, or
// models.ErrUnauthenticated.
func RequireAuthenticated(s Session) (string, error) {
	switch v := s.(type) {
	case Authenticated:
		if v.AccountID != "" {
			return v.AccountID, nil
		}
	case *Authenticated:
		if v != nil && v.AccountID != "" {
			return v.AccountID, nil
		}
	}
	return "", models.ErrUnauthenticated
}

type contextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request's session, Anonymous when none was attached.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok && s != nil {
		return s
	}
	return Anonymous{}
}
