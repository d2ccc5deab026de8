package core

import (
	"context"
)

type sessionKey struct{}

// Session the signer acting in the current request
type Session struct {
	Principal string
	// RequestID client supplied, retries of one request share it
	RequestID string
}

// WithSession context with session
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom get session from context
func SessionFrom(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	return session, ok && session != nil && session.Principal != ""
}

// CurrentPrincipal returns ErrNotInitialized without an active session
func CurrentPrincipal(ctx context.Context) (string, error) {
	session, ok := SessionFrom(ctx)
	if !ok {
		return "", ErrNotInitialized
	}

	return session.Principal, nil
}
