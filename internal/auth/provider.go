// Package auth connects the app to an identity provider. Nothing about a
// document depends on who is signed in; the server only asks whether
// someone is.
package auth

import (
	"context"
	"sync"
	"time"
)

// User is the signed-in identity.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
}

// Provider is an identity provider client bound to one browser session.
// Failed calls leave the current session unchanged.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	// FederatedURL returns the consent page to send the browser to.
	FederatedURL(state string) (string, error)
	// SignInWithFederatedProvider completes a federated sign-in with the
	// code returned to the callback.
	SignInWithFederatedProvider(ctx context.Context, code string) (*User, error)
	SignOut(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	// OnSessionChange calls cb with the current user (nil when signed
	// out) now and after every change.
	OnSessionChange(cb func(*User)) (unsubscribe func())
}

// Session tracks the authentication state of one client through its
// provider's change notifications.
type Session struct {
	provider Provider

	connMu      sync.Mutex
	unsubscribe func()

	mu   sync.RWMutex
	user *User
}

// NewSession creates a Session for p. Call Connect to start tracking.
func NewSession(p Provider) *Session {
	return &Session{provider: p}
}

// Connect subscribes to provider session changes. Calling it twice is a
// no-op.
func (s *Session) Connect() {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.unsubscribe != nil {
		return
	}
	s.unsubscribe = s.provider.OnSessionChange(func(u *User) {
		s.mu.Lock()
		s.user = u
		s.mu.Unlock()
	})
}

// Close unsubscribes from the provider.
func (s *Session) Close() {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Provider returns the provider the session observes.
func (s *Session) Provider() Provider { return s.provider }

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}
