package auth

import (
	"context"
	"fmt"
	"sync"
)

// LocalProvider is a Provider for one browser session, backed by the
// shared sqlite account directory and an optional federator.
type LocalProvider struct {
	accounts  *Accounts
	federator Federator

	mu        sync.Mutex
	user      *User
	listeners map[int]func(*User)
	nextSub   int
}

// NewLocalProvider creates a signed-out provider. federator may be nil, in
// which case federated sign-in fails with ErrProviderUnavailable.
func NewLocalProvider(accounts *Accounts, federator Federator) *LocalProvider {
	return &LocalProvider{
		accounts:  accounts,
		federator: federator,
		listeners: make(map[int]func(*User)),
	}
}

// CreateAccount registers email and signs it in.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string) (*User, error) {
	u, err := p.accounts.Create(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.setUser(u)
	return u, nil
}

// SignIn checks the password for email and signs it in.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*User, error) {
	u, err := p.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.setUser(u)
	return u, nil
}

// FederatedURL returns the federator's consent page.
func (p *LocalProvider) FederatedURL(state string) (string, error) {
	if p.federator == nil {
		return "", fmt.Errorf("%w: %w", ErrFederated, ErrProviderUnavailable)
	}
	return p.federator.AuthURL(state), nil
}

// SignInWithFederatedProvider completes a federated sign-in. Every
// failure wraps ErrFederated.
func (p *LocalProvider) SignInWithFederatedProvider(ctx context.Context, code string) (*User, error) {
	if p.federator == nil {
		return nil, fmt.Errorf("%w: %w", ErrFederated, ErrProviderUnavailable)
	}
	id, err := p.federator.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFederated, err)
	}
	u, err := p.accounts.Federated(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFederated, err)
	}
	p.setUser(u)
	return u, nil
}

// SignOut clears the session.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.setUser(nil)
	return nil
}

// RequestPasswordReset issues a reset token for email.
func (p *LocalProvider) RequestPasswordReset(ctx context.Context, email string) error {
	return p.accounts.RequestReset(ctx, email)
}

// ResetPassword sets a new password with a token from RequestPasswordReset.
// It does not sign the user in.
func (p *LocalProvider) ResetPassword(ctx context.Context, token, password string) error {
	return p.accounts.ResetPassword(ctx, token, password)
}

// OnSessionChange registers cb and calls it with the current user.
func (p *LocalProvider) OnSessionChange(cb func(*User)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.listeners[id] = cb
	current := p.user
	p.mu.Unlock()

	cb(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

func (p *LocalProvider) setUser(u *User) {
	p.mu.Lock()
	p.user = u
	cbs := make([]func(*User), 0, len(p.listeners))
	for _, cb := range p.listeners {
		cbs = append(cbs, cb)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(u)
	}
}
