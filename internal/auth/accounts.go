package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/web-inv/sitebuilder/internal/db"
)

// Account providers.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// resetTTL is how long a password reset token stays valid.
const resetTTL = time.Hour

// Accounts is the sqlite-backed account directory shared by every
// LocalProvider.
type Accounts struct {
	db      *db.DB
	cost    int
	onReset func(email, token string)
}

// AccountsOption configures Accounts.
type AccountsOption func(*Accounts)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) AccountsOption {
	return func(a *Accounts) { a.cost = cost }
}

// WithResetNotifier sets the function that delivers password reset
// tokens. The default only logs that a reset was requested.
func WithResetNotifier(fn func(email, token string)) AccountsOption {
	return func(a *Accounts) { a.onReset = fn }
}

// NewAccounts creates an account directory on database.
func NewAccounts(database *db.DB, opts ...AccountsOption) *Accounts {
	a := &Accounts{
		db:   database,
		cost: bcrypt.DefaultCost,
		onReset: func(email, _ string) {
			log.Printf("auth: password reset requested for %s", email)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Create registers a password account.
func (a *Accounts) Create(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, providerErr(CodeInvalidEmail, nil)
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := a.byEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, providerErr(CodeEmailAlreadyInUse, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:        uuid.New().String(),
		Email:     email,
		Provider:  ProviderPassword,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, provider, created_at, last_sign_in)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, string(hash), u.Provider,
		u.CreatedAt.Format(time.DateTime), u.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting account: %w", err)
	}
	return u, nil
}

// Authenticate checks a password sign-in.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, providerErr(CodeInvalidEmail, nil)
	}
	acct, err := a.byEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, providerErr(CodeUserNotFound, nil)
	}
	if acct.hash == "" {
		return nil, providerErr(CodeWrongPassword, errors.New("account has no password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.hash), []byte(password)); err != nil {
		return nil, providerErr(CodeWrongPassword, nil)
	}
	a.touch(ctx, acct.user.ID)
	return &acct.user, nil
}

// Federated returns the account for a federated identity, creating it on
// first sign-in.
func (a *Accounts) Federated(ctx context.Context, id FederatedIdentity) (*User, error) {
	email := normalizeEmail(id.Email)
	if !validEmail(email) {
		return nil, providerErr(CodeInvalidEmail, nil)
	}
	acct, err := a.byEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		a.touch(ctx, acct.user.ID)
		return &acct.user, nil
	}

	u := &User{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: id.Name,
		Provider:    ProviderGoogle,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, provider, display_name, created_at, last_sign_in)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Provider, u.DisplayName,
		u.CreatedAt.Format(time.DateTime), u.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting federated account: %w", err)
	}
	return u, nil
}

// RequestReset issues a reset token for email and hands it to the reset
// notifier.
func (a *Accounts) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return providerErr(CodeInvalidEmail, nil)
	}
	acct, err := a.byEmail(ctx, email)
	if err != nil {
		return err
	}
	if acct == nil {
		return providerErr(CodeUserNotFound, nil)
	}

	token := uuid.New().String()
	now := time.Now().UTC()
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, account_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		token, acct.user.ID, now.Format(time.DateTime), now.Add(resetTTL).Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("inserting password reset: %w", err)
	}
	a.onReset(acct.user.Email, token)
	return nil
}

// ResetPassword sets a new password using a token from RequestReset.
// Tokens are single use.
func (a *Accounts) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var (
		accountID string
		expiresAt string
		used      bool
	)
	err := a.db.QueryRowContext(ctx,
		`SELECT account_id, expires_at, used FROM password_resets WHERE token = ?`, token,
	).Scan(&accountID, &expiresAt, &used)
	if errors.Is(err, sql.ErrNoRows) {
		return providerErr(CodeInvalidResetToken, nil)
	}
	if err != nil {
		return fmt.Errorf("looking up reset token: %w", err)
	}
	expires, ok := parseTime(expiresAt)
	if used || !ok || time.Now().After(expires) {
		return providerErr(CodeInvalidResetToken, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reset: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE password_resets SET used = 1 WHERE token = ? AND used = 0`, token)
	if err != nil {
		return fmt.Errorf("consuming reset token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("consuming reset token: %w", err)
	}
	if n != 1 {
		// Redeemed by a concurrent reset.
		return providerErr(CodeInvalidResetToken, nil)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET password_hash = ? WHERE id = ?`, string(hash), accountID); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return tx.Commit()
}

type account struct {
	user User
	hash string
}

func (a *Accounts) byEmail(ctx context.Context, email string) (*account, error) {
	var (
		acct    account
		created string
	)
	err := a.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, provider, display_name, created_at
		FROM accounts WHERE email = ?`, email,
	).Scan(&acct.user.ID, &acct.user.Email, &acct.hash, &acct.user.Provider, &acct.user.DisplayName, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	acct.user.CreatedAt, _ = parseTime(created)
	return &acct, nil
}

// parseTime reads a DATETIME column, which the driver may hand back in
// either layout.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateTime, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (a *Accounts) touch(ctx context.Context, id string) {
	if _, err := a.db.ExecContext(ctx,
		`UPDATE accounts SET last_sign_in = ? WHERE id = ?`,
		time.Now().UTC().Format(time.DateTime), id,
	); err != nil {
		log.Printf("auth: recording sign-in for %s: %v", id, err)
	}
}
