package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/web-inv/sitebuilder/internal/db"
)

type fakeFederator struct {
	id  FederatedIdentity
	err error
}

func (f *fakeFederator) AuthURL(state string) string {
	return "https://accounts.example.com/consent?state=" + state
}

func (f *fakeFederator) Exchange(ctx context.Context, code string) (FederatedIdentity, error) {
	return f.id, f.err
}

func setupAccounts(t *testing.T, opts ...AccountsOption) *Accounts {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewAccounts(database, append([]AccountsOption{WithBcryptCost(bcrypt.MinCost)}, opts...)...)
}

func TestValidateSignUp(t *testing.T) {
	tests := []struct {
		password, confirm string
		want              error
	}{
		{"secret1", "secret1", nil},
		{"secret1", "secret2", ErrPasswordMismatch},
		{"abc", "abc", ErrPasswordTooShort},
		{"abcdef", "abcdef", nil},
	}
	for _, tt := range tests {
		if err := ValidateSignUp(tt.password, tt.confirm); !errors.Is(err, tt.want) {
			t.Errorf("ValidateSignUp(%q, %q) = %v, want %v", tt.password, tt.confirm, err, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{providerErr(CodeUserNotFound, nil), MsgUserNotFound},
		{providerErr(CodeWrongPassword, nil), MsgWrongPassword},
		{providerErr(CodeEmailAlreadyInUse, nil), MsgEmailInUse},
		{providerErr(CodeInvalidEmail, nil), MsgInvalidEmail},
		{providerErr(CodeNetworkFailed, nil), MsgGeneric},
		{fmt.Errorf("wrapped: %w", providerErr(CodeWrongPassword, nil)), MsgWrongPassword},
		{fmt.Errorf("%w: %w", ErrFederated, providerErr(CodeInvalidEmail, nil)), MsgFederatedFailed},
		{ErrPasswordMismatch, MsgPasswordMismatch},
		{ErrPasswordTooShort, MsgPasswordTooShort},
		{errors.New("boom"), MsgGeneric},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestCreateAndSignIn(t *testing.T) {
	ctx := context.Background()
	accounts := setupAccounts(t)

	p := NewLocalProvider(accounts, nil)
	u, err := p.CreateAccount(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if u.Email != "ada@example.com" || u.Provider != ProviderPassword || u.ID == "" {
		t.Errorf("user = %+v", u)
	}

	other := NewLocalProvider(accounts, nil)
	if _, err := other.CreateAccount(ctx, "ADA@example.com", "secret2"); CodeOf(err) != CodeEmailAlreadyInUse {
		t.Errorf("duplicate email err = %v", err)
	}

	got, err := other.SignIn(ctx, "Ada@Example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("signed in as %s, want %s", got.ID, u.ID)
	}
}

func TestSignInFailures(t *testing.T) {
	ctx := context.Background()
	accounts := setupAccounts(t)
	if _, err := accounts.Create(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		email, password string
		code            string
	}{
		{"ada@example.com", "wrong-pass", CodeWrongPassword},
		{"bob@example.com", "secret1", CodeUserNotFound},
		{"not-an-email", "secret1", CodeInvalidEmail},
	}
	for _, tt := range tests {
		p := NewLocalProvider(accounts, nil)
		var seen []*User
		p.OnSessionChange(func(u *User) { seen = append(seen, u) })

		if _, err := p.SignIn(ctx, tt.email, tt.password); CodeOf(err) != tt.code {
			t.Errorf("SignIn(%q) err = %v, want code %s", tt.email, err, tt.code)
		}
		if len(seen) != 1 || seen[0] != nil {
			t.Errorf("failed sign-in changed the session: %v", seen)
		}
	}

	if _, err := accounts.Create(ctx, "short@example.com", "123"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("short password err = %v", err)
	}
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	var token string
	accounts := setupAccounts(t, WithResetNotifier(func(email, tok string) { token = tok }))
	if _, err := accounts.Create(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p := NewLocalProvider(accounts, nil)
	if err := p.RequestPasswordReset(ctx, "nobody@example.com"); CodeOf(err) != CodeUserNotFound {
		t.Errorf("reset for unknown email err = %v", err)
	}
	if err := p.RequestPasswordReset(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if token == "" {
		t.Fatal("reset notifier not called")
	}

	if err := p.ResetPassword(ctx, token, "newsecret"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if err := p.ResetPassword(ctx, token, "another1"); CodeOf(err) != CodeInvalidResetToken {
		t.Errorf("reused token err = %v", err)
	}
	if err := p.ResetPassword(ctx, "bogus", "another1"); CodeOf(err) != CodeInvalidResetToken {
		t.Errorf("unknown token err = %v", err)
	}

	if _, err := p.SignIn(ctx, "ada@example.com", "secret1"); CodeOf(err) != CodeWrongPassword {
		t.Errorf("old password still works: %v", err)
	}
	if _, err := p.SignIn(ctx, "ada@example.com", "newsecret"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestResetTokenRedeemedOnce(t *testing.T) {
	ctx := context.Background()
	var token string
	accounts := setupAccounts(t, WithResetNotifier(func(email, tok string) { token = tok }))
	if _, err := accounts.Create(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := accounts.RequestReset(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = accounts.ResetPassword(ctx, token, fmt.Sprintf("newsecret%d", i))
		}()
	}
	wg.Wait()

	winner := -1
	for i, err := range errs {
		switch {
		case err == nil:
			if winner >= 0 {
				t.Fatalf("token redeemed by both %d and %d", winner, i)
			}
			winner = i
		case CodeOf(err) != CodeInvalidResetToken:
			t.Errorf("worker %d: unexpected error %v", i, err)
		}
	}
	if winner < 0 {
		t.Fatal("no reset succeeded")
	}

	p := NewLocalProvider(accounts, nil)
	if _, err := p.SignIn(ctx, "ada@example.com", fmt.Sprintf("newsecret%d", winner)); err != nil {
		t.Errorf("winning password rejected: %v", err)
	}
}

func TestFederatedSignIn(t *testing.T) {
	ctx := context.Background()
	accounts := setupAccounts(t)

	fed := &fakeFederator{id: FederatedIdentity{Email: "grace@example.com", Name: "Grace"}}
	p := NewLocalProvider(accounts, fed)

	url, err := p.FederatedURL("xyz")
	if err != nil || !strings.HasSuffix(url, "state=xyz") {
		t.Errorf("FederatedURL = %q, %v", url, err)
	}

	u, err := p.SignInWithFederatedProvider(ctx, "code")
	if err != nil {
		t.Fatalf("SignInWithFederatedProvider: %v", err)
	}
	if u.Provider != ProviderGoogle || u.DisplayName != "Grace" {
		t.Errorf("user = %+v", u)
	}

	again, err := NewLocalProvider(accounts, fed).SignInWithFederatedProvider(ctx, "code")
	if err != nil {
		t.Fatalf("second sign-in: %v", err)
	}
	if again.ID != u.ID {
		t.Error("second federated sign-in created a new account")
	}

	fed.err = errors.New("consent denied")
	if _, err := p.SignInWithFederatedProvider(ctx, "code"); !errors.Is(err, ErrFederated) || Message(err) != MsgFederatedFailed {
		t.Errorf("federated failure err = %v", err)
	}
}

func TestFederatedUnavailable(t *testing.T) {
	p := NewLocalProvider(setupAccounts(t), nil)
	if _, err := p.FederatedURL("s"); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("FederatedURL err = %v", err)
	}
	_, err := p.SignInWithFederatedProvider(context.Background(), "code")
	if !errors.Is(err, ErrProviderUnavailable) || !errors.Is(err, ErrFederated) {
		t.Errorf("SignInWithFederatedProvider err = %v", err)
	}
}

func TestSessionTracksProvider(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider(setupAccounts(t), nil)
	s := NewSession(p)
	if s.Authenticated() {
		t.Fatal("new session is authenticated")
	}

	s.Connect()
	s.Connect()
	if n := len(p.listeners); n != 1 {
		t.Errorf("got %d listeners after double Connect, want 1", n)
	}

	if _, err := p.CreateAccount(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if u := s.CurrentUser(); u == nil || u.Email != "ada@example.com" {
		t.Errorf("CurrentUser = %+v", u)
	}

	if err := p.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if s.Authenticated() {
		t.Error("session still authenticated after sign-out")
	}

	s.Close()
	if n := len(p.listeners); n != 0 {
		t.Errorf("got %d listeners after Close, want 0", n)
	}
	if _, err := p.SignIn(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.Authenticated() {
		t.Error("closed session still receives changes")
	}
}

func TestGoogleFederatorExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"email":"grace@example.com","name":"Grace","verified_email":true}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGoogleFederator("client", "secret", "http://localhost/callback")
	g.conf.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"

	if u := g.AuthURL("st"); !strings.HasPrefix(u, srv.URL+"/auth?") || !strings.Contains(u, "state=st") {
		t.Errorf("AuthURL = %q", u)
	}

	id, err := g.Exchange(context.Background(), "code")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if id.Email != "grace@example.com" || id.Name != "Grace" {
		t.Errorf("identity = %+v", id)
	}

	g.userInfoURL = srv.URL + "/missing"
	if _, err := g.Exchange(context.Background(), "code"); err == nil {
		t.Error("expected error for failed userinfo")
	}
}
