package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// FederatedIdentity is what a federated provider tells us about the user.
type FederatedIdentity struct {
	Email string
	Name  string
}

// Federator runs the browser redirect half of a federated sign-in.
type Federator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (FederatedIdentity, error)
}

// GoogleFederator signs users in with a Google account through the OAuth2
// authorization code flow.
type GoogleFederator struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewGoogleFederator configures Google sign-in. redirectURL must match the
// one registered for clientID.
func NewGoogleFederator(clientID, clientSecret, redirectURL string) *GoogleFederator {
	return &GoogleFederator{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// AuthURL returns the Google consent page URL.
func (g *GoogleFederator) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades the callback code for a token and fetches the account
// email.
func (g *GoogleFederator) Exchange(ctx context.Context, code string) (FederatedIdentity, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return FederatedIdentity{}, fmt.Errorf("exchanging authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return FederatedIdentity{}, err
	}
	resp, err := g.conf.Client(ctx, token).Do(req)
	if err != nil {
		return FederatedIdentity{}, providerErr(CodeNetworkFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FederatedIdentity{}, fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var info struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return FederatedIdentity{}, fmt.Errorf("decoding userinfo: %w", err)
	}
	if info.Email == "" {
		return FederatedIdentity{}, errors.New("userinfo has no email")
	}
	if !info.VerifiedEmail {
		return FederatedIdentity{}, fmt.Errorf("email %s is not verified", info.Email)
	}
	return FederatedIdentity{Email: info.Email, Name: info.Name}, nil
}
