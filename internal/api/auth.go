package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/web-inv/sitebuilder/internal/auth"
)

const oauthStateCookie = "webinv_oauth_state"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm,omitempty"`
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
}

// writeAuthError sends the user-facing message for err. Form validation
// and provider rejections are client errors; anything else is a 502 from
// the provider's side.
func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch), errors.Is(err, auth.ErrPasswordTooShort):
	case errors.Is(err, auth.ErrProviderUnavailable):
		status = http.StatusNotImplemented
	case auth.CodeOf(err) == "" && !errors.Is(err, auth.ErrFederated):
		status = http.StatusBadGateway
	}
	writeError(w, status, auth.Message(err))
}

func (a *API) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := auth.ValidateSignUp(req.Password, req.Confirm); err != nil {
		writeAuthError(w, err)
		return
	}
	u, err := a.authSession(w, r).Provider().CreateAccount(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Authenticated: true, User: u})
}

func (a *API) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := a.authSession(w, r).Provider().SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, User: u})
}

func (a *API) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := a.authSession(w, r).Provider().SignOut(r.Context()); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{})
}

func (a *API) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.authSession(w, r).Provider().RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (a *API) handleConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := auth.ValidateSignUp(req.Password, req.Confirm); err != nil {
		writeAuthError(w, err)
		return
	}
	if err := a.opts.Accounts.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if auth.CodeOf(err) == auth.CodeInvalidResetToken {
			writeError(w, http.StatusBadRequest, "Reset link is invalid or has expired")
			return
		}
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	s := a.authSession(w, r)
	u := s.CurrentUser()
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: u != nil, User: u})
}

// handleGoogleStart redirects to the consent page. The state value is kept
// in a cookie and checked on the way back.
func (a *API) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	url, err := a.authSession(w, r).Provider().FederatedURL(state)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

func (a *API) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := r.Cookie(oauthStateCookie)
	if err != nil || c.Value == "" || c.Value != q.Get("state") {
		writeError(w, http.StatusBadRequest, auth.MsgFederatedFailed)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/api/auth/google", MaxAge: -1})

	code := q.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, auth.MsgFederatedFailed)
		return
	}
	if _, err := a.authSession(w, r).Provider().SignInWithFederatedProvider(r.Context(), code); err != nil {
		writeAuthError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
