// Package api serves the builder over HTTP: the template marketplace,
// per-browser builder state, previews and downloads, sign-in, and a
// websocket that pushes the live preview after every change.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/web-inv/sitebuilder/internal/auth"
	"github.com/web-inv/sitebuilder/internal/builder"
	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/render"
)

// SessionCookie carries the browser session id.
const SessionCookie = "webinv_session"

const maxBodyBytes = 1 << 20

// Site overrides the metadata of pages assembled in the builder. Empty
// fields keep the defaults.
type Site struct {
	Title       string
	Description string
	Palette     catalog.Palette
}

// Options configures an API.
type Options struct {
	Catalog       *catalog.Catalog
	Sessions      *builder.Registry
	Exports       *exportlog.Store
	Accounts      *auth.Accounts
	Federator     auth.Federator
	OptimizeDelay time.Duration
	RequireSignIn bool
	Site          Site
}

// API holds the handler dependencies.
type API struct {
	opts Options

	mu    sync.Mutex
	auths map[string]*auth.Session
}

// New creates an API. Catalog defaults to the built-in catalog and
// Sessions to a registry without expiry. Without Accounts the sign-in
// endpoints are not mounted and RequireSignIn is ignored.
func New(opts Options) *API {
	if opts.Accounts == nil {
		opts.RequireSignIn = false
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Builtin()
	}
	if opts.Sessions == nil {
		opts.Sessions = builder.NewRegistry(0)
	}
	return &API{opts: opts, auths: make(map[string]*auth.Session)}
}

// RegisterRoutes mounts every endpoint onto r.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/templates", func(r chi.Router) {
		r.Get("/", a.handleListTemplates)
		r.Get("/categories", a.handleCategories)
		r.Get("/{id}", a.handleGetTemplate)
		r.Get("/{id}/preview", a.handleTemplatePreview)
		r.Get("/{id}/download", a.handleTemplateDownload)
	})

	r.Route("/api/builder", func(r chi.Router) {
		r.Use(a.requireSignIn)
		r.Get("/", a.handleGetBuilder)
		r.Get("/blocks", a.handleBlocks)
		r.Post("/sections", a.handleAddSection)
		r.Patch("/sections/{id}", a.handleEditSection)
		r.Delete("/sections/{id}", a.handleRemoveSection)
		r.Post("/sections/{id}/select", a.handleSelectSection)
		r.Post("/reorder", a.handleReorder)
		r.Post("/optimize", a.handleOptimize)
		r.Post("/apply/{templateID}", a.handleApplyTemplate)
		r.Post("/reset", a.handleReset)
		r.Get("/preview", a.handleBuilderPreview)
		r.Get("/download", a.handleBuilderDownload)
	})

	if a.opts.Accounts != nil {
		a.registerAuthRoutes(r)
	}

	r.With(a.requireSignIn).Get("/ws/builder", a.handleLive)
}

func (a *API) registerAuthRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", a.handleSignUp)
		r.Post("/signin", a.handleSignIn)
		r.Post("/signout", a.handleSignOut)
		r.Post("/reset", a.handleRequestReset)
		r.Post("/reset/confirm", a.handleConfirmReset)
		r.Get("/session", a.handleSession)
		r.Get("/google", a.handleGoogleStart)
		r.Get("/google/callback", a.handleGoogleCallback)
	})
}

// Run drops idle builder sessions, and the sign-in state that went with
// them, every interval until ctx is cancelled.
func (a *API) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.sweep(); n > 0 {
				log.Printf("api: expired %d idle sessions", n)
			}
		}
	}
}

func (a *API) sweep() int {
	removed := a.opts.Sessions.Sweep()

	a.mu.Lock()
	defer a.mu.Unlock()
	for id, s := range a.auths {
		if !a.opts.Sessions.Has(id) {
			s.Close()
			delete(a.auths, id)
		}
	}
	return removed
}

// sessionID returns the browser session id, issuing a cookie on first
// contact.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Later reads within this request see the new id.
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	return id
}

// state returns the builder state of the requesting browser.
func (a *API) state(w http.ResponseWriter, r *http.Request) *builder.State {
	return a.opts.Sessions.Get(sessionID(w, r))
}

// authSession returns the sign-in state of the requesting browser. It
// also keeps the browser's builder session alive, which sweep relies on.
func (a *API) authSession(w http.ResponseWriter, r *http.Request) *auth.Session {
	id := sessionID(w, r)
	a.opts.Sessions.Get(id)

	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.auths[id]
	if !ok {
		s = auth.NewSession(auth.NewLocalProvider(a.opts.Accounts, a.opts.Federator))
		s.Connect()
		a.auths[id] = s
	}
	return s
}

// currentUser returns the signed-in user without creating sign-in state.
func (a *API) currentUser(r *http.Request) *auth.User {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	a.mu.Lock()
	s, ok := a.auths[c.Value]
	a.mu.Unlock()
	if !ok {
		return nil
	}
	return s.CurrentUser()
}

func (a *API) requireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.opts.RequireSignIn && a.currentUser(r) == nil {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// document applies the site overrides to the builder document.
func (a *API) document(st *builder.State) render.Document {
	d := st.Document()
	site := a.opts.Site
	if site.Title != "" {
		d.Title = site.Title
	}
	if site.Description != "" {
		d.Description = site.Description
	}
	if site.Palette != (catalog.Palette{}) {
		d.Palette = site.Palette
		d.Background = site.Palette.Gradient()
	}
	return d
}

// record writes an export log entry. Failures are logged, never returned:
// the page was already served.
func (a *API) record(r *http.Request, action exportlog.Action, d render.Document, filename string, size int) {
	if a.opts.Exports == nil {
		return
	}
	entry := exportlog.Entry{
		Action:     action,
		Source:     exportlog.SourceHTTP,
		DocumentID: d.ID,
		Filename:   filename,
		Bytes:      size,
		Sections:   len(d.Sections),
	}
	if u := a.currentUser(r); u != nil {
		entry.Actor = u.Email
	}
	if err := a.opts.Exports.Log(r.Context(), entry); err != nil {
		log.Printf("api: recording %s of %s: %v", action, d.ID, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
