package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/web-inv/sitebuilder/internal/builder"
	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/db"
	"github.com/web-inv/sitebuilder/internal/exportlog"
)

func setupTest(t *testing.T) (*Dashboard, *builder.Registry, *exportlog.Store) {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	exports := exportlog.NewStore(database)
	sessions := builder.NewRegistry(0)
	d := New(catalog.Builtin(), sessions, exports)
	return d, sessions, exports
}

func setupRouter(d *Dashboard) chi.Router {
	r := chi.NewRouter()
	d.RegisterRoutes(r)
	return r
}

func TestStatsEndpoint(t *testing.T) {
	d, sessions, exports := setupTest(t)
	r := setupRouter(d)
	ctx := t.Context()

	sessions.Get("browser-a")
	sessions.Get("browser-b")

	now := time.Now()
	for _, e := range []exportlog.Entry{
		{Action: exportlog.ActionDownload, Source: exportlog.SourceHTTP, DocumentID: "landing-saas", Timestamp: now},
		{Action: exportlog.ActionExport, Source: exportlog.SourceCLI, DocumentID: "portfolio-creative", Timestamp: now},
		{Action: exportlog.ActionPreview, Source: exportlog.SourceHTTP, DocumentID: "landing-saas", Timestamp: now},
		{Action: exportlog.ActionDownload, Source: exportlog.SourceHTTP, DocumentID: "landing-saas", Timestamp: now.Add(-72 * time.Hour)},
	} {
		if err := exports.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats statsResponse
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}

	cat := catalog.Builtin()
	if stats.Templates != cat.Len() {
		t.Errorf("expected %d templates, got %d", cat.Len(), stats.Templates)
	}
	if stats.Categories != len(cat.Categories()) {
		t.Errorf("expected %d categories, got %d", len(cat.Categories()), stats.Categories)
	}
	if stats.ActiveSessions != 2 {
		t.Errorf("expected 2 active sessions, got %d", stats.ActiveSessions)
	}
	if stats.ExportsToday != 2 {
		t.Errorf("expected 2 exports today, got %d", stats.ExportsToday)
	}
}

func TestStatsWithoutExportLog(t *testing.T) {
	d := New(catalog.Builtin(), builder.NewRegistry(0), nil)
	r := setupRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats statsResponse
	json.NewDecoder(w.Body).Decode(&stats)
	if stats.ExportsToday != 0 {
		t.Errorf("expected 0 exports, got %d", stats.ExportsToday)
	}
}

func TestRecentEndpoint(t *testing.T) {
	d, _, exports := setupTest(t)
	r := setupRouter(d)
	ctx := t.Context()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	exports.Log(ctx, exportlog.Entry{Action: exportlog.ActionDownload, Source: exportlog.SourceHTTP, DocumentID: "older", Timestamp: base})
	exports.Log(ctx, exportlog.Entry{Action: exportlog.ActionExport, Source: exportlog.SourceCLI, DocumentID: "newer", Timestamp: base.Add(time.Hour)})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/recent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp recentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(resp.Exports) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(resp.Exports))
	}
	if resp.Exports[0].DocumentID != "newer" {
		t.Errorf("expected newest first, got %q", resp.Exports[0].DocumentID)
	}
}

func TestRecentEndpointLimits(t *testing.T) {
	d, _, exports := setupTest(t)
	r := setupRouter(d)
	ctx := t.Context()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := range 15 {
		exports.Log(ctx, exportlog.Entry{
			Action:     exportlog.ActionDownload,
			Source:     exportlog.SourceHTTP,
			DocumentID: fmt.Sprintf("doc-%d", i),
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/recent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp recentResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Exports) != 10 {
		t.Errorf("expected 10 exports (limited), got %d", len(resp.Exports))
	}
}

func TestRecentEndpointEmpty(t *testing.T) {
	d, _, _ := setupTest(t)
	r := setupRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/recent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `"exports":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestServeIndex(t *testing.T) {
	d, _, _ := setupTest(t)
	r := setupRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %s", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"/api/templates", "/ws/builder", "/api/auth/session"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}
