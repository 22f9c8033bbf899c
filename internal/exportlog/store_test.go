package exportlog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/web-inv/sitebuilder/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:         "e-1",
		Timestamp:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Action:     ActionExport,
		Source:     SourceCLI,
		DocumentID: "startup-modern",
		Filename:   "startup-modern-template.html",
		Bytes:      4096,
		Sections:   4,
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "e-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil")
	}
	if got.Action != ActionExport || got.Source != SourceCLI {
		t.Errorf("action/source = %s/%s", got.Action, got.Source)
	}
	if got.Filename != entry.Filename || got.Bytes != 4096 || got.Sections != 4 {
		t.Errorf("entry = %+v", got)
	}
	if !got.Timestamp.Equal(entry.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, entry.Timestamp)
	}
}

func TestGetByIDMissing(t *testing.T) {
	store := setupStore(t)
	got, err := store.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestLogGeneratesID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	if err := store.Log(ctx, Entry{Action: ActionDownload, Source: SourceHTTP, DocumentID: "d"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 || entries[0].ID == "" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []Entry{
		{ID: "1", Timestamp: base, Action: ActionExport, Source: SourceCLI, DocumentID: "a"},
		{ID: "2", Timestamp: base.Add(time.Hour), Action: ActionDownload, Source: SourceHTTP, DocumentID: "a"},
		{ID: "3", Timestamp: base.Add(2 * time.Hour), Action: ActionDownload, Source: SourceHTTP, DocumentID: "b"},
		{ID: "4", Timestamp: base.Add(3 * time.Hour), Action: ActionApply, Source: SourceHTTP, DocumentID: "b"},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	since := base.Add(90 * time.Minute)
	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{"all newest first", QueryFilter{}, []string{"4", "3", "2", "1"}},
		{"by document", QueryFilter{DocumentID: "a"}, []string{"2", "1"}},
		{"by action", QueryFilter{Action: ActionDownload}, []string{"3", "2"}},
		{"by source", QueryFilter{Source: SourceCLI}, []string{"1"}},
		{"since", QueryFilter{Since: &since}, []string{"4", "3"}},
		{"limit", QueryFilter{Limit: 2}, []string{"4", "3"}},
	}
	for _, tt := range tests {
		entries, err := store.Query(ctx, tt.filter)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		var ids []string
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		if len(ids) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, ids, tt.want)
				break
			}
		}
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	store.Log(ctx, Entry{ID: "old", Timestamp: old, Action: ActionExport, Source: SourceCLI, DocumentID: "x"})
	store.Log(ctx, Entry{ID: "new", Action: ActionExport, Source: SourceCLI, DocumentID: "x"})

	n, err := store.DeleteBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	if got, _ := store.GetByID(ctx, "new"); got == nil {
		t.Error("recent entry was deleted")
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.Log(ctx, Entry{ID: "r1", Action: ActionDownload, Source: SourceHTTP, DocumentID: "doc"})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exports/?document=doc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var entries []Entry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "r1" {
		t.Errorf("entries = %+v", entries)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exports/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing entry status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exports/?document=none", nil))
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty result body = %q, want []", body)
	}
}
