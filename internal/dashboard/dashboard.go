// Package dashboard serves the builder's browser UI and the counters shown
// on its home screen.
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/web-inv/sitebuilder/internal/builder"
	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/exportlog"
)

// Dashboard provides the single-page builder UI.
type Dashboard struct {
	catalog  *catalog.Catalog
	sessions *builder.Registry
	exports  *exportlog.Store
}

// New creates a new Dashboard. exports may be nil.
func New(cat *catalog.Catalog, sessions *builder.Registry, exports *exportlog.Store) *Dashboard {
	return &Dashboard{
		catalog:  cat,
		sessions: sessions,
		exports:  exports,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/api/dashboard/stats", d.handleStats)
	r.Get("/api/dashboard/recent", d.handleRecent)
}
