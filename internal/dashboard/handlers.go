package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/web-inv/sitebuilder/internal/exportlog"
)

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	Templates      int `json:"templates"`
	Categories     int `json:"categories"`
	ActiveSessions int `json:"active_sessions"`
	ExportsToday   int `json:"exports_today"`
}

// recentResponse is the JSON response for the recent activity endpoint.
type recentResponse struct {
	Exports []exportlog.Entry `json:"exports"`
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		Templates:      d.catalog.Len(),
		Categories:     len(d.catalog.Categories()),
		ActiveSessions: d.sessions.Len(),
	}

	if d.exports != nil {
		since := time.Now().UTC().Truncate(24 * time.Hour)
		entries, err := d.exports.Query(r.Context(), exportlog.QueryFilter{Since: &since, Limit: 10000})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		for _, e := range entries {
			if e.Action == exportlog.ActionDownload || e.Action == exportlog.ActionExport {
				resp.ExportsToday++
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) handleRecent(w http.ResponseWriter, r *http.Request) {
	var entries []exportlog.Entry
	if d.exports != nil {
		var err error
		entries, err = d.exports.Query(r.Context(), exportlog.QueryFilter{Limit: 10})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	if entries == nil {
		entries = []exportlog.Entry{}
	}
	writeJSON(w, http.StatusOK, recentResponse{Exports: entries})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
