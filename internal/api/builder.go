package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/web-inv/sitebuilder/internal/builder"
	"github.com/web-inv/sitebuilder/internal/content"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/preview"
	"github.com/web-inv/sitebuilder/internal/render"
)

// builderResponse is the JSON view of one browser's builder.
type builderResponse struct {
	Document render.Document `json:"document"`
	Selected string          `json:"selected,omitempty"`
	Template string          `json:"template,omitempty"`
}

func (a *API) snapshot(st *builder.State) builderResponse {
	resp := builderResponse{Document: a.document(st), Selected: st.Selected()}
	if t, ok := st.Template(); ok {
		resp.Template = t.ID
	}
	return resp
}

func (a *API) handleGetBuilder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.snapshot(a.state(w, r)))
}

func (a *API) handleBlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Blocks())
}

type addSectionRequest struct {
	Type content.Kind `json:"type"`
}

func (a *API) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}
	sec := a.state(w, r).AddSection(req.Type)
	writeJSON(w, http.StatusCreated, sec)
}

type editSectionRequest struct {
	Name    *string        `json:"name,omitempty"`
	Content content.Fields `json:"content"`
}

func (a *API) handleEditSection(w http.ResponseWriter, r *http.Request) {
	var req editSectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st := a.state(w, r)
	id := chi.URLParam(r, "id")
	if _, ok := st.Get(id); !ok {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	if req.Name != nil {
		st.Rename(id, *req.Name)
	}
	if !req.Content.IsEmpty() {
		st.EditContent(id, req.Content)
	}
	sec, _ := st.Get(id)
	writeJSON(w, http.StatusOK, sec)
}

func (a *API) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	a.state(w, r).RemoveSection(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSelectSection(w http.ResponseWriter, r *http.Request) {
	a.state(w, r).Select(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// reorderRequest moves by index (From, To) or by id (ID dropped on Over).
type reorderRequest struct {
	From *int   `json:"from,omitempty"`
	To   *int   `json:"to,omitempty"`
	ID   string `json:"id,omitempty"`
	Over string `json:"over,omitempty"`
}

func (a *API) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st := a.state(w, r)
	switch {
	case req.From != nil && req.To != nil:
		st.Reorder(*req.From, *req.To)
	case req.ID != "" && req.Over != "":
		st.MoveSection(req.ID, req.Over)
	default:
		writeError(w, http.StatusBadRequest, "give from and to, or id and over")
		return
	}
	writeJSON(w, http.StatusOK, a.snapshot(st))
}

// handleOptimize waits out the simulated analysis before raising scores.
// A client that disconnects first leaves the document untouched.
func (a *API) handleOptimize(w http.ResponseWriter, r *http.Request) {
	st := a.state(w, r)
	if d := a.opts.OptimizeDelay; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-r.Context().Done():
			return
		case <-timer.C:
		}
	}
	st.OptimizeAll()
	writeJSON(w, http.StatusOK, a.snapshot(st))
}

func (a *API) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.template(w, r, "templateID")
	if !ok {
		return
	}
	st := a.state(w, r)
	st.ApplyTemplate(t)
	resp := a.snapshot(st)
	a.record(r, exportlog.ActionApply, resp.Document, "", 0)
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	st := a.state(w, r)
	st.Reset(builder.DefaultSections())
	writeJSON(w, http.StatusOK, a.snapshot(st))
}

func (a *API) handleBuilderPreview(w http.ResponseWriter, r *http.Request) {
	st := a.state(w, r)
	a.writePreview(w, r, a.document(st), preview.Options{
		SelectedID: st.Selected(),
		EditingID:  r.URL.Query().Get("editing"),
		Editable:   true,
	})
}

func (a *API) handleBuilderDownload(w http.ResponseWriter, r *http.Request) {
	a.writeDownload(w, r, a.document(a.state(w, r)))
}
