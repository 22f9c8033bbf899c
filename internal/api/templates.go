package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/preview"
	"github.com/web-inv/sitebuilder/internal/render"
)

func (a *API) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var list []catalog.Template
	if c := r.URL.Query().Get("category"); c != "" && c != "All" {
		list = a.opts.Catalog.Filter(catalog.Category(c))
	} else {
		list = a.opts.Catalog.List()
	}
	if list == nil {
		list = []catalog.Template{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.opts.Catalog.Categories())
}

func (a *API) template(w http.ResponseWriter, r *http.Request, param string) (catalog.Template, bool) {
	id := chi.URLParam(r, param)
	t, ok := a.opts.Catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("template %q not found", id))
	}
	return t, ok
}

func (a *API) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.template(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *API) handleTemplatePreview(w http.ResponseWriter, r *http.Request) {
	t, ok := a.template(w, r, "id")
	if !ok {
		return
	}
	doc := render.FromTemplate(t)
	a.writePreview(w, r, doc, preview.Options{})
	a.record(r, exportlog.ActionPreview, doc, "", 0)
}

func (a *API) handleTemplateDownload(w http.ResponseWriter, r *http.Request) {
	t, ok := a.template(w, r, "id")
	if !ok {
		return
	}
	a.writeDownload(w, r, render.FromTemplate(t))
}

func (a *API) writePreview(w http.ResponseWriter, r *http.Request, doc render.Document, opts preview.Options) {
	var buf bytes.Buffer
	mode := preview.ParseMode(r.URL.Query().Get("mode"))
	if err := preview.Page(&buf, doc, mode, opts); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", render.ContentType)
	w.Write(buf.Bytes())
}

// writeDownload sends doc as an HTML attachment named after its id.
func (a *API) writeDownload(w http.ResponseWriter, r *http.Request, doc render.Document) {
	page, err := render.HTML(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := render.Filename(doc.ID)
	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(page)
	a.record(r, exportlog.ActionDownload, doc, name, len(page))
}
