package preview

// blockTemplates draw each section for the editor canvas. Content comes
// from render.View, so text and fallbacks match the exported page; only
// the chrome around it differs.
const blockTemplates = `
{{- define "block"}}
<div class="pv-block{{if .Selected}} pv-selected{{end}}{{if .First}} pv-first{{end}}" data-section-id="{{.ID}}" data-section-type="{{.View.Kind}}"{{if .First}} style="background: {{.Background}};"{{end}}>
  {{- if .Editable}}
  <div class="pv-toolbar">
    <span class="pv-name">{{.View.Name}}</span>
    <span class="pv-status pv-status-{{.Status}}">{{.Status}}</span>
    <span class="pv-score">{{.Score}}</span>
    <button type="button" class="pv-edit" data-action="edit" data-section-id="{{.ID}}">Edit</button>
    <button type="button" class="pv-remove" data-action="remove" data-section-id="{{.ID}}">Remove</button>
  </div>
  {{- end}}
  <div class="pv-body">
    {{- template "content" .}}
  </div>
  {{- if .Editing}}
  {{- template "editor" .}}
  {{- end}}
</div>
{{- end}}

{{- define "content"}}
{{- with .View}}
{{- if not .Known}}
    <p class="pv-fallback">{{.Name}}</p>
{{- else if eq .Kind "hero"}}
    <div class="pv-center">
      <h1 class="pv-h1">{{.Title}}</h1>
      {{- if .Subtitle}}
      <p class="pv-sub">{{.Subtitle}}</p>
      {{- end}}
      {{- if .ButtonText}}
      <a href="#" class="pv-btn">{{.ButtonText}}</a>
      {{- end}}
    </div>
{{- else if eq .Kind "features"}}
    <div class="pv-center">
      <h2 class="pv-h2">{{.Title}}</h2>
      {{- if .Description}}
      <p class="pv-muted">{{.Description}}</p>
      {{- end}}
    </div>
    {{- if .Cards}}
    <div class="pv-grid pv-grid-3">
      {{- range .Cards}}
      <div class="pv-card">
        <h3>{{.Title}}</h3>
        {{- if .Description}}
        <p class="pv-muted">{{.Description}}</p>
        {{- end}}
      </div>
      {{- end}}
    </div>
    {{- end}}
{{- else if eq .Kind "gallery"}}
    <h2 class="pv-h2 pv-center">{{.Title}}</h2>
    <div class="pv-grid pv-grid-3">
      {{- range .Cards}}
      <div class="pv-tile"><span>{{.Title}}</span></div>
      {{- end}}
    </div>
{{- else if eq .Kind "testimonials"}}
    <h2 class="pv-h2 pv-center">{{.Title}}</h2>
    <div class="pv-grid pv-grid-2">
      {{- range .Quotes}}
      <div class="pv-card">
        <p class="pv-quote">"{{.Text}}"</p>
        <p class="pv-author">{{.Author}}</p>
        <p class="pv-muted">{{.Role}}</p>
      </div>
      {{- end}}
    </div>
{{- else if eq .Kind "pricing"}}
    <div class="pv-center">
      <h2 class="pv-h2">{{.Title}}</h2>
      {{- if .Subtitle}}
      <p class="pv-muted">{{.Subtitle}}</p>
      {{- end}}
    </div>
    <div class="pv-grid pv-grid-3">
      {{- range .Tiers}}
      <div class="pv-card{{if .Featured}} pv-featured{{end}}">
        <h3>{{.Name}}</h3>
        <p class="pv-price">{{.PriceLabel}}<span class="pv-muted">/mo</span></p>
        <a href="#" class="pv-btn">Choose {{.Name}}</a>
      </div>
      {{- end}}
    </div>
{{- else if eq .Kind "cta"}}
    <div class="pv-center">
      <h2 class="pv-h2">{{.Title}}</h2>
      {{- if .ButtonText}}
      <a href="#" class="pv-btn">{{.ButtonText}}</a>
      {{- end}}
    </div>
{{- else if eq .Kind "text"}}
    <div class="pv-center pv-narrow">
      <h2 class="pv-h2">{{.Title}}</h2>
      {{- if .Description}}
      <p class="pv-muted">{{.Description}}</p>
      {{- end}}
    </div>
{{- else if eq .Kind "footer"}}
    <div class="pv-footer">{{.Description}}</div>
{{- end}}
{{- end}}
{{- end}}

{{- define "editor"}}
  <form class="pv-editor" data-section-id="{{.ID}}">
    {{- range .Fields}}
    <label>{{.Label}}
      {{- if .Multiline}}
      <textarea name="{{.Name}}">{{.Value}}</textarea>
      {{- else}}
      <input type="text" name="{{.Name}}" value="{{.Value}}">
      {{- end}}
    </label>
    {{- end}}
    <button type="submit">Save</button>
    <button type="button" data-action="cancel">Cancel</button>
  </form>
{{- end}}

{{- define "canvas"}}
<div class="pv-canvas" style="--pv-primary: {{.Primary}};">
{{- range .Blocks}}
{{template "block" .}}
{{- end}}
{{- if not .Blocks}}
<p class="pv-empty">Add a section to start building.</p>
{{- end}}
</div>
{{- end}}
`

// pageTemplate wraps the canvas in a browser frame with width modes.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · Preview</title>
  <style>
    body { margin: 0; font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif; background: #0f0f14; color: #333; }
    .pv-frame { margin: 24px auto; border-radius: 12px; overflow: hidden; background: white; box-shadow: 0 20px 60px rgba(0,0,0,0.4); }
    .pv-mode-desktop { max-width: 100%; }
    .pv-mode-tablet { max-width: 768px; }
    .pv-mode-mobile { max-width: 375px; }
    .pv-bar { display: flex; align-items: center; gap: 8px; padding: 12px 16px; background: #f1f1f4; border-bottom: 1px solid #e2e2e8; }
    .pv-dot { width: 12px; height: 12px; border-radius: 50%; background: #d0d0d8; }
    .pv-address { flex: 1; margin: 0 16px; padding: 6px 12px; border-radius: 6px; background: #e6e6ec; font-size: 0.875rem; color: #666; }
    .pv-block { position: relative; padding: 32px; border-bottom: 1px solid #eee; }
    .pv-first { color: white; min-height: 200px; }
    .pv-selected { outline: 2px solid var(--pv-primary); outline-offset: -2px; }
    .pv-toolbar { display: flex; gap: 8px; align-items: center; font-size: 0.75rem; margin-bottom: 12px; }
    .pv-status-optimized { color: #16a34a; }
    .pv-status-needs-work { color: #ca8a04; }
    .pv-status-critical { color: #dc2626; }
    .pv-center { text-align: center; }
    .pv-narrow { max-width: 640px; margin: 0 auto; }
    .pv-grid { display: grid; gap: 16px; margin-top: 24px; }
    .pv-grid-2 { grid-template-columns: repeat(2, 1fr); }
    .pv-grid-3 { grid-template-columns: repeat(3, 1fr); }
    .pv-card { padding: 16px; border-radius: 12px; border: 1px solid #eee; background: #fafafa; }
    .pv-featured { border-color: var(--pv-primary); }
    .pv-tile { aspect-ratio: 1; border-radius: 12px; background: #e9ecef; display: flex; align-items: center; justify-content: center; color: #666; }
    .pv-btn { display: inline-block; margin-top: 16px; padding: 10px 24px; border-radius: 8px; background: var(--pv-primary); color: white; text-decoration: none; }
    .pv-muted { color: #666; }
    .pv-quote { font-style: italic; color: #666; }
    .pv-author { font-weight: 600; margin: 8px 0 0; }
    .pv-price { font-size: 1.5rem; font-weight: bold; }
    .pv-footer { text-align: center; font-size: 0.875rem; color: #666; }
    .pv-fallback { text-align: center; }
    .pv-editor { display: grid; gap: 8px; margin-top: 16px; padding: 16px; border-radius: 8px; background: #f6f6f9; color: #333; }
    @media (max-width: 768px) {
      .pv-grid-2, .pv-grid-3 { grid-template-columns: 1fr; }
    }
  </style>
</head>
<body>
<div class="pv-frame pv-mode-{{.Mode}}">
  <div class="pv-bar">
    <span class="pv-dot"></span><span class="pv-dot"></span><span class="pv-dot"></span>
    <div class="pv-address">🔒 {{.Address}}</div>
  </div>
  {{- .Canvas}}
</div>
</body>
</html>`
