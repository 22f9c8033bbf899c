package render

// sectionTemplates holds one named html/template per section kind plus the
// "unknown" fallback. Each block starts on a fresh, indented line so the
// page reads cleanly when the blocks are joined.
const sectionTemplates = `
{{- define "hero"}}
    <section class="hero" style="background: {{.Background}}; padding: 80px 20px; text-align: center; color: white;">
      <div class="container" style="max-width: 1200px; margin: 0 auto;">
        <h1 style="font-size: 3rem; margin-bottom: 20px;">{{.Title}}</h1>
        {{- if .Subtitle}}
        <p style="font-size: 1.25rem; opacity: 0.9; margin-bottom: 30px;">{{.Subtitle}}</p>
        {{- end}}
        {{- if .ButtonText}}
        <a href="#" class="btn" style="background: rgba(255,255,255,0.2); color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; display: inline-block; backdrop-filter: blur(10px);">{{.ButtonText}}</a>
        {{- end}}
      </div>
    </section>
{{- end}}

{{- define "features"}}
    <section class="features" style="padding: 80px 20px;">
      <div class="container" style="max-width: 1200px; margin: 0 auto;">
        <h2 style="text-align: center; font-size: 2rem; margin-bottom: 40px;">{{.Title}}</h2>
        {{- if .Description}}
        <p style="text-align: center; color: #666; margin-bottom: 40px;">{{.Description}}</p>
        {{- end}}
        {{- if .Cards}}
        <div class="features-grid" style="display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 24px;">
          {{- range .Cards}}
          <div class="feature-card" style="background: #f8f9fa; padding: 24px; border-radius: 12px; text-align: center;">
            <h3 style="margin-bottom: 10px;">{{.Title}}</h3>
            {{- if .Description}}
            <p style="color: #666;">{{.Description}}</p>
            {{- end}}
          </div>
          {{- end}}
        </div>
        {{- end}}
      </div>
    </section>
{{- end}}

{{- define "gallery"}}
    <section class="gallery" style="padding: 80px 20px;">
      <div class="container" style="max-width: 1200px; margin: 0 auto;">
        <h2 style="text-align: center; font-size: 2rem; margin-bottom: 40px;">{{.Title}}</h2>
        <div class="gallery-grid" style="display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px;">
          {{- range .Cards}}
          <div class="gallery-item" style="aspect-ratio: 1; background: #e9ecef; border-radius: 12px; display: flex; align-items: center; justify-content: center;">
            <span style="color: #666;">{{.Title}}</span>
          </div>
          {{- end}}
        </div>
      </div>
    </section>
{{- end}}

{{- define "testimonials"}}
    <section class="testimonials" style="padding: 80px 20px; background: #f8f9fa;">
      <div class="container" style="max-width: 1200px; margin: 0 auto;">
        <h2 style="text-align: center; font-size: 2rem; margin-bottom: 40px;">{{.Title}}</h2>
        <div class="testimonials-grid" style="display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 24px;">
          {{- range .Quotes}}
          <div class="testimonial-card" style="background: white; padding: 24px; border-radius: 12px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
            <p style="font-style: italic; color: #666; margin-bottom: 16px;">"{{.Text}}"</p>
            <div style="display: flex; align-items: center; gap: 12px;">
              <div style="width: 40px; height: 40px; background: #e9ecef; border-radius: 50%;"></div>
              <div>
                <p style="font-weight: 600; margin: 0;">{{.Author}}</p>
                <p style="font-size: 0.875rem; color: #666; margin: 0;">{{.Role}}</p>
              </div>
            </div>
          </div>
          {{- end}}
        </div>
      </div>
    </section>
{{- end}}

{{- define "pricing"}}
    <section class="pricing" style="padding: 80px 20px;">
      <div class="container" style="max-width: 1200px; margin: 0 auto;">
        <h2 style="text-align: center; font-size: 2rem; margin-bottom: 10px;">{{.Title}}</h2>
        {{- if .Subtitle}}
        <p style="text-align: center; color: #666; margin-bottom: 40px;">{{.Subtitle}}</p>
        {{- end}}
        <div class="pricing-grid" style="display: grid; grid-template-columns: repeat(auto-fit, minmax(280px, 1fr)); gap: 24px; max-width: 900px; margin: 0 auto;">
          {{- $primary := .Primary}}
          {{- range .Tiers}}
          {{- if .Featured}}
          <div class="pricing-card featured" style="background: {{$primary}}; color: white; padding: 32px; border-radius: 12px; text-align: center; transform: scale(1.05);">
            <h3>{{.Name}}</h3>
            <p style="font-size: 2.5rem; font-weight: bold; margin: 16px 0;">{{.PriceLabel}}<span style="font-size: 1rem; opacity: 0.8;">/mo</span></p>
            <a href="#" style="display: block; background: white; color: {{$primary}}; padding: 12px; border-radius: 8px; text-decoration: none;">Choose {{.Name}}</a>
          </div>
          {{- else}}
          <div class="pricing-card" style="background: #f8f9fa; padding: 32px; border-radius: 12px; text-align: center;">
            <h3>{{.Name}}</h3>
            <p style="font-size: 2.5rem; font-weight: bold; margin: 16px 0;">{{.PriceLabel}}<span style="font-size: 1rem; color: #666;">/mo</span></p>
            <a href="#" style="display: block; background: #333; color: white; padding: 12px; border-radius: 8px; text-decoration: none;">Choose {{.Name}}</a>
          </div>
          {{- end}}
          {{- end}}
        </div>
      </div>
    </section>
{{- end}}

{{- define "cta"}}
    <section class="cta" style="padding: 80px 20px; background: {{.Background}}; text-align: center; color: white;">
      <div class="container" style="max-width: 800px; margin: 0 auto;">
        <h2 style="font-size: 2rem; margin-bottom: 24px;">{{.Title}}</h2>
        {{- if .ButtonText}}
        <a href="#" class="btn" style="background: white; color: #333; padding: 14px 40px; border-radius: 8px; text-decoration: none; display: inline-block; font-weight: 600;">{{.ButtonText}}</a>
        {{- end}}
      </div>
    </section>
{{- end}}

{{- define "text"}}
    <section class="text-block" style="padding: 80px 20px;">
      <div class="container" style="max-width: 800px; margin: 0 auto; text-align: center;">
        <h2 style="font-size: 2rem; margin-bottom: 20px;">{{.Title}}</h2>
        {{- if .Description}}
        <p style="color: #666; line-height: 1.8;">{{.Description}}</p>
        {{- end}}
      </div>
    </section>
{{- end}}

{{- define "footer"}}
    <footer style="padding: 40px 20px; background: #1a1a1a; color: white; text-align: center;">
      <div class="container" style="max-width: 1200px; margin: 0 auto;">
        <p style="margin: 0; opacity: 0.7;">{{.Description}}</p>
      </div>
    </footer>
{{- end}}

{{- define "unknown"}}
    <section style="padding: 60px 20px; text-align: center;">
      <p>{{.Name}}</p>
    </section>
{{- end}}
`

// pageTemplate is the standalone document shell. Sections are rendered
// separately and handed in as trusted markup.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="description" content="{{.Description}}">
  <title>{{.Title}}</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
  <style>
    * {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
    }
    body {
      font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif;
      line-height: 1.6;
      color: #333;
    }
    h1, h2, h3 {
      line-height: 1.2;
    }
    .btn:hover {
      transform: translateY(-2px);
      transition: transform 0.2s ease;
    }
    @media (max-width: 768px) {
      .hero h1 { font-size: 2rem !important; }
      .features-grid, .gallery-grid, .testimonials-grid, .pricing-grid {
        grid-template-columns: 1fr !important;
      }
      .pricing-card.featured { transform: none !important; }
    }
  </style>
</head>
<body>
{{.Body}}
</body>
</html>`
