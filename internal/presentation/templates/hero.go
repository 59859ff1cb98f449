package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/net/html"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

var heroTemplates = template.Must(template.New("hero").Parse(
	`{{define "static"}}<div class="{{.ContainerClass}}"{{if .BackgroundStyle}} style="{{.BackgroundStyle}}"{{end}}>` +
		`<div class="{{.LayoutClass}}"><div style="{{.FlexStyle}}">` +
		`<div class="{{.TextClass}}"{{if .OverlayStyle}} style="{{.OverlayStyle}}"{{end}}>` +
		`{{if .HasHeading}}<h1{{if .TextStyle}} style="{{.TextStyle}}"{{end}}>{{.Heading}}</h1>{{end}}` +
		`</div></div></div></div>{{end}}` +
		`{{define "editor"}}<div class="{{.ContainerClass}}"{{if .BlockID}} data-block-id="{{.BlockID}}"{{end}} {{.DataURL}}{{if .BackgroundStyle}} style="{{.BackgroundStyle}}"{{end}}>` +
		`<div class="{{.LayoutClass}}"><div style="{{.FlexStyle}}">` +
		`<div class="{{.TextClass}}"{{if .OverlayStyle}} style="{{.OverlayStyle}}"{{end}}>` +
		`<h1 contenteditable="true" data-attribute="text" data-placeholder="{{.Placeholder}}"{{if .TextStyle}} style="{{.TextStyle}}"{{end}}>{{.Heading}}</h1>` +
		`</div></div></div></div>{{end}}` +
		`{{define "placeholder"}}<div class="{{.ContainerClass}} components-placeholder"{{if .BlockID}} data-block-id="{{.BlockID}}"{{end}}>` +
		`<div class="components-placeholder__label">{{.Title}}</div>` +
		`<div class="components-placeholder__instructions">{{.Instructions}}</div>` +
		`<div class="components-placeholder__fieldset"><input type="file" name="file" accept="{{.Accept}}"></div>` +
		`</div>{{end}}`,
))

type heroTemplateData struct {
	BlockID         string
	ContainerClass  string
	DataURL         template.HTMLAttr
	BackgroundStyle template.CSS
	LayoutClass     string
	FlexStyle       template.CSS
	TextClass       string
	OverlayStyle    template.CSS
	TextStyle       template.CSS
	Heading         template.HTML
	HasHeading      bool
	Placeholder     string
}

type placeholderTemplateData struct {
	BlockID        string
	ContainerClass string
	Title          string
	Instructions   string
	Accept         string
}

// HeroRenderer turns block attributes into editor or published markup.
type HeroRenderer struct {
	minifier *Minifier
	logger   *logging.ChanneledLogger
}

// NewHeroRenderer creates a renderer. A nil minifier leaves published markup as is.
func NewHeroRenderer(minifier *Minifier, logger *logging.ChanneledLogger) *HeroRenderer {
	return &HeroRenderer{minifier: minifier, logger: logger}
}

// RenderStatic produces the published markup. The heading is left out when
// the text has nothing to show.
func (r *HeroRenderer) RenderStatic(v hero.Variant, attrs hero.Attributes) (string, error) {
	data, _ := r.templateData("", v, attrs)

	var buf bytes.Buffer
	if err := heroTemplates.ExecuteTemplate(&buf, "static", data); err != nil {
		r.logger.Content().Error("Error executing static hero template", "error", err.Error())
		return "", fmt.Errorf("failed to render hero markup: %w", err)
	}

	out := buf.String()
	// minifying collapses class whitespace, which legacy spacing must keep
	if r.minifier != nil && !v.Capabilities.LegacyClassSpacing {
		minified, err := r.minifier.HTML(out)
		if err != nil {
			r.logger.Content().Warn("Minify failed, keeping original markup", "error", err.Error())
			return out, nil
		}
		out = minified
	}
	return out, nil
}

// RenderEditor produces the editable markup, or the media placeholder when the
// block has no usable image.
func (r *HeroRenderer) RenderEditor(blockID string, v hero.Variant, attrs hero.Attributes) (string, error) {
	data, ok := r.templateData(blockID, v, attrs)

	var buf bytes.Buffer
	var err error
	if ok {
		err = heroTemplates.ExecuteTemplate(&buf, "editor", data)
	} else {
		err = heroTemplates.ExecuteTemplate(&buf, "placeholder", placeholderTemplateData{
			BlockID:        blockID,
			ContainerClass: v.ContainerClass(),
			Title:          hero.PlaceholderTitle,
			Instructions:   hero.PlaceholderInstructions,
			Accept:         "image/*",
		})
	}
	if err != nil {
		r.logger.Content().Error("Error executing editor hero template", "error", err.Error(), "blockId", blockID)
		return "", fmt.Errorf("failed to render hero editor markup: %w", err)
	}
	return buf.String(), nil
}

// Presentation computes the presentation the markup of attrs is rendered from,
// with the background URL sanitized.
func (r *HeroRenderer) Presentation(v hero.Variant, attrs hero.Attributes) hero.Presentation {
	safe, _ := r.sanitize("", attrs)
	return hero.NewMapper(v).Compute(safe)
}

// sanitize returns attrs with the background URL escaped for url(...) and the
// validated URL as stored. A blocked URL is dropped from both.
func (r *HeroRenderer) sanitize(blockID string, attrs hero.Attributes) (hero.Attributes, string) {
	safe := attrs.Clone()
	if !hero.HasImage(attrs) {
		return safe, ""
	}
	stored := SafeBackgroundURL(*attrs.URL)
	if stored == "" {
		r.logger.Content().Warn("Blocked unsafe background URL", "blockId", blockID, "url", *attrs.URL)
		safe.URL = nil
		return safe, ""
	}
	escaped := cssURLEscaper.Replace(stored)
	safe.URL = &escaped
	return safe, stored
}

// templateData computes the presentation from attrs with a sanitized URL and
// reports whether an image survived sanitizing.
func (r *HeroRenderer) templateData(blockID string, v hero.Variant, attrs hero.Attributes) (heroTemplateData, bool) {
	safe, stored := r.sanitize(blockID, attrs)

	p := hero.NewMapper(v).Compute(safe)
	heading := SanitizeHeading(safe.Text)

	data := heroTemplateData{
		BlockID:         blockID,
		ContainerClass:  v.ContainerClass(),
		BackgroundStyle: template.CSS(p.BackgroundImageStyle.CSS()),
		LayoutClass:     p.LayoutClass,
		FlexStyle:       template.CSS(p.FlexBasisStyle.CSS()),
		TextClass:       p.TextClass,
		OverlayStyle:    template.CSS(p.OverlayStyle().CSS()),
		TextStyle:       template.CSS(p.TextColorStyle.CSS()),
		Heading:         heading,
		HasHeading:      headingText(heading),
		Placeholder:     hero.HeadingPlaceholder,
	}
	// written whole so html/template does not percent-encode the stored URL
	if stored != "" {
		data.DataURL = template.HTMLAttr(`data-url="` + html.EscapeString(stored) + `"`)
	}
	return data, stored != ""
}
