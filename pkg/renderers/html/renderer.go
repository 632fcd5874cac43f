// Package html renders the assembled CV record into a standalone HTML
// document using one of the three built-in template styles.
package html

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/photo"
	"github.com/goliatone/go-cvform/pkg/render"
	rendertemplate "github.com/goliatone/go-cvform/pkg/render/template"
	gotemplate "github.com/goliatone/go-cvform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cvform/pkg/templates"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders CV documents to HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

// Name identifies the renderer in the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType returns the media type of the rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces a full HTML document for the record using the resolved
// template style.
func (r *Renderer) Render(ctx context.Context, doc cv.Document, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := options.TemplateID(doc)
	themeCfg := options.Theme
	if themeCfg == nil {
		resolved, err := templates.RendererConfig(id)
		if err != nil {
			return nil, fmt.Errorf("html renderer: resolve theme: %w", err)
		}
		themeCfg = resolved
	}

	viewCtx, err := buildContext(doc, options.PhotoIncluded(doc), themeCfg)
	if err != nil {
		return nil, err
	}

	out, err := r.templates.RenderTemplate(string(id), viewCtx)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %q: %w", id, err)
	}
	return []byte(out), nil
}

func buildContext(doc cv.Document, includePhoto bool, themeCfg *theme.RendererConfig) (map[string]any, error) {
	clean := sanitizeDocument(doc)

	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("html renderer: encode record: %w", err)
	}
	viewCtx := make(map[string]any)
	if err := json.Unmarshal(raw, &viewCtx); err != nil {
		return nil, fmt.Errorf("html renderer: decode record: %w", err)
	}
	delete(viewCtx, "templateSettings")

	viewCtx["avatar"] = avatarContext(doc.Personal, includePhoto)
	viewCtx["theme"] = map[string]any{
		"name":         themeCfg.Theme,
		"tokens":       themeCfg.Tokens,
		"cssVarsStyle": templates.CSSVarsStyle(themeCfg.CSSVars),
	}
	return viewCtx, nil
}

// avatarContext applies the photo-then-initials precedence. The photo block
// only renders when photo inclusion is on and the stored value is a
// well-formed image data URI; anything else degrades to initials.
func avatarContext(personal cv.Personal, includePhoto bool) map[string]any {
	showPhoto := false
	uri := personal.PhotoURL
	if includePhoto && uri != "" {
		if mime, _, err := photo.DecodeDataURI(uri); err == nil && strings.HasPrefix(mime, "image/") {
			showPhoto = true
		}
	}
	if !showPhoto {
		uri = ""
	}
	return map[string]any{
		"showPhoto": showPhoto,
		"photoUri":  uri,
		"initials":  photo.Initials(personal.FirstName, personal.LastName),
	}
}

func sanitizeDocument(doc cv.Document) cv.Document {
	doc.Personal.FirstName = plain(doc.Personal.FirstName)
	doc.Personal.LastName = plain(doc.Personal.LastName)
	doc.Personal.ProfessionalTitle = plain(doc.Personal.ProfessionalTitle)
	doc.Personal.Email = plain(doc.Personal.Email)
	doc.Personal.Phone = plain(doc.Personal.Phone)
	doc.Personal.LinkedIn = plain(doc.Personal.LinkedIn)

	doc.Summary.Summary = richText(doc.Summary.Summary)
	doc.KeyCompetencies.TechnicalSkills = plainList(doc.KeyCompetencies.TechnicalSkills)
	doc.KeyCompetencies.SoftSkills = plainList(doc.KeyCompetencies.SoftSkills)

	for i := range doc.Experiences {
		exp := &doc.Experiences[i]
		exp.CompanyName = plain(exp.CompanyName)
		exp.JobTitle = plain(exp.JobTitle)
		exp.StartDate = plain(exp.StartDate)
		exp.EndDate = plain(exp.EndDate)
		exp.Responsibilities = richText(exp.Responsibilities)
	}
	for i := range doc.Educations {
		edu := &doc.Educations[i]
		edu.SchoolName = plain(edu.SchoolName)
		edu.Major = plain(edu.Major)
		edu.StartDate = plain(edu.StartDate)
		edu.EndDate = plain(edu.EndDate)
		edu.Achievements = richText(edu.Achievements)
	}
	for i := range doc.Certificates {
		cert := &doc.Certificates[i]
		cert.Name = plain(cert.Name)
		cert.Institution = plain(cert.Institution)
		cert.DateAcquired = plain(cert.DateAcquired)
		cert.ExpirationDate = plain(cert.ExpirationDate)
		cert.Achievements = richText(cert.Achievements)
	}
	for i := range doc.Languages {
		lang := &doc.Languages[i]
		lang.Name = plain(lang.Name)
		lang.Proficiency = plain(lang.Proficiency)
	}
	doc.Additional.Skills = plainList(doc.Additional.Skills)
	return doc
}
