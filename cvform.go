// Package cvform assembles the CV builder form: a shared form-state
// container, the photo ingestion pipeline, the template selection panel, and
// the renderers that turn the assembled record into output documents.
package cvform

import (
	"context"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/formstate"
	"github.com/goliatone/go-cvform/pkg/photo"
	"github.com/goliatone/go-cvform/pkg/render"
	"github.com/goliatone/go-cvform/pkg/renderers/html"
	"github.com/goliatone/go-cvform/pkg/templates"
)

// Document is the structured CV record the form assembles.
type Document = cv.Document

// Container is the shared form-state store keyed by dotted field paths.
type Container = formstate.Container

// PhotoController runs the photo ingestion pipeline over a container.
type PhotoController = photo.Controller

// Panel is the stateless template-selection surface.
type Panel = templates.Panel

// RenderOptions carries per-render overrides.
type RenderOptions = render.Options

// NewForm builds a form-state container validated against the embedded CV
// form schema. It is the usual starting point for a new editing session.
func NewForm() *Container {
	return formstate.New(formstate.WithRegistry(formstate.DefaultRegistry()))
}

// ResumeForm builds a form-state container seeded from a previously saved
// record.
func ResumeForm(doc Document) (*Container, error) {
	form := NewForm()
	if err := form.Load(doc); err != nil {
		return nil, err
	}
	return form, nil
}

// NewPhotoController attaches the photo ingestion pipeline to a container.
// Callers own the returned controller and should Close it when the session
// ends.
func NewPhotoController(form *Container, options ...photo.Option) *PhotoController {
	return photo.NewController(form, options...)
}

// TemplatePanel binds the template selection panel to a container.
func TemplatePanel(form *Container) Panel {
	return templates.Bind(form)
}

// NewRendererRegistry returns a registry with the built-in renderers
// installed. Hosts can register additional output formats on it.
func NewRendererRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML validates the record and renders it to a standalone HTML
// document with the embedded template bundle. It is the simplest entry point
// for callers that just want output.
func RenderHTML(ctx context.Context, doc Document, options ...RenderOption) ([]byte, error) {
	cfg := renderConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.skipValidation {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}

	renderer, err := html.New(cfg.htmlOptions...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, doc, cfg.options)
}

// RenderOption configures RenderHTML.
type RenderOption func(*renderConfig)

type renderConfig struct {
	options        render.Options
	htmlOptions    []html.Option
	skipValidation bool
}

// WithTemplate overrides the record's selected template style.
func WithTemplate(id templates.ID) RenderOption {
	return func(cfg *renderConfig) {
		cfg.options.Template = id
	}
}

// WithPhotoIncluded overrides the record's include-photo setting.
func WithPhotoIncluded(include bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.options.IncludePhoto = &include
	}
}

// WithHTMLOptions passes options through to the HTML renderer, e.g. an
// alternate template bundle.
func WithHTMLOptions(options ...html.Option) RenderOption {
	return func(cfg *renderConfig) {
		cfg.htmlOptions = append(cfg.htmlOptions, options...)
	}
}

// WithoutValidation skips the pre-render record validation, for callers
// rendering drafts.
func WithoutValidation() RenderOption {
	return func(cfg *renderConfig) {
		cfg.skipValidation = true
	}
}
