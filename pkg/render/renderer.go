// Package render defines the contract between the assembled CV record and
// the output backends, plus the registry used to discover them by name.
package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/templates"
)

// Renderer converts a CV record into a byte representation (HTML today;
// other formats plug in through the registry).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc cv.Document, options Options) ([]byte, error)
}

// Options carries per-render overrides. Zero values defer to the record's own
// template settings.
type Options struct {
	// Template overrides templateSettings.selected.
	Template templates.ID
	// IncludePhoto overrides templateSettings.includePhoto when non-nil.
	IncludePhoto *bool
	// Theme overrides the resolved theme for the chosen template. When nil
	// the renderer resolves tokens from the template manifest.
	Theme *theme.RendererConfig
}

// TemplateID resolves the effective template style for a render.
func (o Options) TemplateID(doc cv.Document) templates.ID {
	if o.Template != "" {
		return o.Template
	}
	if id := templates.ID(doc.Template.Selected); templates.Valid(id) {
		return id
	}
	return templates.Default
}

// PhotoIncluded resolves the effective include-photo flag for a render.
func (o Options) PhotoIncluded(doc cv.Document) bool {
	if o.IncludePhoto != nil {
		return *o.IncludePhoto
	}
	return doc.Template.IncludePhoto
}
