package template

import "io"

// TemplateRenderer abstracts the template engine the output backends draw
// from, so tests can substitute a recording implementation and hosts can
// plug in their own engine.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}
