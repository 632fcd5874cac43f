// Package templates describes the fixed set of CV template styles and the
// selection panel that lets the user pick between them.
package templates

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ID identifies one of the built-in template styles.
type ID string

// The closed, ordered set of template identifiers. The order is part of the
// panel contract and matches the gallery layout.
const (
	Professional ID = "professional"
	Modern       ID = "modern"
	Minimal      ID = "minimal"
)

// Default is the style applied when the user has made no choice yet.
const Default = Professional

// IDs returns the identifiers in gallery order.
func IDs() []ID {
	return []ID{Professional, Modern, Minimal}
}

// Valid reports whether id belongs to the closed set.
func Valid(id ID) bool {
	switch id {
	case Professional, Modern, Minimal:
		return true
	default:
		return false
	}
}

// Descriptor carries the presentation metadata for one template style.
type Descriptor struct {
	ID          ID                `yaml:"id"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Tokens      map[string]string `yaml:"tokens"`
}

//go:embed manifest/templates.yaml
var embeddedManifest []byte

type manifest struct {
	Templates []Descriptor `yaml:"templates"`
}

var (
	manifestOnce sync.Once
	descriptors  []Descriptor
	manifestErr  error
)

func loadManifest() ([]Descriptor, error) {
	manifestOnce.Do(func() {
		var m manifest
		if err := yaml.Unmarshal(embeddedManifest, &m); err != nil {
			manifestErr = fmt.Errorf("templates: parse manifest: %w", err)
			return
		}
		for _, d := range m.Templates {
			if !Valid(d.ID) {
				manifestErr = fmt.Errorf("templates: manifest names unknown template %q", d.ID)
				return
			}
		}
		descriptors = m.Templates
	})
	return descriptors, manifestErr
}

// Descriptors returns the template descriptors in gallery order. The manifest
// is embedded, so a failure to parse it is a build defect and panics.
func Descriptors() []Descriptor {
	list, err := loadManifest()
	if err != nil {
		panic(err)
	}
	return append([]Descriptor(nil), list...)
}

// Lookup finds the descriptor for an identifier.
func Lookup(id ID) (Descriptor, bool) {
	for _, d := range Descriptors() {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ThemeManifest exposes a descriptor's tokens as a go-theme manifest so
// renderers and host applications can resolve them through their usual theme
// plumbing.
func (d Descriptor) ThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    string(d.ID),
		Version: "1.0.0",
		Tokens:  copyTokens(d.Tokens),
	}
}

// RendererConfig builds the renderer-facing theme view for a style: tokens
// plus the derived --cv-* CSS variables the HTML templates consume.
func RendererConfig(id ID) (*theme.RendererConfig, error) {
	d, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("templates: unknown template %q", id)
	}

	cssVars := make(map[string]string, len(d.Tokens))
	for token, value := range d.Tokens {
		cssVars["--cv-"+token] = value
	}

	return &theme.RendererConfig{
		Theme:   string(d.ID),
		Tokens:  copyTokens(d.Tokens),
		CSSVars: cssVars,
	}, nil
}

// CSSVarsStyle renders a :root block from resolved CSS variables, sorted for
// deterministic output.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := ":root {\n"
	for _, key := range keys {
		out += key + ": " + vars[key] + ";\n"
	}
	return out + "}"
}

func copyTokens(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
