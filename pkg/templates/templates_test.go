package templates_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvform/pkg/templates"
)

func TestIDs_GalleryOrder(t *testing.T) {
	want := []templates.ID{templates.Professional, templates.Modern, templates.Minimal}
	if diff := cmp.Diff(want, templates.IDs()); diff != "" {
		t.Fatalf("gallery order mismatch (-want +got):\n%s", diff)
	}
}

func TestValid(t *testing.T) {
	for _, id := range templates.IDs() {
		if !templates.Valid(id) {
			t.Fatalf("built-in template %q reported invalid", id)
		}
	}
	for _, id := range []templates.ID{"", "classic", "PROFESSIONAL"} {
		if templates.Valid(id) {
			t.Fatalf("identifier %q accepted outside the closed set", id)
		}
	}
}

func TestDescriptors_MatchGallery(t *testing.T) {
	descriptors := templates.Descriptors()
	if len(descriptors) != len(templates.IDs()) {
		t.Fatalf("got %d descriptors, want %d", len(descriptors), len(templates.IDs()))
	}
	for i, id := range templates.IDs() {
		d := descriptors[i]
		if d.ID != id {
			t.Fatalf("descriptor %d = %q, want %q", i, d.ID, id)
		}
		if d.Label == "" || d.Description == "" {
			t.Fatalf("descriptor %q missing label or description", id)
		}
		for _, token := range []string{"brand", "accent"} {
			if d.Tokens[token] == "" {
				t.Fatalf("descriptor %q missing %s token", id, token)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	d, ok := templates.Lookup(templates.Modern)
	if !ok || d.ID != templates.Modern {
		t.Fatalf("Lookup(modern) = (%+v, %v)", d, ok)
	}
	if _, ok := templates.Lookup("classic"); ok {
		t.Fatal("Lookup accepted an unknown identifier")
	}
}

func TestRendererConfig_DerivesCSSVars(t *testing.T) {
	cfg, err := templates.RendererConfig(templates.Professional)
	if err != nil {
		t.Fatalf("renderer config: %v", err)
	}
	if cfg.Theme != "professional" {
		t.Fatalf("theme = %q, want professional", cfg.Theme)
	}
	for token, value := range cfg.Tokens {
		if got := cfg.CSSVars["--cv-"+token]; got != value {
			t.Fatalf("css var for %q = %q, want %q", token, got, value)
		}
	}

	if _, err := templates.RendererConfig("classic"); err == nil {
		t.Fatal("renderer config accepted an unknown identifier")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := templates.CSSVarsStyle(map[string]string{
		"--cv-brand":  "#043e44",
		"--cv-accent": "#03d27c",
	})
	want := ":root {\n--cv-accent: #03d27c;\n--cv-brand: #043e44;\n}"
	if got != want {
		t.Fatalf("style block = %q, want %q", got, want)
	}
	if templates.CSSVarsStyle(nil) != "" {
		t.Fatal("empty vars should produce no block")
	}
}

func TestThemeManifest(t *testing.T) {
	d, _ := templates.Lookup(templates.Minimal)
	m := d.ThemeManifest()
	if m.Name != "minimal" || len(m.Tokens) == 0 {
		t.Fatalf("manifest = %+v", m)
	}
	if !strings.HasPrefix(m.Version, "1.") {
		t.Fatalf("manifest version = %q", m.Version)
	}
}
