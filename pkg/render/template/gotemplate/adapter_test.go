package gotemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	gotemplate "github.com/goliatone/go-cvform/pkg/render/template/gotemplate"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"greeting.tpl": &fstest.MapFile{
			Data: []byte("Hello {{ name }}!"),
		},
		"card.html": &fstest.MapFile{
			Data: []byte("<p>{{ personal.firstName }}</p>"),
		},
	}
}

func TestEngine_RequiresATemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("engine built without a template source")
	}
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("greeting", map[string]any{"name": "Jane"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Jane!" {
		t.Fatalf("output = %q", out)
	}

	// The extension is appended only when missing.
	out, err = engine.RenderTemplate("greeting.tpl", map[string]any{"name": "Sam"})
	if err != nil {
		t.Fatalf("render with extension: %v", err)
	}
	if out != "Hello Sam!" {
		t.Fatalf("output = %q", out)
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("missing template rendered")
	}
}

func TestEngine_CustomExtension(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(testFS()), gotemplate.WithExtension("html"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	// Typed data goes through JSON, so templates address wire names.
	type personal struct {
		FirstName string `json:"firstName"`
	}
	type view struct {
		Personal personal `json:"personal"`
	}
	out, err := engine.RenderTemplate("card", view{Personal: personal{FirstName: "Jane"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>Jane</p>" {
		t.Fatalf("output = %q", out)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "x-y" {
		t.Fatalf("output = %q", out)
	}
}

func TestEngine_RenderDispatchesOnContent(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	inline, err := engine.Render("{{ name }}", map[string]any{"name": "inline"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if inline != "inline" {
		t.Fatalf("inline output = %q", inline)
	}

	named, err := engine.Render("greeting", map[string]any{"name": "file"})
	if err != nil {
		t.Fatalf("render named: %v", err)
	}
	if named != "Hello file!" {
		t.Fatalf("named output = %q", named)
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(testFS()),
		gotemplate.WithGlobalData(map[string]any{"brand": "cvform"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString("{{ brand }}:{{ name }}", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "cvform:x" {
		t.Fatalf("output = %q", out)
	}
}

func TestEngine_TeesOutput(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	out, err := engine.RenderTemplate("greeting", map[string]any{"name": "Jane"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Jane") || buf.String() != out {
		t.Fatalf("writer got %q, returned %q", buf.String(), out)
	}
}
