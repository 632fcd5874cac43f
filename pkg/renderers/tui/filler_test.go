package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvform/pkg/formstate"
	"github.com/goliatone/go-cvform/pkg/renderers/tui"
	"github.com/goliatone/go-cvform/pkg/testsupport"
)

// scriptDriver answers prompts from per-message queues; a message with no
// scripted answer gets the zero value.
type scriptDriver struct {
	inputs    map[string][]string
	confirms  map[string][]bool
	selects   map[string][]string
	textareas map[string][]string

	asked []string
	infos []string
}

func newScriptDriver() *scriptDriver {
	return &scriptDriver{
		inputs:    make(map[string][]string),
		confirms:  make(map[string][]bool),
		selects:   make(map[string][]string),
		textareas: make(map[string][]string),
	}
}

func pop[T any](queues map[string][]T, key string) (T, bool) {
	queue := queues[key]
	if len(queue) == 0 {
		var zero T
		return zero, false
	}
	queues[key] = queue[1:]
	return queue[0], true
}

func (d *scriptDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	out, _ := pop(d.inputs, cfg.Message)
	return out, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	out, _ := pop(d.confirms, cfg.Message)
	return out, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	want, ok := pop(d.selects, cfg.Message)
	if !ok {
		return cfg.DefaultIndex, nil
	}
	for i, option := range cfg.Options {
		if option == want {
			return i, nil
		}
	}
	return cfg.DefaultIndex, nil
}

func (d *scriptDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	out, _ := pop(d.textareas, cfg.Message)
	return out, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestFiller_Run(t *testing.T) {
	driver := newScriptDriver()
	driver.inputs["First name (required)"] = []string{"Jane"}
	driver.inputs["Last name (required)"] = []string{"Doe"}
	driver.inputs["Email"] = []string{"jane@example.com"}
	driver.inputs["Technical skills"] = []string{"Go, SQL"}
	driver.selects["Template"] = []string{"modern"}
	driver.confirms["Include photo?"] = []bool{true}
	driver.confirms["Add a work experience entry?"] = []bool{true}
	driver.confirms["Add another work experience entry?"] = []bool{false}
	driver.inputs["Company (required)"] = []string{"Acme"}
	driver.inputs["Job title (required)"] = []string{"Engineer"}
	driver.confirms["Current position?"] = []bool{true}
	driver.textareas["Responsibilities"] = []string{"Builds things."}

	form := formstate.New(formstate.WithRegistry(formstate.DefaultRegistry()))
	filler := tui.New(form, tui.WithPromptDriver(driver))

	if err := filler.Run(testsupport.Context()); err != nil {
		t.Fatalf("run: %v", err)
	}

	doc, err := form.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if doc.Personal.FirstName != "Jane" || doc.Personal.LastName != "Doe" {
		t.Fatalf("personal = %+v", doc.Personal)
	}
	if doc.Personal.Email != "jane@example.com" {
		t.Fatalf("email = %q", doc.Personal.Email)
	}
	if diff := cmp.Diff([]string{"Go", "SQL"}, doc.KeyCompetencies.TechnicalSkills); diff != "" {
		t.Fatalf("technical skills mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Experiences) != 1 {
		t.Fatalf("experiences = %+v, want one entry", doc.Experiences)
	}
	exp := doc.Experiences[0]
	if exp.CompanyName != "Acme" || exp.JobTitle != "Engineer" || !exp.IsCurrent {
		t.Fatalf("experience = %+v", exp)
	}
	if exp.Responsibilities != "Builds things." {
		t.Fatalf("responsibilities = %q", exp.Responsibilities)
	}
	if doc.Template.Selected != "modern" || !doc.Template.IncludePhoto {
		t.Fatalf("template settings = %+v", doc.Template)
	}
}

func TestFiller_PersonalComesFirstAndPhotoIsSkipped(t *testing.T) {
	driver := newScriptDriver()

	form := formstate.New(formstate.WithRegistry(formstate.DefaultRegistry()))
	filler := tui.New(form, tui.WithPromptDriver(driver))

	if err := filler.Run(testsupport.Context()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(driver.asked) == 0 {
		t.Fatal("no prompts recorded")
	}
	if first := driver.asked[0]; !strings.Contains(first, "Email") && !strings.Contains(first, "name") {
		t.Fatalf("first prompt = %q, want a personal field", first)
	}
	for _, msg := range driver.asked {
		if strings.Contains(msg, "Profile photo") {
			t.Fatalf("photo field prompted: %q", msg)
		}
	}
}

func TestFiller_RepromptsOnValidationMessages(t *testing.T) {
	schema := `openapi: 3.0.3
info:
  title: t
  version: v1
paths: {}
components:
  schemas:
    CVDocument:
      type: object
      properties:
        personal:
          type: object
          properties:
            email:
              type: string
              title: Email
              format: email
`
	reg, err := formstate.NewRegistry([]byte(schema))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	driver := newScriptDriver()
	driver.inputs["Email"] = []string{"not-an-email", "jane@example.com"}

	form := formstate.New(formstate.WithRegistry(reg))
	filler := tui.New(form, tui.WithPromptDriver(driver), tui.WithRegistry(reg))

	if err := filler.Run(testsupport.Context()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := form.GetString("personal.email"); got != "jane@example.com" {
		t.Fatalf("email = %q, want the corrected value", got)
	}
	if len(driver.infos) == 0 || !strings.Contains(driver.infos[0], "valid email") {
		t.Fatalf("info messages = %v, want the email validation message", driver.infos)
	}
}

func TestFiller_StopsAfterBoundedAttempts(t *testing.T) {
	schema := `openapi: 3.0.3
info:
  title: t
  version: v1
paths: {}
components:
  schemas:
    CVDocument:
      type: object
      properties:
        personal:
          type: object
          properties:
            email:
              type: string
              title: Email
              format: email
`
	reg, err := formstate.NewRegistry([]byte(schema))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	driver := newScriptDriver()
	driver.inputs["Email"] = []string{"bad", "worse", "worst", "never-asked"}

	form := formstate.New(formstate.WithRegistry(reg))
	filler := tui.New(form, tui.WithPromptDriver(driver), tui.WithRegistry(reg))

	if err := filler.Run(testsupport.Context()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := form.GetString("personal.email"); got != "worst" {
		t.Fatalf("email = %q, want the last attempted value kept", got)
	}
	if msgs := form.ErrorsFor("personal.email"); len(msgs) == 0 {
		t.Fatal("validation messages cleared despite the bad value")
	}
	if remaining := driver.inputs["Email"]; len(remaining) != 1 {
		t.Fatalf("prompt ran %d times, want exactly 3 attempts", 4-len(remaining))
	}
}
