package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-cvform/pkg/formstate"
)

// longTextThreshold is the max-length above which a field gets a multi-line
// prompt instead of a single-line input.
const longTextThreshold = 500

// maxFieldAttempts bounds re-prompting when a field keeps failing
// validation; after that the value is kept and the messages stay recorded on
// the container.
const maxFieldAttempts = 3

// Filler drives the interactive fill: it walks the field registry in order,
// prompts for each field, and writes the answers through the container so
// validation messages surface immediately.
type Filler struct {
	form   *formstate.Container
	reg    *formstate.Registry
	driver PromptDriver
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the survey-backed default, mainly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithRegistry overrides the default field registry.
func WithRegistry(reg *formstate.Registry) Option {
	return func(f *Filler) {
		if reg != nil {
			f.reg = reg
		}
	}
}

// New builds a Filler over the container.
func New(form *formstate.Container, options ...Option) *Filler {
	f := &Filler{
		form:   form,
		reg:    formstate.DefaultRegistry(),
		driver: NewSurveyDriver(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Run walks every registered field. Repeating groups (experiences,
// educations, ...) loop with an "add another?" confirm between entries. The
// photo field is skipped: photos go through the ingestion controller, not a
// text prompt.
func (f *Filler) Run(ctx context.Context) error {
	fields := orderedFields(f.reg.Fields())

	for i := 0; i < len(fields); {
		field := fields[i]
		group, ok := arrayGroup(field.Path)
		if !ok {
			if err := f.askScalar(ctx, field); err != nil {
				return err
			}
			i++
			continue
		}

		// Collect the whole repeating group before prompting.
		groupFields := []formstate.Field{field}
		for i+len(groupFields) < len(fields) {
			next := fields[i+len(groupFields)]
			if g, ok := arrayGroup(next.Path); !ok || g != group {
				break
			}
			groupFields = append(groupFields, next)
		}
		if err := f.askGroup(ctx, group, groupFields); err != nil {
			return err
		}
		i += len(groupFields)
	}
	return nil
}

func (f *Filler) askScalar(ctx context.Context, field formstate.Field) error {
	if field.Path == formstate.PathPhotoURL {
		return nil
	}
	return f.askField(ctx, field, field.Path)
}

func (f *Filler) askGroup(ctx context.Context, group string, fields []formstate.Field) error {
	wantFirst, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Add a %s entry?", groupLabel(group)),
		Default: false,
	})
	if err != nil || !wantFirst {
		return err
	}

	for index := 0; ; index++ {
		for _, field := range fields {
			path := strings.Replace(field.Path, "*", strconv.Itoa(index), 1)
			if err := f.askField(ctx, field, path); err != nil {
				return err
			}
		}
		more, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s entry?", groupLabel(group)),
			Default: false,
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (f *Filler) askField(ctx context.Context, field formstate.Field, path string) error {
	current := f.form.GetString(path)

	for attempt := 0; attempt < maxFieldAttempts; attempt++ {
		value, err := f.promptValue(ctx, field, current)
		if err != nil {
			return err
		}
		if err := f.form.Set(path, value); err != nil {
			return err
		}

		msgs := f.form.ErrorsFor(path)
		if len(msgs) == 0 {
			return nil
		}
		for _, msg := range msgs {
			if err := f.driver.Info(ctx, msg); err != nil {
				return err
			}
		}
		if s, ok := value.(string); ok {
			current = s
		}
	}
	return nil
}

func (f *Filler) promptValue(ctx context.Context, field formstate.Field, current string) (any, error) {
	label := field.Label
	if field.Required {
		label += " (required)"
	}

	switch {
	case field.Type == "boolean":
		return f.driver.Confirm(ctx, ConfirmConfig{Message: label + "?"})
	case len(field.Enum) > 0:
		defaultIndex := indexOf(field.Enum, current)
		if defaultIndex < 0 {
			defaultIndex = 0
		}
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Enum,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Enum) {
			return "", nil
		}
		return field.Enum[idx], nil
	case field.Type == "array":
		raw, err := f.driver.Input(ctx, InputConfig{
			Message: label,
			Default: current,
			Help:    "Comma-separated list",
		})
		if err != nil {
			return nil, err
		}
		return splitList(raw), nil
	case field.MaxLength != nil && *field.MaxLength > longTextThreshold:
		return f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
	default:
		return f.driver.Input(ctx, InputConfig{Message: label, Default: current})
	}
}

// sectionOrder is the order sections are prompted in; the registry lists
// fields alphabetically, which reads oddly in an interview.
var sectionOrder = []string{
	"personal",
	"summary",
	"keyCompetencies",
	"experiences",
	"educations",
	"certificates",
	"languages",
	"additional",
	"template",
}

func orderedFields(fields []formstate.Field) []formstate.Field {
	rank := func(path string) int {
		section, _, _ := strings.Cut(path, ".")
		for i, name := range sectionOrder {
			if name == section {
				return i
			}
		}
		return len(sectionOrder)
	}
	out := make([]formstate.Field, len(fields))
	copy(out, fields)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Path) < rank(out[j].Path)
	})
	return out
}

// arrayGroup extracts the repeating-group prefix from a wildcard path:
// "experiences.*.companyName" → "experiences".
func arrayGroup(path string) (string, bool) {
	prefix, _, ok := strings.Cut(path, ".*.")
	return prefix, ok
}

func groupLabel(group string) string {
	switch group {
	case "experiences":
		return "work experience"
	case "educations":
		return "education"
	case "certificates":
		return "certification"
	case "languages":
		return "language"
	default:
		return group
	}
}

func splitList(raw string) []any {
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
