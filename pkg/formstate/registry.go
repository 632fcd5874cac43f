package formstate

import (
	"context"
	_ "embed"
	"fmt"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed schema/cvform.yaml
var embeddedSchema []byte

const rootSchemaName = "CVDocument"

// Field describes one addressable form field: its dotted path (array entries
// use a "*" segment), display label, and the constraints checked on write.
type Field struct {
	Path      string
	Label     string
	Type      string
	Format    string
	Required  bool
	MaxLength *int
	Enum      []string
}

// Check evaluates a candidate value against the field constraints and returns
// human-readable messages, empty when the value passes. It never rejects the
// write itself; the container records the messages for display.
func (f Field) Check(value any) []string {
	var msgs []string

	str, isString := value.(string)
	empty := value == nil || (isString && strings.TrimSpace(str) == "")

	if f.Required && empty {
		msgs = append(msgs, f.Label+" is required")
	}
	if empty {
		return msgs
	}

	if isString {
		if f.MaxLength != nil && len([]rune(str)) > *f.MaxLength {
			msgs = append(msgs, fmt.Sprintf("%s must be at most %d characters", f.Label, *f.MaxLength))
		}
		if len(f.Enum) > 0 && !contains(f.Enum, str) {
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Enum, ", ")))
		}
		if f.Format == "email" {
			if _, err := mail.ParseAddress(str); err != nil {
				msgs = append(msgs, f.Label+" must be a valid email address")
			}
		}
	}
	return msgs
}

// Registry holds the flattened field set derived from the form schema.
type Registry struct {
	fields map[string]Field
	order  []string
}

// NewRegistry parses an OpenAPI document and flattens the named root schema
// into addressable fields.
func NewRegistry(raw []byte) (*Registry, error) {
	loader := &openapi3.Loader{Context: context.Background()}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("formstate: load schema: %w", err)
	}
	if spec.Components == nil || spec.Components.Schemas == nil {
		return nil, fmt.Errorf("formstate: schema document has no component schemas")
	}
	root, ok := spec.Components.Schemas[rootSchemaName]
	if !ok || root.Value == nil {
		return nil, fmt.Errorf("formstate: schema %q not found", rootSchemaName)
	}

	reg := &Registry{fields: make(map[string]Field)}
	reg.flatten("", root.Value, nil)
	return reg, nil
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
	defaultRegistryErr  error
)

// DefaultRegistry returns the registry built from the embedded CV form
// schema. The embedded document is part of the build, so a parse failure is a
// programmer error and panics.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry(embeddedSchema)
	})
	if defaultRegistryErr != nil {
		panic(defaultRegistryErr)
	}
	return defaultRegistry
}

// Lookup resolves a concrete dotted path to its field definition. Numeric
// segments match the registry's "*" array placeholders, so
// "experiences.2.companyName" resolves to "experiences.*.companyName".
func (r *Registry) Lookup(path string) (Field, bool) {
	if r == nil {
		return Field{}, false
	}
	field, ok := r.fields[normalizePath(path)]
	return field, ok
}

// Fields returns every registered field, sorted by name at each nesting
// level.
func (r *Registry) Fields() []Field {
	if r == nil {
		return nil
	}
	out := make([]Field, 0, len(r.order))
	for _, path := range r.order {
		out = append(out, r.fields[path])
	}
	return out
}

// Paths returns the registered paths in the same order as Fields.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

func (r *Registry) flatten(prefix string, schema *openapi3.Schema, required map[string]struct{}) {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		value := ref.Value
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		_, isRequired := required[name]

		switch schemaType(value) {
		case "object":
			r.flatten(path, value, requiredSet(value))
		case "array":
			if value.Items != nil && value.Items.Value != nil && schemaType(value.Items.Value) == "object" {
				r.flatten(path+".*", value.Items.Value, requiredSet(value.Items.Value))
				continue
			}
			r.add(fieldFrom(path, value, isRequired))
		default:
			r.add(fieldFrom(path, value, isRequired))
		}
	}
}

func (r *Registry) add(field Field) {
	if _, exists := r.fields[field.Path]; !exists {
		r.order = append(r.order, field.Path)
	}
	r.fields[field.Path] = field
}

func fieldFrom(path string, schema *openapi3.Schema, required bool) Field {
	field := Field{
		Path:     path,
		Label:    labelFor(path, schema),
		Type:     schemaType(schema),
		Format:   schema.Format,
		Required: required,
	}
	if schema.MaxLength != nil {
		value := int(*schema.MaxLength)
		field.MaxLength = &value
	}
	for _, candidate := range schema.Enum {
		if s, ok := candidate.(string); ok {
			field.Enum = append(field.Enum, s)
		}
	}
	return field
}

func labelFor(path string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	segments := strings.Split(path, ".")
	return segments[len(segments)-1]
}

func requiredSet(schema *openapi3.Schema) map[string]struct{} {
	if len(schema.Required) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		out[name] = struct{}{}
	}
	return out
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func normalizePath(path string) string {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, ".")
}

func contains(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}
