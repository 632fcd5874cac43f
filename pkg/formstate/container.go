package formstate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-cvform/pkg/cv"
)

// Watcher observes committed writes to a single field path. Watchers run
// synchronously after the value is stored, in registration order.
type Watcher func(path string, value any)

// Container is the mutable form-state record shared by the photo pipeline,
// the template panel, and the renderers. All access is keyed by dotted paths
// and is safe for concurrent use.
type Container struct {
	mu       sync.RWMutex
	values   map[string]any
	errors   map[string][]string
	watchers map[string][]watcherEntry
	registry *Registry
	nextID   int
}

type watcherEntry struct {
	id int
	fn Watcher
}

// Option configures a Container during construction.
type Option func(*Container)

// WithRegistry attaches a field registry so writes are validated and unknown
// paths rejected. Without a registry the container is pure storage.
func WithRegistry(reg *Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// New constructs an empty container.
func New(options ...Option) *Container {
	c := &Container{
		values:   make(map[string]any),
		errors:   make(map[string][]string),
		watchers: make(map[string][]watcherEntry),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get resolves a dotted path. The second return reports whether the path held
// a value.
func (c *Container) Get(path string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.values, path)
}

// GetString reads a string field, degrading to "" when the path is absent or
// holds a non-string. Display code relies on this never failing.
func (c *Container) GetString(path string) string {
	value, ok := c.Get(path)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// GetBool reads a boolean field, degrading to false.
func (c *Container) GetBool(path string) bool {
	value, ok := c.Get(path)
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// Set writes a value at a dotted path, creating intermediate maps and slices
// as needed. When a registry is attached the path must be registered; rule
// violations do not fail the write, they are recorded as field messages
// retrievable via ErrorsFor.
func (c *Container) Set(path string, value any) error {
	if c == nil {
		return fmt.Errorf("formstate: container is nil")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("formstate: path is required")
	}

	var field *Field
	if c.registry != nil {
		f, ok := c.registry.Lookup(path)
		if !ok {
			return fmt.Errorf("formstate: unknown field path %q", path)
		}
		field = &f
	}

	c.mu.Lock()
	if err := setPath(c.values, path, value); err != nil {
		c.mu.Unlock()
		return err
	}
	if field != nil {
		if msgs := field.Check(value); len(msgs) > 0 {
			c.errors[path] = msgs
		} else {
			delete(c.errors, path)
		}
	}
	entries := append([]watcherEntry(nil), c.watchers[path]...)
	c.mu.Unlock()

	for _, entry := range entries {
		entry.fn(path, value)
	}
	return nil
}

// Watch registers a watcher for a path and returns a cancel func that removes
// it. The watcher is not called for the current value, only for subsequent
// writes.
func (c *Container) Watch(path string, fn Watcher) func() {
	if c == nil || fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.watchers[path] = append(c.watchers[path], watcherEntry{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		entries := c.watchers[path]
		for i, entry := range entries {
			if entry.id == id {
				c.watchers[path] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
	}
}

// ErrorsFor returns the validation messages attached to a path.
func (c *Container) ErrorsFor(path string) []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.errors[path]...)
}

// SetErrors replaces the messages attached to a path. An empty message list
// clears the entry.
func (c *Container) SetErrors(path string, msgs ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(msgs) == 0 {
		delete(c.errors, path)
		return
	}
	c.errors[path] = append([]string(nil), msgs...)
}

// Errors returns a copy of every field message currently recorded.
func (c *Container) Errors() map[string][]string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(c.errors))
	for path, msgs := range c.errors {
		out[path] = append([]string(nil), msgs...)
	}
	return out
}

// Snapshot materializes the current values into a typed CV record.
func (c *Container) Snapshot() (cv.Document, error) {
	c.mu.RLock()
	payload := deepCopyMap(c.values)
	c.mu.RUnlock()

	// The container keys template settings under "template" to match the
	// panel's field paths; the record's wire shape names the same block
	// "templateSettings".
	if tpl, ok := payload["template"]; ok {
		delete(payload, "template")
		payload["templateSettings"] = tpl
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return cv.Document{}, fmt.Errorf("formstate: snapshot marshal: %w", err)
	}
	var doc cv.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return cv.Document{}, fmt.Errorf("formstate: snapshot unmarshal: %w", err)
	}
	return doc, nil
}

// Load replaces the container values with the contents of a typed CV record,
// e.g. when resuming a previously saved session. Field errors are cleared.
// Watchers on paths whose value changed are notified, so observers attached
// before the load stay in lockstep with the new record.
func (c *Container) Load(doc cv.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("formstate: load marshal: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("formstate: load unmarshal: %w", err)
	}
	if tpl, ok := payload["templateSettings"]; ok {
		delete(payload, "templateSettings")
		payload["template"] = tpl
	}

	type notification struct {
		path    string
		value   any
		entries []watcherEntry
	}

	c.mu.Lock()
	previous := c.values
	c.values = payload
	c.errors = make(map[string][]string)

	var pending []notification
	for path, entries := range c.watchers {
		if len(entries) == 0 {
			continue
		}
		before, _ := getPath(previous, path)
		after, _ := getPath(payload, path)
		if reflect.DeepEqual(before, after) {
			continue
		}
		pending = append(pending, notification{
			path:    path,
			value:   after,
			entries: append([]watcherEntry(nil), entries...),
		})
	}
	c.mu.Unlock()

	for _, n := range pending {
		for _, entry := range n.entries {
			entry.fn(n.path, n.value)
		}
	}
	return nil
}

func deepCopyMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func setPath(root map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	return setSegments(root, segments, value, path)
}

func setSegments(node map[string]any, segments []string, value any, full string) error {
	key := segments[0]
	if _, err := strconv.Atoi(key); err == nil {
		return fmt.Errorf("formstate: unexpected numeric segment %q in path %q", key, full)
	}
	if len(segments) == 1 {
		node[key] = value
		return nil
	}

	next := segments[1]
	if idx, err := strconv.Atoi(next); err == nil {
		slice, _ := node[key].([]any)
		for len(slice) <= idx {
			slice = append(slice, nil)
		}
		node[key] = slice
		if len(segments) == 2 {
			slice[idx] = value
			return nil
		}
		child, ok := slice[idx].(map[string]any)
		if !ok || child == nil {
			child = make(map[string]any)
			slice[idx] = child
		}
		return setSegments(child, segments[2:], value, full)
	}

	child, ok := node[key].(map[string]any)
	if !ok || child == nil {
		child = make(map[string]any)
		node[key] = child
	}
	return setSegments(child, segments[1:], value, full)
}
