package photo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cvform/pkg/formstate"
)

// MaxBytes is the hard ceiling on accepted photo files: 2 MiB. The limit is
// part of the form's external contract and must not change.
const MaxBytes int64 = 2 * 1024 * 1024

// imageMIMEPrefix is the accepted MIME category.
const imageMIMEPrefix = "image/"

// Result reports the outcome of one selection attempt.
type Result struct {
	// URI is the committed data URI, empty unless the attempt succeeded.
	URI string
	// Err is the rejection, nil on success and on no-op attempts.
	Err *UploadError
	// Stale marks a completion that lost to a newer attempt; nothing was
	// committed and no error was surfaced.
	Stale bool
}

// Controller runs the photo ingestion pipeline over a form-state container.
// It owns the ephemeral preview and error state; the committed value of
// record is always personal.photoUrl in the container.
//
// A selection that passes validation is read and encoded asynchronously.
// Attempts carry a monotonically increasing sequence number and a completion
// only applies when it is still the most recent attempt, so a slow read can
// never overwrite the outcome of a later selection or removal.
type Controller struct {
	form *formstate.Container
	log  zerolog.Logger

	// commitMu orders the stale-attempt check and the container write as a
	// single step relative to Remove, so a removal can never land between
	// the check and the commit. Locked before mu, never while holding mu.
	commitMu sync.Mutex

	mu      sync.Mutex
	state   controllerState
	unwatch func()
}

type controllerState struct {
	attempt uint64
	preview string
	hasPrev bool
	err     *UploadError
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a structured logger; selection, commit, rejection, and
// stale-drop events are emitted at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController builds a controller bound to the container. When the
// container already carries a photo (resumed session) the preview starts in
// the committed state. The controller keeps the preview in lockstep with
// personal.photoUrl through a container watch, so external writes are picked
// up too.
func NewController(form *formstate.Container, options ...Option) *Controller {
	c := &Controller{
		form: form,
		log:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	if existing := form.GetString(formstate.PathPhotoURL); existing != "" {
		c.state.preview = existing
		c.state.hasPrev = true
	}

	c.unwatch = form.Watch(formstate.PathPhotoURL, func(_ string, value any) {
		uri, _ := value.(string)
		c.mu.Lock()
		c.state.preview = uri
		c.state.hasPrev = uri != ""
		c.mu.Unlock()
	})

	return c
}

// Close detaches the controller from the container. Committed state is left
// untouched.
func (c *Controller) Close() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
}

// Select runs one ingestion attempt. A nil file (the user cancelled the
// picker) is a no-op. Validation happens synchronously; the file read and
// encode happen on a separate goroutine, and the returned channel delivers
// exactly one Result when the attempt settles.
func (c *Controller) Select(ctx context.Context, file File) <-chan Result {
	done := make(chan Result, 1)

	if file == nil {
		done <- Result{}
		return done
	}

	c.mu.Lock()
	c.state.err = nil
	c.state.attempt++
	seq := c.state.attempt

	mime := strings.TrimSpace(file.ContentType())
	if !strings.HasPrefix(mime, imageMIMEPrefix) {
		c.state.err = unsupportedType(mime)
		result := Result{Err: c.state.err}
		c.mu.Unlock()
		c.log.Debug().Str("file", file.Name()).Str("mime", mime).
			Stringer("reason", KindUnsupportedType).Msg("photo rejected")
		done <- result
		return done
	}
	if file.Size() > MaxBytes {
		c.state.err = tooLarge(file.Size())
		result := Result{Err: c.state.err}
		c.mu.Unlock()
		c.log.Debug().Str("file", file.Name()).Int64("size", file.Size()).
			Stringer("reason", KindTooLarge).Msg("photo rejected")
		done <- result
		return done
	}
	c.mu.Unlock()

	c.log.Debug().Str("file", file.Name()).Str("mime", mime).
		Int64("size", file.Size()).Uint64("attempt", seq).Msg("photo selected")

	go func() {
		data, err := readAll(ctx, file)
		done <- c.complete(seq, file.Name(), mime, data, err)
	}()

	return done
}

// Remove unconditionally clears the attachment: preview, committed value, and
// any standing error. It also supersedes any in-flight read, so a pending
// completion cannot resurrect the removed photo. Idempotent.
func (c *Controller) Remove() {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.mu.Lock()
	c.state.attempt++
	c.state.preview = ""
	c.state.hasPrev = false
	c.state.err = nil
	c.mu.Unlock()

	if err := c.form.Set(formstate.PathPhotoURL, ""); err != nil {
		c.log.Error().Err(err).Msg("clear photo field")
	}
	c.log.Debug().Msg("photo removed")
}

// Preview returns the current preview URI; ok is false when no photo is
// committed and the avatar should fall back to initials.
func (c *Controller) Preview() (uri string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.preview, c.state.hasPrev
}

// Err returns the standing upload error, nil when the last attempt succeeded
// or no attempt was made.
func (c *Controller) Err() *UploadError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.err
}

// FallbackIdentity derives the initials glyph from the name fields. It is
// total: absent or malformed fields degrade to the empty string.
func (c *Controller) FallbackIdentity() string {
	return Initials(
		c.form.GetString(formstate.PathFirstName),
		c.form.GetString(formstate.PathLastName),
	)
}

// Avatar resolves what the avatar slot shows right now: the photo preview
// when one is committed, otherwise the initials glyph.
type Avatar struct {
	PhotoURI string
	Initials string
}

// Avatar applies the fallback-then-photo precedence that governs every
// render of the slot.
func (c *Controller) Avatar() Avatar {
	if uri, ok := c.Preview(); ok {
		return Avatar{PhotoURI: uri}
	}
	return Avatar{Initials: c.FallbackIdentity()}
}

func (c *Controller) complete(seq uint64, name, mime string, data []byte, readErr error) Result {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.mu.Lock()
	if seq != c.state.attempt {
		c.mu.Unlock()
		c.log.Debug().Str("file", name).Uint64("attempt", seq).Msg("stale photo read dropped")
		return Result{Stale: true}
	}

	if readErr != nil {
		c.state.err = readFailure(readErr)
		result := Result{Err: c.state.err}
		c.mu.Unlock()
		c.log.Debug().Str("file", name).Err(readErr).
			Stringer("reason", KindReadFailure).Msg("photo rejected")
		return result
	}

	uri := EncodeDataURI(mime, data)
	c.state.preview = uri
	c.state.hasPrev = true
	c.state.err = nil
	c.mu.Unlock()

	if err := c.form.Set(formstate.PathPhotoURL, uri); err != nil {
		c.log.Error().Err(err).Msg("commit photo field")
	}
	c.log.Debug().Str("file", name).Int("encoded_len", len(uri)).Msg("photo committed")
	return Result{URI: uri}
}

func readAll(ctx context.Context, file File) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxBytes {
		return nil, fmt.Errorf("file grew past the declared size")
	}
	return data, nil
}
