// Package notifier implements the UI boundary for a terminal host: pushed
// messages land on an internal channel that watch mode drains, popups go
// to a writer, and confirmations are answered by an injected prompt
// function.
package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.seclens.dev/seclens/internal/core/ports"
)

// messageBuffer bounds how many undelivered messages are kept before the
// oldest is dropped. Post must never block a refresh path on a slow reader.
const messageBuffer = 64

// ConfirmFunc answers a blocking yes/no prompt.
type ConfirmFunc func(prompt string) bool

// Console implements ports.Notifier.
type Console struct {
	out     io.Writer
	confirm ConfirmFunc

	mu   sync.Mutex
	msgs chan ports.Message
}

// Option configures a Console.
type Option func(*Console)

// WithOutput overrides where popups are written.
func WithOutput(w io.Writer) Option {
	return func(c *Console) { c.out = w }
}

// WithConfirm overrides the confirmation prompt. The default declines
// everything, which is the safe answer for a non-interactive run.
func WithConfirm(fn ConfirmFunc) Option {
	return func(c *Console) { c.confirm = fn }
}

// New creates a Console notifier.
func New(opts ...Option) *Console {
	c := &Console{
		out:     os.Stderr,
		confirm: func(string) bool { return false },
		msgs:    make(chan ports.Message, messageBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post pushes a message without blocking; when the buffer is full the
// oldest message is dropped to make room.
func (c *Console) Post(_ context.Context, msg ports.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		select {
		case c.msgs <- msg:
			return
		default:
			select {
			case <-c.msgs:
			default:
			}
		}
	}
}

// Messages exposes the pushed message stream for watch mode.
func (c *Console) Messages() <-chan ports.Message {
	return c.msgs
}

// ShowError surfaces a failure popup.
func (c *Console) ShowError(msg string) {
	_, _ = fmt.Fprintf(c.out, "error: %s\n", msg)
}

// ShowInfo surfaces an informational popup.
func (c *Console) ShowInfo(msg string) {
	_, _ = fmt.Fprintf(c.out, "info: %s\n", msg)
}

// Confirm blocks on the injected prompt and reports the choice.
func (c *Console) Confirm(_ context.Context, prompt string) bool {
	return c.confirm(prompt)
}
