// @lixen: #focus{lifecycle[loop],event[dispatch]}
package console

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/serialcon/terminal"
)

// DefaultBanner is written once before the first prompt
const DefaultBanner = "Press Ctrl-C or Ctrl-D to shutdown."

// ErrTerminated is returned by Run once the console has shut down
var ErrTerminated = errors.New("console: terminated")

// BellMode selects how a rejected insert is signalled
type BellMode uint8

const (
	BellNone     BellMode = iota // Silent
	BellTerminal                 // BEL byte to the device
	BellAudio                    // Host-side Ringer
)

// EventSource yields one decoded event per call; terminal.Decoder implements it
type EventSource interface {
	Next() (terminal.Event, error)
}

// Options configures a Console. Zero values select defaults
type Options struct {
	Prompt   string // Empty selects DefaultPrompt
	Banner   string // Empty disables the banner line
	Capacity int
	Handler  CommandHandler
	Shutdown Shutdowner
	Bell     BellMode
	Ringer   Ringer // Required for BellAudio; otherwise the bell is silent
	Logger   *log.Logger
}

// Console drives the read-edit-render loop on one device
type Console struct {
	src    EventSource
	out    *terminal.Output
	editor *Editor

	prompt     string
	banner     string
	handler    CommandHandler
	shutdown   Shutdowner
	bell       BellMode
	ringer     Ringer
	logger     *log.Logger
	terminated bool
}

// New creates a console reading from src and rendering to out
func New(src EventSource, out *terminal.Output, opts Options) *Console {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Console{
		src:      src,
		out:      out,
		editor:   NewEditor(prompt, opts.Capacity),
		prompt:   prompt,
		banner:   opts.Banner,
		handler:  opts.Handler,
		shutdown: opts.Shutdown,
		bell:     opts.Bell,
		ringer:   opts.Ringer,
		logger:   logger,
	}
}

// Editor exposes the line editor for inspection
func (c *Console) Editor() *Editor {
	return c.editor
}

// Run writes the banner and prompt, then processes events until Ctrl-C or Ctrl-D.
// It returns nil after invoking Shutdown, or the first device error
func (c *Console) Run() error {
	if c.terminated {
		return ErrTerminated
	}

	if c.banner != "" {
		c.out.WriteString(c.banner)
		c.out.Newline()
	}
	c.out.WriteString(c.prompt)
	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("console: write: %w", err)
	}

	for {
		ev, err := c.src.Next()
		if err != nil {
			return fmt.Errorf("console: read: %w", err)
		}

		res := c.editor.HandleEvent(ev)
		if res.Ignored {
			c.logger.Printf("[CONSOLE] ignored %s", ev)
		}
		c.render(res.Actions)

		switch res.Outcome {
		case OutcomeSubmit:
			if err := c.out.Flush(); err != nil {
				return fmt.Errorf("console: write: %w", err)
			}
			c.logger.Printf("[CONSOLE] submit %q", res.Line)
			if c.handler != nil {
				c.handler.HandleLine(res.Line)
			}
			c.out.WriteString(c.prompt)

		case OutcomeTerminate:
			c.terminated = true
			if err := c.out.Flush(); err != nil {
				c.logger.Printf("[CONSOLE] flush before shutdown: %v", err)
			}
			c.logger.Printf("[CONSOLE] shutdown on %s", ev)
			if c.shutdown != nil {
				c.shutdown.Shutdown()
			}
			return nil
		}

		if err := c.out.Flush(); err != nil {
			return fmt.Errorf("console: write: %w", err)
		}
	}
}

func (c *Console) render(actions []Action) {
	for _, a := range actions {
		switch a.Kind {
		case ActionEcho:
			c.out.WriteRunes(a.Text)
		case ActionColumn:
			c.out.Column(a.N)
		case ActionErase:
			c.out.Spaces(a.N)
		case ActionNewline:
			c.out.Newline()
		case ActionBell:
			c.ringBell()
		}
	}
}

func (c *Console) ringBell() {
	switch c.bell {
	case BellTerminal:
		c.out.Bell()
	case BellAudio:
		if c.ringer != nil {
			c.ringer.Ring()
		}
	}
}
