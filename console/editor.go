// @lixen: #focus{input[edit,cursor]}
package console

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/serialcon/terminal"
)

// DefaultPrompt is written at the start of every line
const DefaultPrompt = "$ "

// ActionKind identifies a render instruction
type ActionKind uint8

const (
	ActionEcho    ActionKind = iota // Write Text
	ActionColumn                    // Move to absolute column N (1-based)
	ActionErase                     // Write N blanks
	ActionNewline                   // Line break
	ActionBell                      // Buffer full
)

// Action is one render instruction produced by the editor
type Action struct {
	Kind ActionKind
	Text []rune
	N    int
}

// Outcome tells the loop what to do after rendering
type Outcome uint8

const (
	OutcomeContinue Outcome = iota
	OutcomeSubmit
	OutcomeTerminate
)

// Result is the effect of a single event
type Result struct {
	Actions []Action
	Outcome Outcome
	Line    string // Submitted text, valid when Outcome is OutcomeSubmit
	Ignored bool   // Event carried no editing meaning
}

// Editor applies input events to a LineBuffer and computes the minimal redraw
type Editor struct {
	buf         *LineBuffer
	promptWidth int
}

// NewEditor creates an editor for lines following prompt
func NewEditor(prompt string, capacity int) *Editor {
	return &Editor{
		buf:         NewLineBuffer(capacity),
		promptWidth: runewidth.StringWidth(prompt),
	}
}

// Buffer exposes the edit buffer for inspection
func (e *Editor) Buffer() *LineBuffer {
	return e.buf
}

// column returns the 1-based terminal column of the cursor
func (e *Editor) column() int {
	return e.promptWidth + runesWidth(e.buf.Prefix()) + 1
}

// HandleEvent mutates the buffer for ev and returns the redraw for it.
// Returned Text slices are copies and stay valid after further events.
func (e *Editor) HandleEvent(ev terminal.Event) Result {
	switch ev.Type {
	case terminal.EventCharacter:
		if ev.Rune == '\n' {
			return e.submit()
		}
		return e.insert(ev.Rune)

	case terminal.EventBackspace:
		return e.backspace()

	case terminal.EventCSI:
		return e.csi(ev)

	case terminal.EventRawByte:
		if ev.Byte == terminal.ByteCtrlC || ev.Byte == terminal.ByteCtrlD {
			return Result{
				Actions: []Action{{Kind: ActionNewline}},
				Outcome: OutcomeTerminate,
			}
		}
	}

	// Esc, UnknownEscape, remaining raw bytes
	return Result{Ignored: true}
}

func (e *Editor) submit() Result {
	line := e.buf.String()
	e.buf.Reset()
	return Result{
		Actions: []Action{{Kind: ActionNewline}},
		Outcome: OutcomeSubmit,
		Line:    line,
	}
}

func (e *Editor) insert(r rune) Result {
	if !e.buf.Insert(r) {
		return Result{Actions: []Action{{Kind: ActionBell}}}
	}

	// Inserted rune plus the shifted tail
	echo := make([]rune, 0, e.buf.Len()-e.buf.Cursor()+1)
	echo = append(echo, r)
	echo = append(echo, e.buf.Suffix()...)

	return Result{Actions: []Action{
		{Kind: ActionEcho, Text: echo},
		{Kind: ActionColumn, N: e.column()},
	}}
}

func (e *Editor) backspace() Result {
	deleted, ok := e.buf.DeleteBackward()
	if !ok {
		return Result{}
	}

	col := e.column()
	actions := []Action{{Kind: ActionColumn, N: col}}
	if suffix := e.buf.Suffix(); len(suffix) > 0 {
		actions = append(actions, Action{Kind: ActionEcho, Text: append([]rune(nil), suffix...)})
	}
	actions = append(actions,
		Action{Kind: ActionErase, N: runewidth.RuneWidth(deleted)},
		Action{Kind: ActionColumn, N: col},
	)
	return Result{Actions: actions}
}

func (e *Editor) csi(ev terminal.Event) Result {
	// Moves past either end clamp, so the count never needs more than Cap
	n := int(min(ev.Args[0], uint32(e.buf.Cap())))
	if n == 0 {
		n = 1
	}

	switch ev.Function {
	case 'C':
		e.buf.MoveRight(n)
	case 'D':
		e.buf.MoveLeft(n)
	default:
		// A and B would be history navigation; all other functions are unsupported
		return Result{}
	}
	return Result{Actions: []Action{{Kind: ActionColumn, N: e.column()}}}
}

func runesWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += runewidth.RuneWidth(r)
	}
	return w
}
