package terminal

import (
	"fmt"
	"strconv"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventCharacter     EventType = iota // Printable rune (check Event.Rune)
	EventBackspace                      // Delete-before-cursor request
	EventCSI                            // ESC [ args final (check Event.Args, Event.Function)
	EventUnknownEscape                  // ESC [ sequence that is not a valid CSI
	EventRawByte                        // Unclassified byte (check Event.Byte)
	EventEsc                            // Bare ESC not followed by '['
)

var eventTypeNames = [...]string{
	EventCharacter:     "character",
	EventBackspace:     "backspace",
	EventCSI:           "csi",
	EventUnknownEscape: "unknown_escape",
	EventRawByte:       "raw_byte",
	EventEsc:           "esc",
}

// String returns the canonical name of the event type
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "event(" + strconv.Itoa(int(t)) + ")"
}

// Event is a single decoded input token. Only the payload fields relevant to Type are set,
// so events compare with == in tests and switch statements.
type Event struct {
	Type     EventType
	Rune     rune      // EventCharacter
	Byte     byte      // EventRawByte
	Args     [2]uint32 // EventCSI, missing parameters are 0
	Function byte      // EventCSI final byte, 0x40-0x7F
}

// Character returns an EventCharacter for r
func Character(r rune) Event {
	return Event{Type: EventCharacter, Rune: r}
}

// RawByte returns an EventRawByte for b
func RawByte(b byte) Event {
	return Event{Type: EventRawByte, Byte: b}
}

// CSI returns an EventCSI with the given parameters and final byte
func CSI(arg0, arg1 uint32, function byte) Event {
	return Event{Type: EventCSI, Args: [2]uint32{arg0, arg1}, Function: function}
}

// Frequently compared payload-less events
var (
	Backspace     = Event{Type: EventBackspace}
	UnknownEscape = Event{Type: EventUnknownEscape}
	Esc           = Event{Type: EventEsc}
)

// Control bytes the console reacts to
const (
	ByteCtrlC     byte = 0x03
	ByteCtrlD     byte = 0x04
	ByteBackspace byte = 0x08
	ByteEscape    byte = 0x1b
	ByteDelete    byte = 0x7f
)

// String renders the event for logs
func (e Event) String() string {
	switch e.Type {
	case EventCharacter:
		return fmt.Sprintf("character(%q)", e.Rune)
	case EventCSI:
		return fmt.Sprintf("csi(%d;%d%c)", e.Args[0], e.Args[1], e.Function)
	case EventRawByte:
		if name := ControlName(e.Byte); name != "" {
			return "raw_byte(" + name + ")"
		}
		return fmt.Sprintf("raw_byte(0x%02x)", e.Byte)
	default:
		return e.Type.String()
	}
}

// controlNames maps C0 control bytes to caret-free canonical names
var controlNames = [0x20]string{
	0x00: "ctrl_space",
	0x01: "ctrl_a",
	0x02: "ctrl_b",
	0x03: "ctrl_c",
	0x04: "ctrl_d",
	0x05: "ctrl_e",
	0x06: "ctrl_f",
	0x07: "bell",
	0x08: "backspace",
	0x09: "tab",
	0x0a: "line_feed",
	0x0b: "ctrl_k",
	0x0c: "ctrl_l",
	0x0d: "carriage_return",
	0x0e: "ctrl_n",
	0x0f: "ctrl_o",
	0x10: "ctrl_p",
	0x11: "ctrl_q",
	0x12: "ctrl_r",
	0x13: "ctrl_s",
	0x14: "ctrl_t",
	0x15: "ctrl_u",
	0x16: "ctrl_v",
	0x17: "ctrl_w",
	0x18: "ctrl_x",
	0x19: "ctrl_y",
	0x1a: "ctrl_z",
	0x1b: "escape",
	0x1c: "ctrl_backslash",
	0x1d: "ctrl_bracket_right",
	0x1e: "ctrl_caret",
	0x1f: "ctrl_underscore",
}

// ControlName returns the canonical name for a control byte
// Returns empty string for bytes that are not C0 controls or DEL
func ControlName(b byte) string {
	if b < 0x20 {
		return controlNames[b]
	}
	if b == ByteDelete {
		return "delete"
	}
	return ""
}
