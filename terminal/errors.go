package terminal

import "errors"

// Sentinel errors
var (
	ErrClosed          = errors.New("terminal: device closed")
	ErrNotTerminal     = errors.New("terminal: not a terminal")
	ErrUnsupportedBaud = errors.New("terminal: unsupported baud rate")
	ErrUnknownDevice   = errors.New("terminal: unknown device kind")
	ErrUnsupported     = errors.New("terminal: device kind not supported on this platform")
)
