// Package terminal provides the byte-level side of a serial console.
//
// Features:
//   - Byte source/sink backends: stdio, tty devices, serial lines, pseudo-terminals, TCP streams, 16550 UART
//   - Escape sequence decoding into a fixed set of input events
//   - UTF-8 and single-byte charset handling for input and output
//   - Minimal ANSI output (absolute column positioning only)
//   - Clean terminal restoration on exit/panic
//
// Decoding is pull-based: a Decoder reads one byte at a time from a Backend and
// produces exactly one Event per call. There is no background reader goroutine.
package terminal
