// Package console implements the line-editing loop of a serial console.
//
// A Console pulls events from a terminal.Decoder, applies them to a bounded
// LineBuffer through an Editor, and renders the minimal redraw for each event:
// the changed suffix of the line followed by an absolute column move.
//
// Collaborators:
//   - CommandHandler receives every submitted line, including empty ones
//   - Shutdowner is invoked once when Ctrl-C or Ctrl-D is read
//   - Ringer signals a full buffer when the audio bell mode is selected
//
// The console owns a single goroutine of control. The only blocking point
// is the device read behind the event source.
package console
