// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"io"
)

// NewlineMode selects the byte sequence written for a line break
type NewlineMode uint8

const (
	NewlineCRLF NewlineMode = iota // Raw-mode devices do no output translation
	NewlineLF
)

// Output buffers console output and encodes runes through a Charset.
// Nothing reaches the device until Flush.
type Output struct {
	writer  *bufio.Writer
	charset *Charset
	newline []byte
	scratch []byte
}

// OutputOption configures an Output
type OutputOption func(*Output)

// WithOutputCharset sets the charset used to encode runes
func WithOutputCharset(cs *Charset) OutputOption {
	return func(o *Output) {
		if cs != nil {
			o.charset = cs
		}
	}
}

// WithNewline sets the line break sequence
func WithNewline(mode NewlineMode) OutputOption {
	return func(o *Output) {
		if mode == NewlineLF {
			o.newline = lf
		} else {
			o.newline = crlf
		}
	}
}

// NewOutput creates an output buffer writing to w
func NewOutput(w io.Writer, opts ...OutputOption) *Output {
	o := &Output{
		writer:  bufio.NewWriterSize(w, 4096),
		charset: UTF8,
		newline: crlf,
		scratch: make([]byte, 0, 64),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WriteString writes text, encoding each rune through the charset
func (o *Output) WriteString(s string) {
	for _, r := range s {
		o.writeRune(r)
	}
}

// WriteRunes writes runes, encoding each through the charset
func (o *Output) WriteRunes(rs []rune) {
	for _, r := range rs {
		o.writeRune(r)
	}
}

func (o *Output) writeRune(r rune) {
	o.scratch = o.charset.AppendRune(o.scratch[:0], r)
	o.writer.Write(o.scratch)
}

// Column moves the cursor to a 1-based column on the current line
func (o *Output) Column(col int) {
	writeColumn(o.writer, col)
}

// Spaces writes n blanks
func (o *Output) Spaces(n int) {
	for i := 0; i < n; i++ {
		o.writer.WriteByte(' ')
	}
}

// Newline writes the configured line break
func (o *Output) Newline() {
	o.writer.Write(o.newline)
}

// Bell writes BEL
func (o *Output) Bell() {
	o.writer.WriteByte(bel)
}

// Flush writes buffered output to the device
func (o *Output) Flush() error {
	return o.writer.Flush()
}
