package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Charset translates between device bytes >= 0x80 and runes.
// The zero value is not usable; use UTF8 or LookupCharset.
type Charset struct {
	name string
	cmap *charmap.Charmap // nil for UTF-8
}

// Built-in charsets
var (
	UTF8   = &Charset{name: "utf-8"}
	Latin1 = &Charset{name: "latin1", cmap: charmap.ISO8859_1}
	CP437  = &Charset{name: "cp437", cmap: charmap.CodePage437}
)

var charsetAliases = map[string]*Charset{
	"utf-8":      UTF8,
	"utf8":       UTF8,
	"latin1":     Latin1,
	"iso-8859-1": Latin1,
	"cp437":      CP437,
	"ibm437":     CP437,
}

// LookupCharset resolves a config name to a Charset
func LookupCharset(name string) (*Charset, error) {
	if cs, ok := charsetAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return cs, nil
	}
	return nil, fmt.Errorf("terminal: unknown charset %q", name)
}

// Name returns the canonical charset name
func (c *Charset) Name() string {
	return c.name
}

// IsUTF8 reports whether multi-byte UTF-8 assembly applies
func (c *Charset) IsUTF8() bool {
	return c.cmap == nil
}

// DecodeByte maps a single high byte to a rune for single-byte charsets
func (c *Charset) DecodeByte(b byte) rune {
	if c.cmap == nil {
		return utf8.RuneError
	}
	return c.cmap.DecodeByte(b)
}

// AppendRune encodes r onto dst. Runes the charset cannot represent become '?'
func (c *Charset) AppendRune(dst []byte, r rune) []byte {
	if c.cmap == nil {
		if !utf8.ValidRune(r) {
			return append(dst, '?')
		}
		return utf8.AppendRune(dst, r)
	}
	if r < 0x80 {
		return append(dst, byte(r))
	}
	if b, ok := c.cmap.EncodeRune(r); ok {
		return append(dst, b)
	}
	return append(dst, '?')
}
