// @lixen: #focus{sys[io],input[parse]}
package terminal

import (
	"io"
	"math"
	"unicode/utf8"
)

// BackspaceMode selects which bytes decode to EventBackspace
type BackspaceMode uint8

const (
	BackspaceDEL  BackspaceMode = iota // 0x7F only, 0x08 stays a raw byte
	BackspaceBoth                      // 0x7F and 0x08
)

// csiArgCount is the number of numeric CSI parameter slots
const csiArgCount = 2

// Decoder converts a byte stream into input events, one event per Next call.
// It holds a single-byte pushback slot for bytes read ahead while classifying
// a lone ESC or a broken UTF-8 sequence.
type Decoder struct {
	src       io.ByteReader
	backspace BackspaceMode
	charset   *Charset

	pending    byte
	hasPending bool
}

// DecoderOption configures a Decoder
type DecoderOption func(*Decoder)

// WithBackspace sets the backspace byte mapping
func WithBackspace(mode BackspaceMode) DecoderOption {
	return func(d *Decoder) { d.backspace = mode }
}

// WithCharset sets the charset for bytes >= 0x80
func WithCharset(cs *Charset) DecoderOption {
	return func(d *Decoder) {
		if cs != nil {
			d.charset = cs
		}
	}
}

// NewDecoder creates a decoder pulling bytes from src
func NewDecoder(src io.ByteReader, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		src:     src,
		charset: UTF8,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Pending reports the byte held in the pushback slot, if any
func (d *Decoder) Pending() (byte, bool) {
	return d.pending, d.hasPending
}

// Next blocks until one complete event has been read.
// Malformed input is reported as an event; the only errors are those of the byte source.
func (d *Decoder) Next() (Event, error) {
	b, err := d.readByte()
	if err != nil {
		return Event{}, err
	}

	switch {
	case b == ByteDelete:
		return Backspace, nil
	case b == ByteBackspace && d.backspace == BackspaceBoth:
		return Backspace, nil
	case b == ByteEscape:
		return d.decodeEscape()
	case b == '\r':
		return Character('\n'), nil
	case b < 0x20:
		return RawByte(b), nil
	case b < 0x80:
		// Fast path: printable ASCII
		return Character(rune(b)), nil
	default:
		return d.decodeHigh(b)
	}
}

// readByte takes the pushback byte if present, otherwise reads from the source
func (d *Decoder) readByte() (byte, error) {
	if d.hasPending {
		d.hasPending = false
		return d.pending, nil
	}
	return d.src.ReadByte()
}

// unread stores b for the next readByte; the slot is always empty when called
func (d *Decoder) unread(b byte) {
	d.pending = b
	d.hasPending = true
}

// decodeEscape classifies the byte after ESC
func (d *Decoder) decodeEscape() (Event, error) {
	next, err := d.readByte()
	if err != nil {
		return Event{}, err
	}
	if next != '[' {
		d.unread(next)
		return Esc, nil
	}
	return d.decodeCSI()
}

// decodeCSI accumulates parameters until a final byte in 0x40-0x7F.
// Invalid input keeps being consumed up to the final byte so the stream stays in sync.
func (d *Decoder) decodeCSI() (Event, error) {
	var args [csiArgCount]uint64
	slot := 0
	valid := true

	for {
		b, err := d.readByte()
		if err != nil {
			return Event{}, err
		}

		switch {
		case b >= 0x40 && b <= 0x7f:
			if !valid {
				return UnknownEscape, nil
			}
			return CSI(uint32(args[0]), uint32(args[1]), b), nil

		case b >= '0' && b <= '9':
			if !valid {
				continue
			}
			args[slot] = args[slot]*10 + uint64(b-'0')
			if args[slot] > math.MaxUint32 {
				valid = false
			}

		case b == ';':
			if !valid {
				continue
			}
			slot++
			if slot >= csiArgCount {
				valid = false
			}

		default:
			valid = false
		}
	}
}

// decodeHigh handles bytes >= 0x80 according to the charset.
// C1 controls (U+0080-U+009F) are not inserted as text and come back as RawByte(lead).
func (d *Decoder) decodeHigh(lead byte) (Event, error) {
	if !d.charset.IsUTF8() {
		r := d.charset.DecodeByte(lead)
		if isC1(r) {
			return RawByte(lead), nil
		}
		return Character(r), nil
	}

	size, lo, hi := utf8Lead(lead)
	if size == 0 {
		// Stray continuation byte, overlong lead or out-of-range lead
		return RawByte(lead), nil
	}

	// Second-byte ranges reject overlongs, surrogates and runes past U+10FFFF
	// before anything beyond the lead is consumed
	var seq [utf8.UTFMax]byte
	seq[0] = lead
	for i := 1; i < size; i++ {
		b, err := d.readByte()
		if err != nil {
			return Event{}, err
		}
		if b < lo || b > hi {
			d.unread(b)
			return RawByte(lead), nil
		}
		seq[i] = b
		lo, hi = 0x80, 0xbf
	}

	r, _ := utf8.DecodeRune(seq[:size])
	if isC1(r) {
		return RawByte(lead), nil
	}
	return Character(r), nil
}

// utf8Lead returns the sequence length for a lead byte and the valid range of the
// byte that follows it; size 0 means b cannot start a sequence.
// A 3 or 4 byte sequence cut short after its second byte reports RawByte(lead) and then
// the breaking byte. Continuation bytes accepted before the break are dropped, since the
// pushback slot holds a single byte.
func utf8Lead(b byte) (size int, lo, hi byte) {
	switch {
	case b >= 0xc2 && b <= 0xdf:
		return 2, 0x80, 0xbf
	case b == 0xe0:
		return 3, 0xa0, 0xbf
	case b == 0xed:
		return 3, 0x80, 0x9f
	case b >= 0xe1 && b <= 0xef:
		return 3, 0x80, 0xbf
	case b == 0xf0:
		return 4, 0x90, 0xbf
	case b >= 0xf1 && b <= 0xf3:
		return 4, 0x80, 0xbf
	case b == 0xf4:
		return 4, 0x80, 0x8f
	}
	return 0, 0, 0
}

// isC1 reports whether r is a C1 control character
func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}
