package console

// DefaultCapacity is the line length limit in runes
const DefaultCapacity = 4096

// LineBuffer is a bounded rune buffer with an insertion cursor.
// Invariant: 0 <= Cursor() <= Len() <= Cap()
type LineBuffer struct {
	data     []rune
	cursor   int
	capacity int
}

// NewLineBuffer creates an empty buffer; capacity <= 0 selects DefaultCapacity
func NewLineBuffer(capacity int) *LineBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LineBuffer{
		data:     make([]rune, 0, capacity),
		capacity: capacity,
	}
}

// Len returns the number of runes in the buffer
func (b *LineBuffer) Len() int { return len(b.data) }

// Cursor returns the insertion index, 0 before the first rune
func (b *LineBuffer) Cursor() int { return b.cursor }

// Cap returns the capacity in runes
func (b *LineBuffer) Cap() int { return b.capacity }

// Full reports whether the next Insert would be rejected
func (b *LineBuffer) Full() bool { return len(b.data) >= b.capacity }

// Insert places r at the cursor, shifting the tail right. Returns false when full
func (b *LineBuffer) Insert(r rune) bool {
	if b.Full() {
		return false
	}
	b.data = append(b.data, 0)
	copy(b.data[b.cursor+1:], b.data[b.cursor:])
	b.data[b.cursor] = r
	b.cursor++
	return true
}

// DeleteBackward removes the rune before the cursor and returns it
func (b *LineBuffer) DeleteBackward() (rune, bool) {
	if b.cursor == 0 {
		return 0, false
	}
	b.cursor--
	r := b.data[b.cursor]
	copy(b.data[b.cursor:], b.data[b.cursor+1:])
	b.data = b.data[:len(b.data)-1]
	return r, true
}

// MoveLeft moves the cursor n runes left, saturating at 0
func (b *LineBuffer) MoveLeft(n int) {
	b.cursor -= n
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// MoveRight moves the cursor n runes right, clamped to Len
func (b *LineBuffer) MoveRight(n int) {
	b.cursor += n
	if b.cursor > len(b.data) || b.cursor < 0 {
		b.cursor = len(b.data)
	}
}

// Prefix returns the runes before the cursor. The slice aliases the buffer
func (b *LineBuffer) Prefix() []rune {
	return b.data[:b.cursor]
}

// Suffix returns the runes from the cursor to the end. The slice aliases the buffer
func (b *LineBuffer) Suffix() []rune {
	return b.data[b.cursor:]
}

// String returns a copy of the contents
func (b *LineBuffer) String() string {
	return string(b.data)
}

// Reset empties the buffer, keeping its storage
func (b *LineBuffer) Reset() {
	b.data = b.data[:0]
	b.cursor = 0
}
