// @lixen: #focus{sys[term,ansi]}
package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during redraw)
var (
	// CSI sequences
	csi = []byte("\x1b[")

	// Line control
	crlf = []byte("\r\n")
	lf   = []byte("\n")

	// Restore sequences used only by EmergencyReset
	csiSGR0       = []byte("\x1b[0m")
	csiCursorShow = []byte("\x1b[?25h")
	csiAutoWrapOn = []byte("\x1b[?7h")
)

// Byte emitted for an audible terminal bell
const bel byte = 0x07

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (long lines at capacity)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeColumn writes cursor horizontal absolute (CHA), col is 1-based
func writeColumn(w *bufio.Writer, col int) {
	if col < 1 {
		col = 1
	}
	w.Write(csi)
	writeInt(w, col)
	w.WriteByte('G')
}
