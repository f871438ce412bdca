package terminal

// Backend is the byte source/sink of the console.
// Implementations own exactly one device handle acquired in Init and released in Fini.
type Backend interface {
	// Lifecycle
	Init() error
	// Fini restores device state and unblocks a pending ReadByte. Safe to call multiple times
	Fini()

	// I/O
	// ReadByte blocks until one byte is available; returns ErrClosed after Fini
	ReadByte() (byte, error)
	// Write writes raw bytes to the device
	Write(p []byte) (int, error)
}
