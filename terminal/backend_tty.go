//go:build unix

package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// defaultTTYPath is the controlling terminal of the process
const defaultTTYPath = "/dev/tty"

// ttyBackend drives a terminal device through tcell's Tty, which owns raw mode setup
type ttyBackend struct {
	path string
	tty  tcell.Tty

	buf     [256]byte
	pending []byte

	mu     sync.Mutex
	closed bool
}

func newTTYBackend(path string) *ttyBackend {
	if path == "" {
		path = defaultTTYPath
	}
	return &ttyBackend{path: path}
}

func (b *ttyBackend) Init() error {
	tty, err := tcell.NewDevTtyFromDev(b.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.path, err)
	}
	if err := tty.Start(); err != nil {
		tty.Close()
		return fmt.Errorf("start %s: %w", b.path, err)
	}
	b.tty = tty
	return nil
}

func (b *ttyBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || b.tty == nil {
		b.closed = true
		return
	}
	b.closed = true

	// Stop releases a blocked Read and restores the saved termios
	b.tty.Stop()
	b.tty.Close()
}

func (b *ttyBackend) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *ttyBackend) ReadByte() (byte, error) {
	for len(b.pending) == 0 {
		if b.tty == nil || b.isClosed() {
			return 0, ErrClosed
		}
		n, err := b.tty.Read(b.buf[:])
		if err != nil {
			if b.isClosed() {
				return 0, ErrClosed
			}
			return 0, err
		}
		// Zero-length reads happen while tcell drains on Stop
		b.pending = b.buf[:n]
	}
	c := b.pending[0]
	b.pending = b.pending[1:]
	return c, nil
}

func (b *ttyBackend) Write(p []byte) (int, error) {
	if b.tty == nil {
		return 0, ErrClosed
	}
	return b.tty.Write(p)
}
