//go:build unix

package terminal

import (
	"fmt"
	"os"
	"sync"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// ptyBackend exposes the console on a fresh pseudo-terminal, acting as a virtual serial port.
// The console owns the master side; a terminal program attaches to SlavePath.
type ptyBackend struct {
	master *os.File
	slave  *os.File
	reader *fdReader

	finiOnce sync.Once
}

func newPTYBackend() *ptyBackend {
	return &ptyBackend{}
}

func (b *ptyBackend) Init() error {
	master, slave, err := pty.Open()
	if err != nil {
		return fmt.Errorf("open pty: %w", err)
	}

	// Raw slave so CR and control bytes reach the master unchanged; the slave stays open
	// so the master does not see hangup while no client is attached
	if _, err := term.MakeRaw(int(slave.Fd())); err != nil {
		master.Close()
		slave.Close()
		return fmt.Errorf("raw pty: %w", err)
	}

	b.master = master
	b.slave = slave
	b.reader = newFDReader(int(master.Fd()))
	return nil
}

// SlavePath returns the device path clients attach to
func (b *ptyBackend) SlavePath() string {
	if b.slave == nil {
		return ""
	}
	return b.slave.Name()
}

func (b *ptyBackend) Fini() {
	b.finiOnce.Do(func() {
		if b.master == nil {
			return
		}
		// No poll or read is in flight on the master fd once stop returns
		b.reader.stop()
		b.master.Close()
		b.slave.Close()
	})
}

func (b *ptyBackend) ReadByte() (byte, error) {
	if b.reader == nil {
		return 0, ErrClosed
	}
	return b.reader.ReadByte()
}

func (b *ptyBackend) Write(p []byte) (int, error) {
	if b.master == nil {
		return 0, ErrClosed
	}
	return b.master.Write(p)
}
