//go:build unix

package terminal

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// stdioBackend reads stdin and writes stdout; raw mode applies only when stdin is a terminal
type stdioBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	oldTerm *term.State
	reader  *fdReader

	finiOnce sync.Once
}

func newStdioBackend() *stdioBackend {
	return &stdioBackend{
		in:     os.Stdin,
		out:    os.Stdout,
		inFd:   int(os.Stdin.Fd()),
		reader: newFDReader(int(os.Stdin.Fd())),
	}
}

func (b *stdioBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		// Piped input, nothing to configure
		return nil
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old
	return nil
}

func (b *stdioBackend) Fini() {
	b.finiOnce.Do(func() {
		b.reader.stop()
		if b.oldTerm != nil {
			term.Restore(b.inFd, b.oldTerm)
		}
	})
}

func (b *stdioBackend) ReadByte() (byte, error) {
	return b.reader.ReadByte()
}

func (b *stdioBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}
