//go:build linux

package terminal

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// baudRates maps numeric rates to termios speed constants
var baudRates = map[int]uint32{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// wordLengths maps data bits to termios character size flags
var wordLengths = map[int]uint32{
	5: unix.CS5,
	6: unix.CS6,
	7: unix.CS7,
	8: unix.CS8,
}

// serialBackend is a serial line configured through termios: raw, no parity, one stop bit
type serialBackend struct {
	path       string
	baud       int
	wordLength int

	fd      int
	oldTerm *unix.Termios
	reader  *fdReader

	finiOnce sync.Once
}

func newSerialBackend(path string, baud, wordLength int) *serialBackend {
	return &serialBackend{
		path:       path,
		baud:       baud,
		wordLength: wordLength,
		fd:         -1,
	}
}

func (b *serialBackend) Init() error {
	speed, ok := baudRates[b.baud]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedBaud, b.baud)
	}
	size, ok := wordLengths[b.wordLength]
	if !ok {
		return fmt.Errorf("serial: unsupported word length %d", b.wordLength)
	}

	fd, err := unix.Open(b.path, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.path, err)
	}

	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("%w: %s: %v", ErrNotTerminal, b.path, err)
	}

	raw := *old
	applySerialMode(&raw, speed, size)
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		unix.Close(fd)
		return fmt.Errorf("configure %s: %w", b.path, err)
	}

	b.fd = fd
	b.oldTerm = old
	b.reader = newFDReader(fd)
	return nil
}

// applySerialMode turns t into a raw 8N1-style line at the given speed and character size
func applySerialMode(t *unix.Termios, speed, size uint32) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CBAUD
	t.Cflag |= size | unix.CREAD | unix.CLOCAL | speed
	t.Ispeed = speed
	t.Ospeed = speed
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}

func (b *serialBackend) Fini() {
	b.finiOnce.Do(func() {
		if b.fd < 0 {
			return
		}
		b.reader.stop()
		if b.oldTerm != nil {
			unix.IoctlSetTermios(b.fd, unix.TCSETS, b.oldTerm)
		}
		unix.Close(b.fd)
	})
}

func (b *serialBackend) ReadByte() (byte, error) {
	if b.reader == nil {
		return 0, ErrClosed
	}
	return b.reader.ReadByte()
}

func (b *serialBackend) Write(p []byte) (int, error) {
	if b.fd < 0 {
		return 0, ErrClosed
	}
	written := 0
	for written < len(p) {
		n, err := unix.Write(b.fd, p[written:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return written, err
		}
		written += n
	}
	return written, nil
}
