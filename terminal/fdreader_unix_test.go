//go:build unix

package terminal

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func newPipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	return p[0], p[1]
}

func TestFDReader_ReadsBytes(t *testing.T) {
	rfd, wfd := newPipe(t)
	defer unix.Close(rfd)
	defer unix.Close(wfd)

	reader := newFDReader(rfd)
	defer reader.stop()

	unix.Write(wfd, []byte("ok"))
	for _, want := range []byte("ok") {
		b, err := reader.ReadByte()
		if err != nil || b != want {
			t.Fatalf("ReadByte = %q, %v; want %q", b, err, want)
		}
	}
}

func TestFDReader_StopBeforeFDReuse(t *testing.T) {
	rfd, wfd := newPipe(t)
	reader := newFDReader(rfd)

	errCh := make(chan error, 1)
	go func() {
		_, err := reader.ReadByte()
		errCh <- err
	}()
	time.Sleep(20 * time.Millisecond) // Let the reader block in poll

	reader.stop()
	unix.Close(rfd)
	unix.Close(wfd)

	// The freed descriptor numbers are handed to a new pipe with data waiting
	nr, nw := newPipe(t)
	defer unix.Close(nr)
	defer unix.Close(nw)
	if _, err := unix.Write(nw, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("ReadByte after stop = %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("stop did not unblock the reader")
	}

	if _, err := reader.ReadByte(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadByte on stopped reader = %v", err)
	}

	buf := make([]byte, 1)
	if n, err := unix.Read(nr, buf); n != 1 || err != nil || buf[0] != 'x' {
		t.Errorf("new pipe lost its byte: n=%d err=%v", n, err)
	}
}
