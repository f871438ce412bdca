//go:build unix

package terminal

import (
	"sync"

	"golang.org/x/sys/unix"
)

// pollTimeoutMs bounds each poll so a closed stop channel is noticed promptly
const pollTimeoutMs = 100

// fdReader serves single bytes from a file descriptor, polling so Fini can interrupt a blocked read.
// Each poll and read runs under mu; once stop returns the owner may close the fd.
type fdReader struct {
	fd      int
	buf     [256]byte
	pending []byte

	mu       sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newFDReader(fd int) *fdReader {
	return &fdReader{
		fd:     fd,
		stopCh: make(chan struct{}),
	}
}

// stop makes the current and all further reads return ErrClosed.
// It waits out an in-flight poll or read, at most one poll timeout, so the fd number
// cannot be reused underneath it.
func (r *fdReader) stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.mu.Lock()
	r.mu.Unlock()
}

// ReadByte returns the next buffered byte, refilling from the fd when empty
func (r *fdReader) ReadByte() (byte, error) {
	if len(r.pending) == 0 {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	b := r.pending[0]
	r.pending = r.pending[1:]
	return b, nil
}

// fill polls until data, hangup or stop
func (r *fdReader) fill() error {
	for {
		n, err := r.readOnce()
		if err != nil {
			return err
		}
		if n > 0 {
			r.pending = r.buf[:n]
			return nil
		}
	}
}

// readOnce is one bounded poll and read. 0 with a nil error means try again
func (r *fdReader) readOnce() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.stopCh:
		return 0, ErrClosed
	default:
	}

	fds := []unix.PollFd{
		{Fd: int32(r.fd), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, pollTimeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}

	if n == 0 {
		return 0, nil // Timeout
	}

	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return 0, ErrClosed
	}

	rn, err := unix.Read(r.fd, r.buf[:])
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, nil
		}
		return 0, err
	}

	if rn == 0 {
		// EOF
		return 0, ErrClosed
	}
	return rn, nil
}
