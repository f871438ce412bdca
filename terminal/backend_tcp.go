package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// TCP timing
const (
	tcpConnectTimeout = 5 * time.Second
	tcpWriteTimeout   = 5 * time.Second
)

// tcpBackend carries the console over a raw TCP stream, as with QEMU -serial tcp or ser2net.
// In listen mode exactly one peer is accepted; later connection attempts are refused by closing the listener.
type tcpBackend struct {
	address string
	listen  bool

	listener net.Listener
	conn     net.Conn
	reader   *bufio.Reader

	closeCh   chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

func newTCPBackend(address string, listen bool) *tcpBackend {
	return &tcpBackend{
		address: address,
		listen:  listen,
		closeCh: make(chan struct{}),
	}
}

// Init connects, or listens and blocks until the first peer arrives
func (b *tcpBackend) Init() error {
	if !b.listen {
		dialer := &net.Dialer{Timeout: tcpConnectTimeout}
		conn, err := dialer.Dial("tcp", b.address)
		if err != nil {
			return fmt.Errorf("connect %s: %w", b.address, err)
		}
		b.attach(conn)
		return nil
	}

	if err := b.bind(); err != nil {
		return err
	}
	return b.accept()
}

// bind opens the listener
func (b *tcpBackend) bind() error {
	ln, err := net.Listen("tcp", b.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", b.address, err)
	}
	b.mu.Lock()
	b.listener = ln
	b.mu.Unlock()
	return nil
}

// accept takes the single peer and stops listening
func (b *tcpBackend) accept() error {
	conn, err := b.listener.Accept()
	b.listener.Close()
	if err != nil {
		select {
		case <-b.closeCh:
			return ErrClosed
		default:
		}
		return fmt.Errorf("accept on %s: %w", b.address, err)
	}
	b.attach(conn)
	return nil
}

func (b *tcpBackend) attach(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetNoDelay(true) // Echo latency matters more than segment count
	}
	b.mu.Lock()
	b.conn = conn
	b.reader = bufio.NewReaderSize(conn, 256)
	b.mu.Unlock()
}

// Addr returns the bound listener address, or the remote address once connected
func (b *tcpBackend) Addr() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return b.conn.RemoteAddr().String()
	}
	if b.listener != nil {
		return b.listener.Addr().String()
	}
	return b.address
}

func (b *tcpBackend) Fini() {
	b.closeOnce.Do(func() {
		close(b.closeCh)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.listener != nil {
			b.listener.Close()
		}
		if b.conn != nil {
			b.conn.Close()
		}
	})
}

func (b *tcpBackend) ReadByte() (byte, error) {
	if b.reader == nil {
		return 0, ErrClosed
	}
	c, err := b.reader.ReadByte()
	if err != nil {
		select {
		case <-b.closeCh:
			return 0, ErrClosed
		default:
		}
		if errors.Is(err, net.ErrClosed) {
			return 0, ErrClosed
		}
		return 0, err
	}
	return c, nil
}

func (b *tcpBackend) Write(p []byte) (int, error) {
	if b.conn == nil {
		return 0, ErrClosed
	}
	b.conn.SetWriteDeadline(time.Now().Add(tcpWriteTimeout))
	return b.conn.Write(p)
}

func (b *tcpBackend) Describe() string {
	if b.listen && b.conn == nil {
		return "tcp listening on " + b.Addr()
	}
	return "tcp " + b.Addr()
}
