//go:build linux

package terminal

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
)

func TestPTYBackend_RoundTrip(t *testing.T) {
	b := newPTYBackend()
	if err := b.Init(); err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer b.Fini()

	client, err := os.OpenFile(b.SlavePath(), os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open slave: %v", err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("a\r")); err != nil {
		t.Fatalf("client write: %v", err)
	}
	d := NewDecoder(b)
	for _, want := range []Event{Character('a'), Character('\n')} {
		ev, err := d.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if ev != want {
			t.Errorf("got %v, want %v", ev, want)
		}
	}

	if _, err := b.Write([]byte("ok")); err != nil {
		t.Fatalf("backend write: %v", err)
	}
	buf := make([]byte, 2)
	if _, err := io.ReadFull(client, buf); err != nil {
		t.Fatalf("client read: %v", err)
	}
	if string(buf) != "ok" {
		t.Errorf("client read %q", buf)
	}
}

func TestPTYBackend_FiniUnblocksRead(t *testing.T) {
	b := newPTYBackend()
	if err := b.Init(); err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := b.ReadByte()
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	b.Fini()

	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ReadByte did not return after Fini")
	}
}

func TestSerialBackend_OnPTY(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()
	defer slave.Close()

	b := newSerialBackend(slave.Name(), 115200, 8)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer b.Fini()

	if _, err := master.Write([]byte{0x7f}); err != nil {
		t.Fatalf("master write: %v", err)
	}
	ev, err := NewDecoder(b).Next()
	if err != nil || ev != Backspace {
		t.Errorf("got %v, %v", ev, err)
	}

	if _, err := b.Write([]byte("\r\n")); err != nil {
		t.Fatalf("serial write: %v", err)
	}
	buf := make([]byte, 2)
	if _, err := io.ReadFull(master, buf); err != nil {
		t.Fatalf("master read: %v", err)
	}
	if string(buf) != "\r\n" {
		t.Errorf("output translated: %q", buf)
	}
}

func TestSerialBackend_RejectsBaud(t *testing.T) {
	b := newSerialBackend("/dev/null", 12345, 8)
	if err := b.Init(); !errors.Is(err, ErrUnsupportedBaud) {
		t.Errorf("expected ErrUnsupportedBaud, got %v", err)
	}
}

func TestOpen_DeviceKinds(t *testing.T) {
	if _, err := ParseDeviceKind("Serial"); err != nil {
		t.Errorf("ParseDeviceKind: %v", err)
	}
	if _, err := ParseDeviceKind("modem"); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("expected ErrUnknownDevice, got %v", err)
	}
	if _, err := Open(DeviceConfig{Kind: DeviceSerial}); err == nil {
		t.Error("serial without path should fail")
	}
	if _, err := Open(DeviceConfig{Kind: DevicePTY}); err != nil {
		t.Errorf("Open pty: %v", err)
	}
}
