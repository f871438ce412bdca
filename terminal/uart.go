// @lixen: #focus{sys[uart,mmio]}
package terminal

import (
	"fmt"
	"sync"
	"time"
)

// Register is a 16550 register offset from the UART base address
type Register uint8

// 16550 register map, byte-wide registers at consecutive offsets
const (
	RegData Register = 0 // RBR on read, THR on write, DLL while DLAB is set
	RegIER  Register = 1 // Interrupt enable, DLM while DLAB is set
	RegFCR  Register = 2 // FIFO control (write-only)
	RegLCR  Register = 3 // Line control
	RegMCR  Register = 4 // Modem control
	RegLSR  Register = 5 // Line status

	// RegisterWindow is the number of bytes a register window must expose
	RegisterWindow = 8
)

// Register bits
const (
	lsrDataReady   byte = 1 << 0
	lsrTHREmpty    byte = 1 << 5
	lcrDLAB        byte = 1 << 7
	fcrEnable      byte = 1 << 0
	ierRxAvailable byte = 1 << 0
)

// uartPollInterval is the sleep between LSR polls when no byte is ready.
// A 16-byte FIFO at 115200 baud fills in about 1.4ms
const uartPollInterval = 200 * time.Microsecond

// RegisterIO is byte-wide access to a UART register window
type RegisterIO interface {
	Read8(reg Register) byte
	Write8(reg Register, v byte)
}

// UARTConfig holds line settings programmed during Init
type UARTConfig struct {
	WordLength int    // Data bits, 5-8
	Divisor    uint16 // Baud divisor; 0 keeps the value set by firmware
	FIFO       bool
	Interrupts bool // Receive-data-available interrupt enable
}

// DefaultUARTConfig matches the QEMU virt board console: 8 data bits, FIFO and RX interrupt on
func DefaultUARTConfig() UARTConfig {
	return UARTConfig{
		WordLength: 8,
		Divisor:    592,
		FIFO:       true,
		Interrupts: true,
	}
}

// UART is a polled 16550 driver. It is the single owner of its register window
type UART struct {
	regs    RegisterIO
	cfg     UARTConfig
	release func() error

	// Register access holds the read lock so Fini cannot unmap underneath it
	mu     sync.RWMutex
	closed bool
}

// NewUART wraps a register window. release, if non-nil, is called once on Fini
func NewUART(regs RegisterIO, cfg UARTConfig, release func() error) *UART {
	return &UART{
		regs:    regs,
		cfg:     cfg,
		release: release,
	}
}

// Init programs word length, FIFO, interrupts and the baud divisor
func (u *UART) Init() error {
	if u.cfg.WordLength < 5 || u.cfg.WordLength > 8 {
		return fmt.Errorf("uart: unsupported word length %d", u.cfg.WordLength)
	}
	lcr := byte(u.cfg.WordLength - 5)

	u.regs.Write8(RegLCR, lcr)

	if u.cfg.FIFO {
		u.regs.Write8(RegFCR, fcrEnable)
	}
	if u.cfg.Interrupts {
		u.regs.Write8(RegIER, ierRxAvailable)
	}

	if u.cfg.Divisor != 0 {
		// Divisor latch: DLL and DLM share offsets with data and IER while DLAB is set
		u.regs.Write8(RegLCR, lcr|lcrDLAB)
		u.regs.Write8(RegData, byte(u.cfg.Divisor&0xff))
		u.regs.Write8(RegIER, byte(u.cfg.Divisor>>8))
		u.regs.Write8(RegLCR, lcr)
	}
	return nil
}

// Fini stops pending reads and releases the register window
func (u *UART) Fini() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return
	}
	u.closed = true
	if u.release != nil {
		u.release()
	}
}

// Poll returns a received byte without blocking
func (u *UART) Poll() (byte, bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.closed {
		return 0, false, ErrClosed
	}
	if u.regs.Read8(RegLSR)&lsrDataReady == 0 {
		return 0, false, nil
	}
	return u.regs.Read8(RegData), true, nil
}

// ReadByte polls LSR until a byte arrives or Fini is called
func (u *UART) ReadByte() (byte, error) {
	for {
		b, ok, err := u.Poll()
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
		time.Sleep(uartPollInterval)
	}
}

// Write transmits p one byte at a time, waiting for the holding register to empty
func (u *UART) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := u.transmit(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (u *UART) transmit(b byte) error {
	for {
		u.mu.RLock()
		if u.closed {
			u.mu.RUnlock()
			return ErrClosed
		}
		if u.regs.Read8(RegLSR)&lsrTHREmpty != 0 {
			u.regs.Write8(RegData, b)
			u.mu.RUnlock()
			return nil
		}
		u.mu.RUnlock()
	}
}

// memRegisters is a bounds-checked register window over mapped device memory
type memRegisters struct {
	mem []byte
}

// NewMemRegisters wraps a byte window; it must cover RegisterWindow bytes
func NewMemRegisters(mem []byte) (RegisterIO, error) {
	if len(mem) < RegisterWindow {
		return nil, fmt.Errorf("uart: register window is %d bytes, need %d", len(mem), RegisterWindow)
	}
	return &memRegisters{mem: mem[:RegisterWindow]}, nil
}

// Read8 is kept out of line so every call performs a real load
//
//go:noinline
func (m *memRegisters) Read8(reg Register) byte {
	return m.mem[reg]
}

//go:noinline
func (m *memRegisters) Write8(reg Register, v byte) {
	m.mem[reg] = v
}
