//go:build linux

package terminal

import "fmt"

func openPlatform(cfg DeviceConfig) (Backend, error) {
	switch cfg.Kind {
	case DeviceSerial:
		if cfg.Path == "" {
			return nil, fmt.Errorf("serial: device path required")
		}
		return newSerialBackend(cfg.Path, cfg.Baud, cfg.WordLength), nil
	case DeviceUART:
		return newUARTBackend(cfg.UARTBase, cfg.UARTConfig), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, cfg.Kind)
}

func (b *serialBackend) Describe() string {
	return fmt.Sprintf("serial %s %d baud", b.path, b.baud)
}

// uartBackend maps the UART at Init so construction has no side effects
type uartBackend struct {
	base uint64
	cfg  UARTConfig
	*UART
}

func newUARTBackend(base uint64, cfg UARTConfig) *uartBackend {
	return &uartBackend{base: base, cfg: cfg}
}

func (b *uartBackend) Init() error {
	regs, release, err := mapUART(b.base)
	if err != nil {
		return err
	}
	b.UART = NewUART(regs, b.cfg, release)
	if err := b.UART.Init(); err != nil {
		b.UART.Fini()
		return err
	}
	return nil
}

func (b *uartBackend) Fini() {
	if b.UART != nil {
		b.UART.Fini()
	}
}

func (b *uartBackend) ReadByte() (byte, error) {
	if b.UART == nil {
		return 0, ErrClosed
	}
	return b.UART.ReadByte()
}

func (b *uartBackend) Write(p []byte) (int, error) {
	if b.UART == nil {
		return 0, ErrClosed
	}
	return b.UART.Write(p)
}

func (b *uartBackend) Describe() string {
	return fmt.Sprintf("uart 0x%x", b.base)
}
