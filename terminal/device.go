//go:build unix

package terminal

import (
	"fmt"
	"strings"
)

// DeviceKind names a Backend implementation
type DeviceKind string

const (
	DeviceStdio  DeviceKind = "stdio"
	DeviceTTY    DeviceKind = "tty"
	DeviceSerial DeviceKind = "serial"
	DevicePTY    DeviceKind = "pty"
	DeviceUART   DeviceKind = "uart"
	DeviceTCP    DeviceKind = "tcp"
)

// DeviceConfig selects and parameterizes a Backend
type DeviceConfig struct {
	Kind       DeviceKind
	Path       string // tty and serial device path
	Baud       int    // serial
	WordLength int    // serial and uart
	UARTBase   uint64 // uart physical base address
	UARTConfig UARTConfig
	Address    string // tcp host:port
	Listen     bool   // tcp: accept one peer instead of connecting
}

// ParseDeviceKind validates a config string
func ParseDeviceKind(s string) (DeviceKind, error) {
	switch k := DeviceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case DeviceStdio, DeviceTTY, DeviceSerial, DevicePTY, DeviceUART, DeviceTCP:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDevice, s)
}

// Open constructs the backend for cfg. The returned backend is not yet initialized
func Open(cfg DeviceConfig) (Backend, error) {
	switch cfg.Kind {
	case DeviceStdio, "":
		return newStdioBackend(), nil
	case DeviceTTY:
		return newTTYBackend(cfg.Path), nil
	case DevicePTY:
		return newPTYBackend(), nil
	case DeviceTCP:
		if cfg.Address == "" {
			return nil, fmt.Errorf("tcp: address required")
		}
		return newTCPBackend(cfg.Address, cfg.Listen), nil
	case DeviceSerial, DeviceUART:
		return openPlatform(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, cfg.Kind)
}

// Describer is implemented by backends that have a user-facing attach point
type Describer interface {
	Describe() string
}

func (b *ptyBackend) Describe() string {
	return "pty " + b.SlavePath()
}

func (b *ttyBackend) Describe() string {
	return "tty " + b.path
}

func (b *stdioBackend) Describe() string {
	return "stdio"
}
