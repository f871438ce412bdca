package config

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/serialcon/console"
	"github.com/lixenwraith/serialcon/terminal"
)

// Validate checks every enumerated and ranged field
func (c *Config) Validate() error {
	if _, err := terminal.ParseDeviceKind(c.Device.Kind); err != nil {
		return fmt.Errorf("%w: device.kind: %v", ErrInvalid, err)
	}
	if c.Device.WordLength < 5 || c.Device.WordLength > 8 {
		return fmt.Errorf("%w: device.word_length %d not in 5-8", ErrInvalid, c.Device.WordLength)
	}
	if kind, _ := terminal.ParseDeviceKind(c.Device.Kind); kind == terminal.DeviceTCP && c.Device.Address == "" {
		return fmt.Errorf("%w: device.address required for tcp", ErrInvalid)
	}
	if c.Device.Baud <= 0 {
		return fmt.Errorf("%w: device.baud %d", ErrInvalid, c.Device.Baud)
	}
	if c.Console.Prompt == "" {
		return fmt.Errorf("%w: console.prompt is empty", ErrInvalid)
	}
	if c.Console.Capacity <= 0 {
		return fmt.Errorf("%w: console.capacity %d", ErrInvalid, c.Console.Capacity)
	}
	if c.Console.BellVolume < 0 || c.Console.BellVolume > 100 {
		return fmt.Errorf("%w: console.bell_volume %d not in 0-100", ErrInvalid, c.Console.BellVolume)
	}
	if _, err := c.BackspaceMode(); err != nil {
		return err
	}
	if _, err := c.Charset(); err != nil {
		return err
	}
	if _, err := c.NewlineMode(); err != nil {
		return err
	}
	if _, err := c.BellMode(); err != nil {
		return err
	}
	switch c.Shutdown.Action {
	case "exit", "poweroff":
	default:
		return fmt.Errorf("%w: shutdown.action %q", ErrInvalid, c.Shutdown.Action)
	}
	return nil
}

// DeviceConfig converts the [device] section for terminal.Open
func (c *Config) DeviceConfig() (terminal.DeviceConfig, error) {
	kind, err := terminal.ParseDeviceKind(c.Device.Kind)
	if err != nil {
		return terminal.DeviceConfig{}, fmt.Errorf("%w: device.kind: %v", ErrInvalid, err)
	}

	uart := terminal.DefaultUARTConfig()
	uart.WordLength = c.Device.WordLength
	uart.Divisor = c.Device.UARTDivisor

	return terminal.DeviceConfig{
		Kind:       kind,
		Path:       c.Device.Path,
		Baud:       c.Device.Baud,
		WordLength: c.Device.WordLength,
		UARTBase:   c.Device.UARTBase,
		UARTConfig: uart,
		Address:    c.Device.Address,
		Listen:     c.Device.Listen,
	}, nil
}

// BackspaceMode maps console.backspace
func (c *Config) BackspaceMode() (terminal.BackspaceMode, error) {
	switch strings.ToLower(c.Console.Backspace) {
	case "del", "":
		return terminal.BackspaceDEL, nil
	case "both":
		return terminal.BackspaceBoth, nil
	}
	return 0, fmt.Errorf("%w: console.backspace %q", ErrInvalid, c.Console.Backspace)
}

// Charset maps console.charset
func (c *Config) Charset() (*terminal.Charset, error) {
	cs, err := terminal.LookupCharset(c.Console.Charset)
	if err != nil {
		return nil, fmt.Errorf("%w: console.charset: %v", ErrInvalid, err)
	}
	return cs, nil
}

// NewlineMode maps console.newline
func (c *Config) NewlineMode() (terminal.NewlineMode, error) {
	switch strings.ToLower(c.Console.Newline) {
	case "crlf", "":
		return terminal.NewlineCRLF, nil
	case "lf":
		return terminal.NewlineLF, nil
	}
	return 0, fmt.Errorf("%w: console.newline %q", ErrInvalid, c.Console.Newline)
}

// BellMode maps console.bell
func (c *Config) BellMode() (console.BellMode, error) {
	switch strings.ToLower(c.Console.Bell) {
	case "none", "":
		return console.BellNone, nil
	case "terminal":
		return console.BellTerminal, nil
	case "audio":
		return console.BellAudio, nil
	}
	return 0, fmt.Errorf("%w: console.bell %q", ErrInvalid, c.Console.Bell)
}
