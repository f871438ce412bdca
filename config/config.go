// Package config loads serialcon settings from a TOML file and SERIALCON_ environment variables
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/serialcon/terminal"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// Config is the root of the TOML document
type Config struct {
	Device   DeviceConfig   `toml:"device"`
	Console  ConsoleConfig  `toml:"console"`
	Shutdown ShutdownConfig `toml:"shutdown"`
	Log      LogConfig      `toml:"log"`
}

// DeviceConfig selects the byte transport
type DeviceConfig struct {
	Kind        string `toml:"kind"` // stdio, tty, serial, pty, uart, tcp
	Path        string `toml:"path"`
	Baud        int    `toml:"baud"`
	WordLength  int    `toml:"word_length"`
	UARTBase    uint64 `toml:"uart_base"`
	UARTDivisor uint16 `toml:"uart_divisor"`
	Address     string `toml:"address"`
	Listen      bool   `toml:"listen"`
}

// ConsoleConfig shapes the line editor and its rendering
type ConsoleConfig struct {
	Prompt     string `toml:"prompt"`
	Banner     string `toml:"banner"`
	Capacity   int    `toml:"capacity"`
	Backspace  string `toml:"backspace"` // del, both
	Charset    string `toml:"charset"`   // utf-8, latin1, cp437
	Newline    string `toml:"newline"`   // crlf, lf
	Bell       string `toml:"bell"`      // none, terminal, audio
	BellVolume int    `toml:"bell_volume"`
}

// ShutdownConfig selects what Ctrl-C and Ctrl-D do
type ShutdownConfig struct {
	Action string `toml:"action"` // exit, poweroff
}

// LogConfig controls the debug log file
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Kind:        string(terminal.DeviceStdio),
			Baud:        115200,
			WordLength:  8,
			UARTBase:    0x10000000,
			UARTDivisor: 592,
		},
		Console: ConsoleConfig{
			Prompt:     "$ ",
			Banner:     "Press Ctrl-C or Ctrl-D to shutdown.",
			Capacity:   4096,
			Backspace:  "del",
			Charset:    "utf-8",
			Newline:    "crlf",
			Bell:       "none",
			BellVolume: 50,
		},
		Shutdown: ShutdownConfig{
			Action: "exit",
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// decode merges TOML data into cfg, rejecting keys the schema does not know
func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalid, strings.TrimSpace(strict.String()))
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

// Encode renders the configuration as TOML
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
