package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/serialcon/console"
	"github.com/lixenwraith/serialcon/terminal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "serialcon.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Console.Prompt != "$ " {
		t.Errorf("expected defaults, got prompt %q", cfg.Console.Prompt)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[device]
kind = "serial"
path = "/dev/ttyS0"
baud = 9600

[console]
prompt = "> "
backspace = "both"
charset = "cp437"
bell = "terminal"

[shutdown]
action = "poweroff"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Device.Kind != "serial" || cfg.Device.Path != "/dev/ttyS0" || cfg.Device.Baud != 9600 {
		t.Errorf("device = %+v", cfg.Device)
	}
	// Untouched keys keep defaults
	if cfg.Device.WordLength != 8 || cfg.Console.Capacity != 4096 {
		t.Errorf("defaults lost: word_length=%d capacity=%d", cfg.Device.WordLength, cfg.Console.Capacity)
	}

	if mode, _ := cfg.BackspaceMode(); mode != terminal.BackspaceBoth {
		t.Errorf("backspace mode = %d", mode)
	}
	if cs, _ := cfg.Charset(); cs != terminal.CP437 {
		t.Errorf("charset = %s", cs.Name())
	}
	if bell, _ := cfg.BellMode(); bell != console.BellTerminal {
		t.Errorf("bell mode = %d", bell)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[console]
promt = "> "
`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "promt") {
		t.Errorf("error does not name the key: %v", err)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, "[device\nkind = 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"device kind", func(c *Config) { c.Device.Kind = "modem" }},
		{"word length", func(c *Config) { c.Device.WordLength = 9 }},
		{"baud", func(c *Config) { c.Device.Baud = 0 }},
		{"tcp address", func(c *Config) { c.Device.Kind = "tcp" }},
		{"prompt", func(c *Config) { c.Console.Prompt = "" }},
		{"capacity", func(c *Config) { c.Console.Capacity = 0 }},
		{"backspace", func(c *Config) { c.Console.Backspace = "ctrl-h" }},
		{"charset", func(c *Config) { c.Console.Charset = "ebcdic" }},
		{"newline", func(c *Config) { c.Console.Newline = "cr" }},
		{"bell", func(c *Config) { c.Console.Bell = "loud" }},
		{"bell volume", func(c *Config) { c.Console.BellVolume = 101 }},
		{"shutdown", func(c *Config) { c.Shutdown.Action = "reboot" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SERIALCON_DEVICE", "pty")
	t.Setenv("SERIALCON_BAUD", "57600")
	t.Setenv("SERIALCON_DEVICE_ADDRESS", "localhost:4321")
	t.Setenv("SERIALCON_PROMPT", "# ")
	t.Setenv("SERIALCON_CHARSET", "latin1")
	t.Setenv("SERIALCON_BELL", "audio")
	t.Setenv("SERIALCON_BELL_VOLUME", "80")
	t.Setenv("SERIALCON_DEBUG", "true")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Device.Kind != "pty" || cfg.Device.Baud != 57600 || cfg.Device.Address != "localhost:4321" {
		t.Errorf("device = %+v", cfg.Device)
	}
	if cfg.Console.Prompt != "# " || cfg.Console.Charset != "latin1" || cfg.Console.Bell != "audio" {
		t.Errorf("console = %+v", cfg.Console)
	}
	if cfg.Console.BellVolume != 80 || !cfg.Log.Debug {
		t.Errorf("bell volume %d, debug %v", cfg.Console.BellVolume, cfg.Log.Debug)
	}
}

func TestApplyEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("SERIALCON_BAUD", "fast")
	t.Setenv("SERIALCON_DEBUG", "maybe")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Device.Baud != 115200 || cfg.Log.Debug {
		t.Errorf("bad values applied: baud=%d debug=%v", cfg.Device.Baud, cfg.Log.Debug)
	}
}

func TestDeviceConfig(t *testing.T) {
	cfg := Default()
	cfg.Device.Kind = "uart"
	cfg.Device.WordLength = 7
	cfg.Device.UARTDivisor = 12

	dc, err := cfg.DeviceConfig()
	if err != nil {
		t.Fatalf("DeviceConfig: %v", err)
	}
	if dc.Kind != terminal.DeviceUART || dc.UARTBase != 0x10000000 {
		t.Errorf("device config = %+v", dc)
	}
	if dc.UARTConfig.WordLength != 7 || dc.UARTConfig.Divisor != 12 || !dc.UARTConfig.FIFO {
		t.Errorf("uart config = %+v", dc.UARTConfig)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Console.Prompt = "serial> "
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := writeConfig(t, string(data))
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load encoded config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", loaded, cfg)
	}
}
