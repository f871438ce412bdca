package config

import (
	"os"
	"strconv"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "SERIALCON_"

// ApplyEnv overrides fields from SERIALCON_ variables. Unparseable numbers are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPrefix + "DEVICE"); v != "" {
		c.Device.Kind = v
	}
	if v := os.Getenv(EnvPrefix + "DEVICE_PATH"); v != "" {
		c.Device.Path = v
	}
	if v := os.Getenv(EnvPrefix + "DEVICE_ADDRESS"); v != "" {
		c.Device.Address = v
	}
	if v := os.Getenv(EnvPrefix + "BAUD"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			c.Device.Baud = val
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PROMPT"); ok {
		c.Console.Prompt = v
	}
	if v := os.Getenv(EnvPrefix + "CHARSET"); v != "" {
		c.Console.Charset = v
	}
	if v := os.Getenv(EnvPrefix + "BELL"); v != "" {
		c.Console.Bell = v
	}

	// 0-100
	if v := os.Getenv(EnvPrefix + "BELL_VOLUME"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			c.Console.BellVolume = val
		}
	}
	if v := os.Getenv(EnvPrefix + "DEBUG"); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			c.Log.Debug = val
		}
	}
}
