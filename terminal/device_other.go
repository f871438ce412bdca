//go:build unix && !linux

package terminal

import "fmt"

func openPlatform(cfg DeviceConfig) (Backend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, cfg.Kind)
}
