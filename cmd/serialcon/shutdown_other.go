//go:build !linux

package main

import "github.com/lixenwraith/serialcon/terminal"

func powerOff() error {
	return terminal.ErrUnsupported
}
