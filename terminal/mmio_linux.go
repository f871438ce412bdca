//go:build linux

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// devMemPath is the physical memory device used to reach the UART
const devMemPath = "/dev/mem"

// mapUART maps the register window at a physical base address.
// This is the only place raw device memory is acquired; the returned release unmaps it
func mapUART(base uint64) (RegisterIO, func() error, error) {
	f, err := os.OpenFile(devMemPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("uart: open %s: %w", devMemPath, err)
	}
	// The mapping outlives the descriptor
	defer f.Close()

	page := uint64(os.Getpagesize())
	aligned := base &^ (page - 1)
	offset := base - aligned
	length := page
	if offset+RegisterWindow > page {
		length *= 2
	}

	mem, err := unix.Mmap(int(f.Fd()), int64(aligned), int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("uart: map 0x%x: %w", base, err)
	}

	regs, err := NewMemRegisters(mem[offset:])
	if err != nil {
		unix.Munmap(mem)
		return nil, nil, err
	}
	return regs, func() error { return unix.Munmap(mem) }, nil
}
