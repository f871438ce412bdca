//go:build linux

package main

import "golang.org/x/sys/unix"

// powerOff flushes filesystems and halts the machine; it needs CAP_SYS_BOOT
func powerOff() error {
	unix.Sync()
	return unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF)
}
