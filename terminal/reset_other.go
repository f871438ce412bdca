//go:build unix && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package terminal

// resetTerminalMode is a no-op where termios ioctl numbers are not wired
func resetTerminalMode() {}
