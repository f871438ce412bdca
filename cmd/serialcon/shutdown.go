package main

import (
	"log"

	"github.com/lixenwraith/serialcon/console"
	"github.com/lixenwraith/serialcon/terminal"
)

// newShutdowner maps shutdown.action to a collaborator.
// exit returns control to main, which restores the device through its deferred Fini
func newShutdowner(action string, dev terminal.Backend) console.Shutdowner {
	if action == "poweroff" {
		return console.ShutdownFunc(func() {
			dev.Fini()
			if err := powerOff(); err != nil {
				log.Printf("[MAIN] poweroff failed: %v, exiting instead", err)
			}
		})
	}
	return console.ShutdownFunc(func() {
		log.Printf("[MAIN] shutdown requested, exiting")
	})
}
