package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/serialcon/bell"
	"github.com/lixenwraith/serialcon/config"
	"github.com/lixenwraith/serialcon/console"
	"github.com/lixenwraith/serialcon/terminal"
)

var (
	configFlag = flag.String("config", "serialcon.toml", "Path to TOML configuration file")
	deviceFlag = flag.String("device", "", "Device kind: stdio, tty, serial, pty, uart, tcp")
	pathFlag   = flag.String("path", "", "Device path for tty and serial")
	addrFlag   = flag.String("address", "", "host:port for the tcp device")
	listenFlag = flag.Bool("listen", false, "tcp: wait for one peer instead of connecting")
	baudFlag   = flag.Int("baud", 0, "Serial baud rate")
	debugFlag  = flag.Bool("debug", false, "Write debug log to the log directory")
	dumpFlag   = flag.Bool("dump-config", false, "Print the effective configuration as TOML and exit")
)

// crashExit resets the terminal, reports a panic and exits; tests replace it
var crashExit = func(r any, stack []byte) {
	terminal.EmergencyReset(os.Stdout)

	// Use \r\n in case the tty is still raw
	fmt.Fprintf(os.Stderr, "\r\nSERIALCON CRASHED: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Exit(1)
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if setup crashes
	defer func() {
		if r := recover(); r != nil {
			crashExit(r, debug.Stack())
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "serialcon: %v\n", err)
		os.Exit(2)
	}

	if *dumpFlag {
		data, err := cfg.Encode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "serialcon: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	logFile := setupLogging(cfg.Log.Dir, cfg.Log.Debug)

	err = run(cfg)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "serialcon: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers file, environment and flags, in increasing precedence
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if *deviceFlag != "" {
		cfg.Device.Kind = *deviceFlag
	}
	if *pathFlag != "" {
		cfg.Device.Path = *pathFlag
	}
	if *addrFlag != "" {
		cfg.Device.Address = *addrFlag
	}
	if *listenFlag {
		cfg.Device.Listen = true
	}
	if *baudFlag != 0 {
		cfg.Device.Baud = *baudFlag
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	devCfg, err := cfg.DeviceConfig()
	if err != nil {
		return err
	}
	dev, err := terminal.Open(devCfg)
	if err != nil {
		return err
	}
	if devCfg.Kind == terminal.DeviceTCP && devCfg.Listen {
		fmt.Fprintf(os.Stderr, "serialcon: waiting for a peer on %s\n", devCfg.Address)
	}
	if err := dev.Init(); err != nil {
		return fmt.Errorf("init %s device: %w", devCfg.Kind, err)
	}
	// Normal exit device cleanup
	defer dev.Fini()

	if d, ok := dev.(terminal.Describer); ok {
		log.Printf("[MAIN] attached to %s", d.Describe())
		if devCfg.Kind == terminal.DevicePTY || devCfg.Kind == terminal.DeviceTCP {
			// The console is not on stdio, so stderr is free for the attach point
			fmt.Fprintf(os.Stderr, "serialcon: console on %s\n", d.Describe())
		}
	}

	cons, closeBell, err := newConsole(cfg, dev)
	if err != nil {
		return err
	}
	defer closeBell()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return runGuarded(dev, cons.Run)
	})

	// Closing the device is the only way to unblock a pending read
	g.Go(func() error {
		select {
		case <-gctx.Done():
			if ctx.Err() != nil {
				log.Printf("[MAIN] signal received, closing device")
			}
			dev.Fini()
		case <-done:
		}
		return nil
	})

	err = g.Wait()
	switch {
	case err == nil:
		log.Printf("[MAIN] console shut down")
		return nil
	case errors.Is(err, terminal.ErrClosed), errors.Is(err, io.EOF):
		log.Printf("[MAIN] device closed: %v", err)
		return nil
	}
	return err
}

// runGuarded runs fn on a console goroutine. A panic there is out of reach of main's
// recover, so the device is restored here before exiting
func runGuarded(dev terminal.Backend, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			dev.Fini()
			crashExit(r, debug.Stack())
		}
	}()
	return fn()
}

// newConsole wires decoder, output, bell and collaborators around dev
func newConsole(cfg *config.Config, dev terminal.Backend) (*console.Console, func(), error) {
	backspace, err := cfg.BackspaceMode()
	if err != nil {
		return nil, nil, err
	}
	charset, err := cfg.Charset()
	if err != nil {
		return nil, nil, err
	}
	newline, err := cfg.NewlineMode()
	if err != nil {
		return nil, nil, err
	}
	bellMode, err := cfg.BellMode()
	if err != nil {
		return nil, nil, err
	}

	decoder := terminal.NewDecoder(dev,
		terminal.WithBackspace(backspace),
		terminal.WithCharset(charset),
	)
	output := terminal.NewOutput(dev,
		terminal.WithOutputCharset(charset),
		terminal.WithNewline(newline),
	)

	closeBell := func() {}
	var ringer console.Ringer
	if bellMode == console.BellAudio {
		bellCfg := bell.DefaultConfig()
		bellCfg.Volume = float64(cfg.Console.BellVolume) / 100.0
		engine := bell.NewEngine(bellCfg)
		if err := engine.Start(); err != nil {
			log.Printf("[BELL] %v (continuing without audio)", err)
		} else {
			log.Printf("[BELL] using %s", engine.Backend().Name)
			ringer = engine
			closeBell = engine.Stop
		}
	}

	logger := log.Default()
	cons := console.New(decoder, output, console.Options{
		Prompt:   cfg.Console.Prompt,
		Banner:   cfg.Console.Banner,
		Capacity: cfg.Console.Capacity,
		Handler:  console.HandlerFunc(logLine),
		Shutdown: newShutdowner(cfg.Shutdown.Action, dev),
		Bell:     bellMode,
		Ringer:   ringer,
		Logger:   logger,
	})
	return cons, closeBell, nil
}

// logLine is the default command handler; commands are not interpreted
func logLine(line string) {
	log.Printf("[CMD] %q", line)
}
