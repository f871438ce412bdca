// @lixen: #focus{sys[audio]}
package bell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"
)

// Engine plays a pre-rendered bell through a CLI audio player, one process per ring
type Engine struct {
	config  Config
	backend *BackendConfig
	pcm     []byte

	running  atomic.Bool
	lastRing atomic.Int64 // UnixNano of the last accepted ring
	played   atomic.Uint64
	dropped  atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine renders the bell tone; nothing is played until Start
func NewEngine(cfg Config) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.Channels != 2 {
		cfg.Channels = 1
	}
	if cfg.Volume > 1 {
		cfg.Volume = 1
	}
	return &Engine{
		config: cfg,
		pcm:    renderPCM(newTone(cfg), cfg.Channels),
	}
}

// Start detects the audio backend. On ErrNoAudioBackend the engine stays silent and Ring is a no-op
func (e *Engine) Start() error {
	if e.running.Load() {
		return fmt.Errorf("bell: engine already running")
	}

	backend, err := DetectBackend(e.config)
	if err != nil {
		return err
	}

	e.backend = backend
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.running.Store(true)
	return nil
}

// Backend returns the detected player, nil before a successful Start
func (e *Engine) Backend() *BackendConfig {
	return e.backend
}

// Ring plays the bell asynchronously. Rings within MinInterval of the previous one are dropped
func (e *Engine) Ring() {
	if !e.running.Load() {
		return
	}

	now := time.Now().UnixNano()
	last := e.lastRing.Load()
	if now-last < int64(e.config.MinInterval) || !e.lastRing.CompareAndSwap(last, now) {
		e.dropped.Add(1)
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.play(); err == nil {
			e.played.Add(1)
		}
	}()
}

func (e *Engine) play() error {
	cmd := exec.CommandContext(e.ctx, e.backend.Path, e.backend.Args...)
	cmd.Stdin = bytes.NewReader(e.pcm)
	return cmd.Run()
}

// Stop kills in-flight players and waits for them to exit
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.cancel()
	e.wg.Wait()
}

// Wait blocks until every in-flight ring has finished playing
func (e *Engine) Wait() {
	e.wg.Wait()
}

// IsRunning reports whether a backend was found and Stop has not been called
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// GetStats returns played and dropped counts
func (e *Engine) GetStats() (played, dropped uint64) {
	return e.played.Load(), e.dropped.Load()
}
