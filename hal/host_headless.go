//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int
	// Snapshot, if set, receives a PNG of the simulated panel on exit.
	Snapshot string
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, opts HostOptions, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	h := newHost(opts)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return writeSnapshot(h, cfg.Snapshot, ctx.Err())
		case <-t.C:
			for i := 0; i < cfg.StepBudget && step != nil; i++ {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return writeSnapshot(h, cfg.Snapshot, nil)
			}
		}
	}
}

func writeSnapshot(h *hostHAL, path string, err error) error {
	if path == "" || h.sim == nil {
		return err
	}
	f, ferr := os.Create(path)
	if ferr != nil {
		return fmt.Errorf("snapshot: %w", ferr)
	}
	defer f.Close()
	if perr := png.Encode(f, h.sim.Logical(nil)); perr != nil {
		return fmt.Errorf("snapshot: %w", perr)
	}
	return err
}
