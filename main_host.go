//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"hxpanel/app"
	"hxpanel/hal"

	"periph.io/x/host/v3"
)

func main() {
	var hcfg hal.HeadlessConfig
	var cfgPath, bus string
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&hcfg.Snapshot, "snapshot", "", "Write the final panel image to this PNG (headless, sim bus).")
	flag.StringVar(&cfgPath, "config", "", "TOML config file (default: built-in demo).")
	flag.StringVar(&bus, "bus", "sim", "Panel bus: sim|periph.")
	flag.Parse()

	cfg := app.DefaultConfig()
	if cfgPath != "" {
		var err error
		if cfg, err = app.LoadConfig(cfgPath); err != nil {
			fatal(err)
		}
	}

	opts := hal.HostOptions{Mapper: cfg.Touch}
	switch bus {
	case "sim":
	case "periph":
		if _, err := host.Init(); err != nil {
			fatal(fmt.Errorf("periph: %w", err))
		}
		b, err := hal.NewPeriphBus(cfg.Pins)
		if err != nil {
			fatal(err)
		}
		opts.Bus = b
		hcfg.Enabled = true
	default:
		fatal(fmt.Errorf("unknown bus %q", bus))
	}

	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, cfg) }
	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, opts, newApp, hcfg); err != nil {
			if err == context.Canceled {
				return
			}
			fatal(err)
		}
		return
	}
	if err := hal.RunWindow(opts, newApp); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
