//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"effects/app"
	"effects/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var view string
	acfg := app.DefaultConfig()
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Uint64Var(&cfg.StatsEvery, "stats-every", 0, "Log graphics stats every N ticks in headless mode.")
	flag.StringVar(&view, "view", acfg.View.String(), "Initial view: fractal, particles or rubber.")
	flag.Int64Var(&acfg.Seed, "seed", acfg.Seed, "Seed for the animated views.")
	flag.DurationVar(&acfg.MaxStep, "max-step", acfg.MaxStep, "Clamp for one particle step (0 = unclamped).")
	flag.BoolVar(&cfg.NoShaders, "no-shaders", false, "Report the surface as unable to compile shaders.")
	flag.IntVar(&cfg.Width, "width", 640, "Surface width in pixels.")
	flag.IntVar(&cfg.Height, "height", 480, "Surface height in pixels.")
	flag.Parse()

	id, err := app.ParseView(view)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	acfg.View = id

	newApp := func(h hal.HAL) (hal.App, error) {
		a, err := app.New(h, acfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{Surface: cfg.Surface}, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
