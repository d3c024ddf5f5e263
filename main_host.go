//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dial/app"
	"dial/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var (
		configPath string
		lowPower   bool
		debugTime  bool
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "dial.yaml", "Optional YAML config file.")
	flag.BoolVar(&lowPower, "low-power", false, "Hide the second hand and tick once a minute.")
	flag.BoolVar(&debugTime, "debug-time", false, "Freeze the face at 6:15:20.")
	flag.DurationVar(&cfg.Host.LinkFlap, "link-flap", 0, "Drop the phone link for this long every other period (0 = steady).")
	flag.IntVar(&cfg.Host.Size, "size", 180, "Display side in pixels.")
	flag.Parse()

	appCfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "low-power":
			appCfg.LowPower = lowPower
		case "debug-time":
			appCfg.DebugTime = debugTime
		}
	})

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, cfg.Host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
