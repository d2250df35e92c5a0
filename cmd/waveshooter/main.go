package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/waveshooter/internal/config"
	"github.com/zeusync/waveshooter/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	maxTicks := flag.Uint64("max-ticks", 0, "stop after this many ticks (overrides the config when set)")
	headless := flag.Bool("headless", false, "run ticks as fast as possible instead of in real time")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(2)
	}
	if *maxTicks > 0 {
		cfg.Tick.MaxTicks = *maxTicks
	}
	if *headless {
		cfg.Tick.Realtime = false
	}

	a, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building app:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := a.Run(ctx)
	_ = a.Session().Log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running game:", err)
		os.Exit(1)
	}
	fmt.Printf("finished after %d ticks (quit=%t, last state %s)\n", res.Ticks, res.Quit, res.LastState)
}
