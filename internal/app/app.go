// Package app wires the configured collaborators into a session and drives
// the state machine with fixed-delta ticks.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/waveshooter/internal/bridge"
	"github.com/zeusync/waveshooter/internal/config"
	"github.com/zeusync/waveshooter/internal/core/assets"
	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/input"
	"github.com/zeusync/waveshooter/internal/core/level"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
	"github.com/zeusync/waveshooter/internal/core/state"
	"github.com/zeusync/waveshooter/internal/core/system"
)

type App struct {
	cfg    config.Config
	logger log.Log
	bus    bus.EventBus
	bridge *bridge.Bridge
	// levels is the loaded campaign; a run plays a clone of it in pending.
	levels  *level.Queue
	pending *level.Queue
	script  *input.Script
	session *state.Session
	machine *state.Machine
}

// Result summarises a finished run.
type Result struct {
	Ticks     uint64
	Quit      bool
	LastState string
}

func New(cfg config.Config, logger log.Log, b bus.EventBus) (*App, error) {
	levels, err := loadLevels(cfg.Assets.Levels)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cfg.Assets.Prefabs)
	if err != nil {
		return nil, err
	}
	script, err := loadScript(cfg.Input.Script)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: logger.Named("app"), bus: b, levels: levels, script: script}

	if cfg.Bridge.Enabled {
		br, err := bridge.New(bridge.Config{
			Addr:         cfg.Bridge.Addr,
			QueueSize:    cfg.Bridge.QueueSize,
			WriteTimeout: cfg.Bridge.WriteTimeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := br.Attach(b); err != nil {
			return nil, err
		}
		a.bridge = br
	}

	loader := assets.NewStaticLoader(assets.DefaultHandles(), catalog)
	session, err := state.NewSession(state.SessionConfig{
		ScreenWidth:  cfg.Screen.Width,
		ScreenHeight: cfg.Screen.Height,
		Delta:        cfg.Tick.Delta,
		FadeRate:     cfg.Fade.Rate,
		Dispatch: system.Options{
			Parallel: cfg.Scheduler.Parallel,
			Workers:  cfg.Scheduler.Workers,
		},
	}, logger, b, loader)
	if err != nil {
		return nil, err
	}
	a.session = session
	a.machine = state.NewMachine(session)
	return a, nil
}

func (a *App) Session() *state.Session { return a.session }
func (a *App) Machine() *state.Machine { return a.machine }

// Run plays until the machine quits, the tick limit is reached or ctx is
// cancelled. The bridge, when enabled, runs alongside and stops with it.
func (a *App) Run(ctx context.Context) (Result, error) {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	if a.bridge != nil {
		g.Go(func() error { return a.bridge.Run(gctx) })
	}

	var res Result
	g.Go(func() error {
		defer stop()
		var err error
		res, err = a.loop(gctx)
		return err
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		err = nil
	}
	return res, err
}

func (a *App) loop(ctx context.Context) (Result, error) {
	a.pending = a.levels.Clone()
	if err := a.machine.Start(ctx, state.NewGameplayState(a.pending)); err != nil {
		return Result{}, fmt.Errorf("start: %w", err)
	}

	var pace <-chan time.Time
	if a.cfg.Tick.Realtime {
		ticker := time.NewTicker(time.Duration(a.cfg.Tick.Delta * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	var res Result
	for a.machine.Running() {
		if a.cfg.Tick.MaxTicks > 0 && res.Ticks >= a.cfg.Tick.MaxTicks {
			a.logger.Info("tick limit reached", log.Uint64("ticks", res.Ticks))
			break
		}
		if pace != nil {
			select {
			case <-ctx.Done():
				return a.finish(res), ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return a.finish(res), err
		}

		res.LastState = a.machine.Current().Name()
		if err := a.machine.Tick(ctx, a.script.At(res.Ticks)); err != nil {
			return a.finish(res), err
		}
		res.Ticks++
	}
	res.Quit = !a.machine.Running()
	return a.finish(res), nil
}

func (a *App) finish(res Result) Result {
	a.logger.Info("run finished",
		log.Uint64("ticks", res.Ticks),
		log.Bool("quit", res.Quit),
		log.String("last_state", res.LastState),
		log.Int("levels_left", a.pending.Len()),
	)
	return res
}

// Levels returns the campaign as loaded. Runs never consume it.
func (a *App) Levels() *level.Queue { return a.levels }

func loadLevels(path string) (*level.Queue, error) {
	if path == "" {
		return level.DefaultLevels(), nil
	}
	return level.LoadFile(path)
}

func loadCatalog(path string) (*assets.Catalog, error) {
	if path == "" {
		return assets.DefaultCatalog(), nil
	}
	return assets.LoadCatalogFile(path)
}

func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input script: %w", err)
	}
	defer f.Close()
	return input.LoadScriptYAML(f)
}
