package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/waveshooter/internal/config"
	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

func headless(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Tick.Realtime = false
	cfg.Tick.MaxTicks = 50
	return cfg
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunStopsAtTickLimit(t *testing.T) {
	a, err := New(headless(t), log.NewNop(), bus.New())
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(50), res.Ticks)
	assert.False(t, res.Quit)
	assert.Equal(t, "gameplay", res.LastState)
}

func TestRunQuitsFromScript(t *testing.T) {
	cfg := headless(t)
	cfg.Input.Script = write(t, "script.yaml", "3: [p]\n5: [p]\n8: [escape]\n")

	b := bus.New()
	var transitions []string
	_, err := b.Subscribe(bus.StateChanged, func(e bus.Event) error {
		transitions = append(transitions, e.Data.(bus.StatePayload).Transition)
		return nil
	})
	require.NoError(t, err)

	a, err := New(cfg, log.NewNop(), b)
	require.NoError(t, err)
	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Quit)
	assert.Equal(t, uint64(9), res.Ticks)
	assert.Equal(t, []string{"push", "push", "pop", "quit"}, transitions)
}

func TestRunSkipsLevelsAndFinishesCampaign(t *testing.T) {
	cfg := headless(t)
	cfg.Tick.Delta = 0.5
	cfg.Fade.Rate = 1
	cfg.Tick.MaxTicks = 100
	cfg.Assets.Levels = write(t, "levels.yaml", `
levels:
  - name: only
    layout:
      - {kind: player, x: 960, y: 300}
      - {kind: square_enemy, x: 100, y: 900}
`)
	cfg.Input.Script = write(t, "script.yaml", "0: [space]\n")

	b := bus.New()
	var campaign int
	_, _ = b.Subscribe(bus.CampaignCompleted, func(bus.Event) error { campaign++; return nil })

	a, err := New(cfg, log.NewNop(), b)
	require.NoError(t, err)
	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Quit)
	assert.Equal(t, 1, campaign)
	assert.Less(t, res.Ticks, uint64(10))
	assert.Equal(t, 1, a.Levels().Len(), "the loaded campaign is not consumed by a run")
}

func TestRunHonoursCancellation(t *testing.T) {
	cfg := headless(t)
	cfg.Tick.MaxTicks = 0
	a, err := New(cfg, log.NewNop(), bus.New())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Run(ctx)
	assert.NoError(t, err)
}

func TestNewRejectsBadFiles(t *testing.T) {
	cfg := headless(t)
	cfg.Assets.Levels = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg, log.NewNop(), bus.New())
	assert.Error(t, err)

	cfg = headless(t)
	cfg.Assets.Prefabs = write(t, "prefabs.yaml", "templates:\n  player: {scale: -1}\n")
	_, err = New(cfg, log.NewNop(), bus.New())
	assert.Error(t, err)
}

func TestShippedConfigFilesLoad(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "configs", "waveshooter.yaml"))
	require.NoError(t, err)
	cfg.Assets.Levels = filepath.Join("..", "..", cfg.Assets.Levels)
	cfg.Assets.Prefabs = filepath.Join("..", "..", cfg.Assets.Prefabs)
	cfg.Input.Script = filepath.Join("..", "..", "configs", "demo_script.yaml")
	cfg.Tick.Realtime = false
	cfg.Log.Level = "silent"

	a, err := New(cfg, log.NewNop(), bus.New())
	require.NoError(t, err)
	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Quit)
	assert.LessOrEqual(t, res.Ticks, uint64(1801))
}
