// Package injector assembles the application graph.
package injector

import (
	"github.com/zeusync/waveshooter/internal/config"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

// ProvideLogger builds the process logger from the log section of cfg.
func ProvideLogger(cfg config.Config) (log.Log, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, err := log.New(log.Options{Level: level, Console: cfg.Log.Format == "console"})
	if err != nil {
		return nil, err
	}
	return logger, nil
}
