//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/waveshooter/internal/app"
	"github.com/zeusync/waveshooter/internal/config"
	"github.com/zeusync/waveshooter/internal/core/events/bus"
)

func InitializeApp(cfg config.Config) (*app.App, error) {
	wire.Build(ProvideLogger, bus.New, app.New)
	return nil, nil
}
