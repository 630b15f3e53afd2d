//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/gmruntime/internal/core/assets/loader"
	"github.com/zeusync/gmruntime/internal/core/config"
)

func InitializeLoader(cfg *config.Config) (*loader.Loader, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
