package injector

import (
	"fmt"
	"os"

	"github.com/google/wire"
	"github.com/zeusync/gmruntime/internal/core/assets/loader"
	"github.com/zeusync/gmruntime/internal/core/assets/overrides"
	"github.com/zeusync/gmruntime/internal/core/audio"
	"github.com/zeusync/gmruntime/internal/core/config"
	"github.com/zeusync/gmruntime/internal/core/graphics"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
)

// ProviderSet wires a Loader from a Config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideOverrides,
	ProvideSoundLoader,
	ProvideBuiltins,
	ProvideLoader,
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	logger := log.Provide()
	logger.SetLevel(cfg.Level())
	return logger
}

func ProvideOverrides(cfg *config.Config, logger log.Log) *overrides.Directory {
	return overrides.NewDirectory(cfg.OverridePath(), logger)
}

func ProvideSoundLoader(logger log.Log) *audio.Loader {
	return audio.NewLoader(logger)
}

func ProvideBuiltins(cfg *config.Config) (loader.BuiltinNames, error) {
	path := cfg.BuiltinsPath()
	if path == "" {
		return loader.NewBuiltinNames(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open builtins: %w", err)
	}
	defer f.Close()
	return loader.ReadBuiltinNames(f)
}

func ProvideLoader(
	cfg *config.Config,
	logger log.Log,
	dir *overrides.Directory,
	sounds *audio.Loader,
	builtins loader.BuiltinNames,
) *loader.Loader {
	opts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithOverrides(dir),
		loader.WithSoundLoader(sounds),
		loader.WithImageDecoder(graphics.NewTextureDecoder()),
		loader.WithPathComputer(graphics.NewPathGeometry()),
	}
	if path := cfg.DumpPath(); path != "" {
		opts = append(opts, loader.WithFunctionDump(path, builtins))
	}
	return loader.New(opts...)
}
