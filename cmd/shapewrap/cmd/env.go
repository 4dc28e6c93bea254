package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/shapewrap/cmd/shapewrap/internal/config"
	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/shapewrap"
)

// env is the resolved state shared by the commands.
type env struct {
	cfg      *config.Resolved
	registry *registry.Registry
	log      *zap.Logger
}

// loadEnv resolves configuration, installs the logger and loads the shape
// registry.
func loadEnv() (*env, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if registryOverride != "" {
		cfg.RegistryPath = registryOverride
	}
	if logLevelOverride != "" {
		cfg.LogLevel = logLevelOverride
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	shapewrap.SetLogger(log)
	errors.SetHandler(&errors.LogHandler{Logger: log, Verbose: log.Core().Enabled(zapcore.DebugLevel)})

	reg := registry.Builtin()
	if cfg.RegistryPath != "" {
		reg, err = registry.LoadFile(cfg.RegistryPath)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded registry", zap.String("path", cfg.RegistryPath))
	}

	return &env{cfg: cfg, registry: reg, log: log}, nil
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}
