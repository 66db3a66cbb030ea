// Package cli wires the formview commands to the configuration, logging and
// form session layers.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/formview/internal/cli/styles"
	"github.com/bnema/formview/internal/infrastructure/config"
	"github.com/bnema/formview/internal/infrastructure/document"
	"github.com/bnema/formview/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config  *config.Config
	Manager *config.Manager
	Theme   *styles.Theme
	Logger  zerolog.Logger

	ctx context.Context
}

// Options configures NewApp.
type Options struct {
	ConfigFile string
	LogLevel   string
}

// NewApp loads the configuration and builds the logger. A broken config file
// is reported; the defaults are not silently substituted.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logCfg := cfg.Logging.LoggerConfig()
	logCfg.TimeFormat = "15:04:05"
	if opts.LogLevel != "" {
		logCfg.Level = logging.ParseLevel(opts.LogLevel)
	} else if envLevel := os.Getenv("FORMVIEW_LOG_LEVEL"); envLevel != "" {
		logCfg.Level = logging.ParseLevel(envLevel)
	}
	logger := logging.New(logCfg)

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Str("backend", string(cfg.Backend.Kind)).
		Msg("configuration loaded")

	return &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		Logger:  logger,
		ctx:     logging.WithContext(context.Background(), logger),
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Synthesizer builds a document synthesizer from the assets section.
func (a *App) Synthesizer() (*document.Synthesizer, error) {
	return document.NewSynthesizer(document.ManifestFromConfig(a.Config.Assets))
}
