// Package config loads formview settings from TOML, environment and defaults.
package config

import (
	"time"

	"github.com/bnema/formview/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	appName    = "formview"
	envPrefix  = "FORMVIEW"
	configName = "config"
)

// BackendKind selects the view that hosts the form document.
type BackendKind string

const (
	BackendWebKit  BackendKind = "webkit"
	BackendChrome  BackendKind = "chrome"
	BackendSandbox BackendKind = "sandbox"
)

// Config is the complete formview configuration.
type Config struct {
	Assets  AssetsConfig  `mapstructure:"assets" toml:"assets" json:"assets" jsonschema:"title=Renderer assets"`
	Bridge  BridgeConfig  `mapstructure:"bridge" toml:"bridge" json:"bridge"`
	Backend BackendConfig `mapstructure:"backend" toml:"backend" json:"backend"`
	Window  WindowConfig  `mapstructure:"window" toml:"window" json:"window"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
}

// AssetsConfig locates the renderer stylesheets and scripts.
type AssetsConfig struct {
	// Dir is served as the document base. Empty means the embedded placeholder set.
	Dir         string   `mapstructure:"dir" toml:"dir" json:"dir" jsonschema:"description=Directory holding the renderer assets"`
	ContainerID string   `mapstructure:"container_id" toml:"container_id" json:"container_id" jsonschema:"default=formio"`
	Stylesheets []string `mapstructure:"stylesheets" toml:"stylesheets" json:"stylesheets"`
	Scripts     []string `mapstructure:"scripts" toml:"scripts" json:"scripts"`
}

// BridgeConfig controls the native bridge naming.
type BridgeConfig struct {
	Prefix string `mapstructure:"prefix" toml:"prefix" json:"prefix" jsonschema:"pattern=^[A-Za-z_][A-Za-z0-9_]*$,default=formview"`
}

// BackendConfig selects and tunes the hosting view.
type BackendConfig struct {
	Kind            BackendKind  `mapstructure:"kind" toml:"kind" json:"kind" jsonschema:"enum=webkit,enum=chrome,enum=sandbox,default=webkit"`
	ScriptTimeoutMs int          `mapstructure:"script_timeout_ms" toml:"script_timeout_ms" json:"script_timeout_ms" jsonschema:"minimum=1"`
	Chrome          ChromeConfig `mapstructure:"chrome" toml:"chrome" json:"chrome"`
}

// ScriptTimeout returns the bound applied to one script injection.
func (b BackendConfig) ScriptTimeout() time.Duration {
	return time.Duration(b.ScriptTimeoutMs) * time.Millisecond
}

// ChromeConfig tunes the headless browser backend.
type ChromeConfig struct {
	ExecPath        string `mapstructure:"exec_path" toml:"exec_path" json:"exec_path"`
	Headless        bool   `mapstructure:"headless" toml:"headless" json:"headless"`
	StartTimeoutSec int    `mapstructure:"start_timeout_sec" toml:"start_timeout_sec" json:"start_timeout_sec" jsonschema:"minimum=1"`
}

// WindowConfig sizes the native window of `formview show`.
type WindowConfig struct {
	Title          string `mapstructure:"title" toml:"title" json:"title"`
	Width          int    `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=100"`
	Height         int    `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=100"`
	EnableDevTools bool   `mapstructure:"enable_devtools" toml:"enable_devtools" json:"enable_devtools"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format     string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	File       string `mapstructure:"file" toml:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// LoggerConfig converts the section into a logging.Config.
func (l LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(l.Level)
	cfg.Format = l.Format
	cfg.File = l.File
	if l.MaxSizeMB > 0 {
		cfg.MaxSizeMB = l.MaxSizeMB
	}
	if l.MaxBackups > 0 {
		cfg.MaxBackups = l.MaxBackups
	}
	if l.MaxAgeDays > 0 {
		cfg.MaxAgeDays = l.MaxAgeDays
	}
	cfg.Compress = l.Compress
	return cfg
}
