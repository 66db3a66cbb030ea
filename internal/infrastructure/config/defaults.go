package config

import "github.com/bnema/formview/internal/domain/entity"

const (
	defaultContainerID     = "formio"
	defaultScriptTimeoutMs = 5000
	defaultChromeStartSec  = 30
	defaultWindowWidth     = 1024
	defaultWindowHeight    = 768
)

// DefaultStylesheets lists the renderer stylesheets, relative to the asset base.
func DefaultStylesheets() []string {
	return []string{
		"bootstrap.min.css",
		"formio.full.min.css",
	}
}

// DefaultScripts lists the renderer scripts in load order.
func DefaultScripts() []string {
	return []string{
		"jquery.min.js",
		"bootstrap.bundle.min.js",
		"formio.full.min.js",
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Assets: AssetsConfig{
			ContainerID: defaultContainerID,
			Stylesheets: DefaultStylesheets(),
			Scripts:     DefaultScripts(),
		},
		Bridge: BridgeConfig{
			Prefix: entity.DefaultBridgePrefix,
		},
		Backend: BackendConfig{
			Kind:            BackendWebKit,
			ScriptTimeoutMs: defaultScriptTimeoutMs,
			Chrome: ChromeConfig{
				Headless:        true,
				StartTimeoutSec: defaultChromeStartSec,
			},
		},
		Window: WindowConfig{
			Title:  "formview",
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
