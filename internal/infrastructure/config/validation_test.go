package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad prefix", mutate: func(c *Config) { c.Bridge.Prefix = "1abc" }, wantKey: "bridge.prefix"},
		{name: "empty prefix", mutate: func(c *Config) { c.Bridge.Prefix = "" }, wantKey: "bridge.prefix"},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend.Kind = "gecko" }, wantKey: "backend.kind"},
		{name: "zero timeout", mutate: func(c *Config) { c.Backend.ScriptTimeoutMs = 0 }, wantKey: "backend.script_timeout_ms"},
		{name: "tiny window", mutate: func(c *Config) { c.Window.Width = 10 }, wantKey: "window.width"},
		{name: "no scripts", mutate: func(c *Config) { c.Assets.Scripts = nil }, wantKey: "assets.scripts"},
		{name: "quoted container", mutate: func(c *Config) { c.Assets.ContainerID = `a"b` }, wantKey: "assets.container_id"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantKey: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantKey: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantKey == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}
