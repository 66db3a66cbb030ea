package config

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateConfig performs validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateAssets(config)...)
	validationErrors = append(validationErrors, validateBridge(config)...)
	validationErrors = append(validationErrors, validateBackend(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateAssets(config *Config) []string {
	var validationErrors []string
	if strings.ContainsAny(config.Assets.ContainerID, " \"'<>") {
		validationErrors = append(validationErrors, "assets.container_id must be a plain element id")
	}
	if len(config.Assets.Scripts) == 0 {
		validationErrors = append(validationErrors, "assets.scripts must list at least the renderer script")
	}
	return validationErrors
}

func validateBridge(config *Config) []string {
	if !identifierPattern.MatchString(config.Bridge.Prefix) {
		return []string{"bridge.prefix must be a JavaScript identifier (letters, digits, underscore)"}
	}
	return nil
}

func validateBackend(config *Config) []string {
	var validationErrors []string
	switch config.Backend.Kind {
	case BackendWebKit, BackendChrome, BackendSandbox:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("backend.kind must be one of webkit, chrome, sandbox (got %q)", config.Backend.Kind))
	}
	if config.Backend.ScriptTimeoutMs <= 0 {
		validationErrors = append(validationErrors, "backend.script_timeout_ms must be positive")
	}
	if config.Backend.Chrome.StartTimeoutSec <= 0 {
		validationErrors = append(validationErrors, "backend.chrome.start_timeout_sec must be positive")
	}
	return validationErrors
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	if config.Window.Width < 100 {
		validationErrors = append(validationErrors, "window.width must be at least 100")
	}
	if config.Window.Height < 100 {
		validationErrors = append(validationErrors, "window.height must be at least 100")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 0 || config.Logging.MaxBackups < 0 || config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging rotation limits must be non-negative")
	}
	return validationErrors
}
