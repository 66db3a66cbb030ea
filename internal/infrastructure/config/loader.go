package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a configuration manager. An empty configFile searches
// the XDG config directory and the working directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// FORMVIEW_BACKEND_KIND, FORMVIEW_ASSETS_DIR, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "FORMVIEW_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind FORMVIEW_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "FORMVIEW_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind FORMVIEW_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load reads the configuration from file and environment variables.
// A missing file in the search path is not an error; defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configFile = m.configFile
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	switch BackendKind(strings.ToLower(strings.TrimSpace(string(config.Backend.Kind)))) {
	case BackendChrome:
		config.Backend.Kind = BackendChrome
	case BackendSandbox:
		config.Backend.Kind = BackendSandbox
	default:
		config.Backend.Kind = BackendWebKit
	}

	config.Bridge.Prefix = strings.TrimSpace(config.Bridge.Prefix)
	config.Assets.ContainerID = strings.TrimSpace(config.Assets.ContainerID)
	if config.Assets.ContainerID == "" {
		config.Assets.ContainerID = defaultContainerID
	}
	if config.Assets.Dir != "" {
		config.Assets.Dir = expandHome(config.Assets.Dir)
	}
	config.Assets.Stylesheets = compactEntries(config.Assets.Stylesheets)
	config.Assets.Scripts = compactEntries(config.Assets.Scripts)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.File != "" {
		config.Logging.File = expandHome(config.Logging.File)
	}
}

func compactEntries(entries []string) []string {
	out := entries[:0]
	for _, entry := range entries {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func expandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Assets.Stylesheets = append([]string(nil), m.config.Assets.Stylesheets...)
	configCopy.Assets.Scripts = append([]string(nil), m.config.Assets.Scripts...)
	return &configCopy
}

// GetConfigFile returns the path of the file in use, empty when running on defaults.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// InitConfigFile writes the default configuration and its JSON schema to
// path, or to the XDG location when path is empty. Existing files are kept.
func InitConfigFile(path string) (string, bool, error) {
	if path == "" {
		var err error
		path, err = GetConfigFile()
		if err != nil {
			return "", false, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := WriteConfigOrdered(DefaultConfig(), path); err != nil {
		return "", false, err
	}
	if err := WriteSchemaFile(filepath.Join(filepath.Dir(path), "config.schema.json")); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("assets.dir", defaults.Assets.Dir)
	m.viper.SetDefault("assets.container_id", defaults.Assets.ContainerID)
	m.viper.SetDefault("assets.stylesheets", defaults.Assets.Stylesheets)
	m.viper.SetDefault("assets.scripts", defaults.Assets.Scripts)

	m.viper.SetDefault("bridge.prefix", defaults.Bridge.Prefix)

	m.viper.SetDefault("backend.kind", string(defaults.Backend.Kind))
	m.viper.SetDefault("backend.script_timeout_ms", defaults.Backend.ScriptTimeoutMs)
	m.viper.SetDefault("backend.chrome.exec_path", defaults.Backend.Chrome.ExecPath)
	m.viper.SetDefault("backend.chrome.headless", defaults.Backend.Chrome.Headless)
	m.viper.SetDefault("backend.chrome.start_timeout_sec", defaults.Backend.Chrome.StartTimeoutSec)

	m.viper.SetDefault("window.title", defaults.Window.Title)
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.enable_devtools", defaults.Window.EnableDevTools)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}
