package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager loads, watches and reloads the layout file.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	explicit  bool
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager. An empty configFile searches for layout.toml
// (or .yaml/.json) in the XDG config directory and the working directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DOCKPANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "DOCKPANE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKPANE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKPANE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKPANE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:    v,
		explicit: configFile != "",
	}, nil
}

// Load reads the layout file and environment. A missing file in the search
// path is not an error; the defaults apply.
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
	if errors.As(err, &notFound) && !m.explicit {
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configFile, _ = GetConfigFile()
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format and permissions", configFile, err)
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
	defaults := DefaultConfig()

	config.Theme = strings.TrimSpace(config.Theme)
	if config.Theme == "" {
		config.Theme = defaults.Theme
	}
	if config.Icons.Close == "" {
		config.Icons.Close = defaults.Icons.Close
	}
	if config.Icons.More == "" {
		config.Icons.More = defaults.Icons.More
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaults.Logging.Level
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaults.Logging.Format
	}

	if config.Panels == nil {
		config.Panels = defaults.Panels
	}
}

// Get returns a copy of the current configuration, or the defaults before
// the first Load.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the file the configuration was read from, if any.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// WriteDefault writes the default layout file and its JSON schema to the
// XDG config directory, or to path when given. An existing file is left in
// place.
func (m *Manager) WriteDefault(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		var err error
		if path, err = GetConfigFile(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", err
	}

	m.setDefaults()
	if err := m.viper.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return path, nil
		}
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	if err := WriteSchemaFile(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("theme", defaults.Theme)
	m.viper.SetDefault("animate_time", defaults.AnimateTime.String())
	m.viper.SetDefault("confirm_close", defaults.ConfirmClose)
	m.setIconDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("panels", defaults.Panels)
}

func (m *Manager) setIconDefaults(defaults *Config) {
	m.viper.SetDefault("icons.close", defaults.Icons.Close)
	m.viper.SetDefault("icons.more", defaults.Icons.More)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
