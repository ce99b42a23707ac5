// Package config loads the dockpane layout file with viper, validates it and
// reloads it on change.
package config

import (
	"time"

	"github.com/bnema/dockpane/internal/domain/entity"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config is the layout file.
type Config struct {
	// Theme is passed through to the renderer.
	Theme string `mapstructure:"theme" yaml:"theme" json:"theme" jsonschema:"description=Theme name handed to the renderer"`
	// AnimateTime debounces tab-overflow realignment, e.g. "250ms".
	AnimateTime time.Duration `mapstructure:"animate_time" yaml:"animate_time" json:"animate_time" jsonschema:"description=Tab realignment debounce in nanoseconds or as a duration string"`
	Icons       IconsConfig   `mapstructure:"icons" yaml:"icons" json:"icons"`
	// ConfirmClose asks before a panel is destroyed in the terminal UI.
	ConfirmClose bool          `mapstructure:"confirm_close" yaml:"confirm_close" json:"confirm_close"`
	Logging      LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
	// Panels is the initial tree. Only the first element is used.
	Panels []entity.NodeSpec `mapstructure:"panels" yaml:"panels" json:"panels"`
}

// IconsConfig holds the tab bar glyphs.
type IconsConfig struct {
	Close string `mapstructure:"close" yaml:"close" json:"close"`
	More  string `mapstructure:"more" yaml:"more" json:"more"`
}

// LoggingConfig mirrors logging.Config in file form.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" yaml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// DefaultConfig returns the configuration used when no layout file exists.
func DefaultConfig() *Config {
	return &Config{
		Theme:       "default",
		AnimateTime: 250 * time.Millisecond,
		Icons: IconsConfig{
			Close: "X",
			More:  "...",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Panels: []entity.NodeSpec{},
	}
}
