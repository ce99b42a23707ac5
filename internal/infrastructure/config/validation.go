package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/dockpane/internal/domain/entity"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}
	validLogFormats = []string{"console", "json"}
)

// validateConfig collects every problem in the configuration into one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateTiming(config)...)
	validationErrors = append(validationErrors, validateIcons(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validatePanels(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateTiming(config *Config) []string {
	if config.AnimateTime < 0 {
		return []string{"animate_time must be non-negative"}
	}
	return nil
}

func validateIcons(config *Config) []string {
	var validationErrors []string
	if strings.ContainsAny(config.Icons.Close, "\n\r") {
		validationErrors = append(validationErrors, "icons.close must be a single line")
	}
	if strings.ContainsAny(config.Icons.More, "\n\r") {
		validationErrors = append(validationErrors, "icons.more must be a single line")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !slices.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of %s (got %q)", strings.Join(validLogLevels, ", "), config.Logging.Level))
	}
	if !slices.Contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of %s (got %q)", strings.Join(validLogFormats, ", "), config.Logging.Format))
	}
	return validationErrors
}

func validatePanels(config *Config) []string {
	if len(config.Panels) == 0 {
		return nil
	}

	var validationErrors []string
	if len(config.Panels) > 1 {
		validationErrors = append(validationErrors, fmt.Sprintf("panels must hold a single root node (got %d)", len(config.Panels)))
	}
	if _, err := entity.BuildTree(config.Panels); err != nil {
		validationErrors = append(validationErrors, "panels: "+err.Error())
	}

	seen := make(map[string]string)
	walkSpecs(config.Panels[0], entity.RootPath, func(spec entity.NodeSpec, at entity.Path) {
		if spec.FlexGrow < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("panels %s: flex_grow must be non-negative", at))
		}
		if spec.Type != "panel" || spec.ID == "" {
			return
		}
		if first, dup := seen[spec.ID]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("panels %s: id %q already used at %s", at, spec.ID, first))
			return
		}
		seen[spec.ID] = at.String()
	})
	return validationErrors
}

func walkSpecs(spec entity.NodeSpec, at entity.Path, fn func(entity.NodeSpec, entity.Path)) {
	fn(spec, at)
	for i, child := range spec.Panels {
		walkSpecs(child, at.Child(i), fn)
	}
}
