// Package config loads changetree configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/temirov/changetree/internal/changes"
	"github.com/temirov/changetree/internal/types"
	"github.com/temirov/changetree/internal/utils"
)

// ErrInvalidConfiguration reports configuration values that fail validation.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command defaults.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration defines options shared by the tree and paths commands.
type TreeConfiguration struct {
	Format     string  `mapstructure:"format" validate:"omitempty,oneof=raw json xml yaml"`
	Source     string  `mapstructure:"source" validate:"omitempty,oneof=all staged changed conflicted"`
	BasePath   *string `mapstructure:"base_path"`
	Copy       *bool   `mapstructure:"copy"`
	VaultPaths *bool   `mapstructure:"vault_paths"`
}

// TreeSettings are the effective tree options after defaults are applied.
type TreeSettings struct {
	Format     string
	Source     changes.Source
	BasePath   string
	Copy       bool
	VaultPaths bool
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath, err := globalConfigurationPath(); err == nil {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", localPath, statErr)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if validationErr := merged.Validate(); validationErr != nil {
		return ApplicationConfiguration{}, validationErr
	}
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(utils.ConfigFileType)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Validate checks enumerated values.
func (config ApplicationConfiguration) Validate() error {
	if validationErr := validator.New().Struct(config); validationErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, validationErr)
	}
	return nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Source != "" {
		result.Source = override.Source
	}
	if override.BasePath != nil {
		result.BasePath = cloneString(override.BasePath)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.VaultPaths != nil {
		result.VaultPaths = cloneBool(override.VaultPaths)
	}
	return result
}

// Settings applies built-in defaults to unset values.
func (config TreeConfiguration) Settings() TreeSettings {
	settings := TreeSettings{
		Format: types.FormatRaw,
		Source: changes.SourceAll,
	}
	if config.Format != "" {
		settings.Format = config.Format
	}
	if config.Source != "" {
		settings.Source = changes.Source(config.Source)
	}
	if config.BasePath != nil {
		settings.BasePath = *config.BasePath
	}
	if config.Copy != nil {
		settings.Copy = *config.Copy
	}
	if config.VaultPaths != nil {
		settings.VaultPaths = *config.VaultPaths
	}
	return settings
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
