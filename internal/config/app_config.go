// Package config loads viewer settings from global and local YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/qrclip/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds values read from configuration files.
// Pointer and empty fields mean "not set" so that later sources only override what they define.
type ApplicationConfiguration struct {
	Window      WindowConfiguration    `mapstructure:"window"`
	Zoom        ZoomConfiguration      `mapstructure:"zoom"`
	Clipboard   ClipboardConfiguration `mapstructure:"clipboard"`
	ErrorDialog *bool                  `mapstructure:"error_dialog"`
}

// WindowConfiguration configures the preview window.
type WindowConfiguration struct {
	Title  string `mapstructure:"title"`
	Width  *int   `mapstructure:"width"`
	Height *int   `mapstructure:"height"`
}

// ZoomConfiguration configures mouse-wheel zoom.
type ZoomConfiguration struct {
	Initial *float64 `mapstructure:"initial"`
	Minimum *float64 `mapstructure:"min"`
	Maximum *float64 `mapstructure:"max"`
	Speed   *float64 `mapstructure:"speed"`
}

// ClipboardConfiguration configures the clipboard sources.
type ClipboardConfiguration struct {
	Fallback        *bool    `mapstructure:"fallback"`
	FallbackCommand []string `mapstructure:"fallback_command"`
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

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) || workingDirectory == "" {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	if workingDirectory == "" {
		return ""
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

// loadConfigurationFromPath decodes the file at path. A missing file yields an empty
// configuration unless it was required.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Window = result.Window.merge(override.Window)
	result.Zoom = result.Zoom.merge(override.Zoom)
	result.Clipboard = result.Clipboard.merge(override.Clipboard)
	if override.ErrorDialog != nil {
		result.ErrorDialog = cloneBool(override.ErrorDialog)
	}
	return result
}

func (config WindowConfiguration) merge(override WindowConfiguration) WindowConfiguration {
	result := config
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.Width != nil {
		result.Width = cloneInt(override.Width)
	}
	if override.Height != nil {
		result.Height = cloneInt(override.Height)
	}
	return result
}

func (config ZoomConfiguration) merge(override ZoomConfiguration) ZoomConfiguration {
	result := config
	if override.Initial != nil {
		result.Initial = cloneFloat(override.Initial)
	}
	if override.Minimum != nil {
		result.Minimum = cloneFloat(override.Minimum)
	}
	if override.Maximum != nil {
		result.Maximum = cloneFloat(override.Maximum)
	}
	if override.Speed != nil {
		result.Speed = cloneFloat(override.Speed)
	}
	return result
}

func (config ClipboardConfiguration) merge(override ClipboardConfiguration) ClipboardConfiguration {
	result := config
	if override.Fallback != nil {
		result.Fallback = cloneBool(override.Fallback)
	}
	if len(override.FallbackCommand) > 0 {
		result.FallbackCommand = append([]string{}, override.FallbackCommand...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
