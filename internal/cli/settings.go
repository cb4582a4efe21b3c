package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/temirov/qrclip/internal/clipboard"
	"github.com/temirov/qrclip/internal/config"
	"github.com/temirov/qrclip/internal/host"
	"github.com/temirov/qrclip/internal/viewer"
)

const (
	invalidWindowSizeFormat = "invalid window size %dx%d"
	emptyFallbackMessage    = "fallback command must name a program"
)

// viewerOptions holds flag values for the root command.
type viewerOptions struct {
	configPath      string
	title           string
	initialZoom     float64
	minimumZoom     float64
	maximumZoom     float64
	zoomSpeed       float64
	fallbackEnabled bool
	fallbackCommand []string
	errorDialog     bool
	verbose         bool
	showVersion     bool
}

// runSettings is the fully resolved configuration of one viewer run.
type runSettings struct {
	window          host.WindowOptions
	zoom            viewer.ZoomConfiguration
	fallbackEnabled bool
	fallbackCommand []string
	errorDialog     bool
}

func defaultRunSettings() runSettings {
	return runSettings{
		window: host.WindowOptions{
			Title:  host.DefaultWindowTitle,
			Width:  host.DefaultWindowWidth,
			Height: host.DefaultWindowHeight,
		},
		zoom:            viewer.DefaultZoomConfiguration(),
		fallbackEnabled: true,
		fallbackCommand: []string{clipboard.DefaultFallbackCommand},
	}
}

// resolveRunSettings layers defaults, configuration files and explicitly set flags, in that order.
func resolveRunSettings(configuration config.ApplicationConfiguration, options viewerOptions, flags *pflag.FlagSet) (runSettings, error) {
	settings := defaultRunSettings()

	if configuration.Window.Title != "" {
		settings.window.Title = configuration.Window.Title
	}
	if configuration.Window.Width != nil {
		settings.window.Width = *configuration.Window.Width
	}
	if configuration.Window.Height != nil {
		settings.window.Height = *configuration.Window.Height
	}
	applyFloat(&settings.zoom.Initial, configuration.Zoom.Initial)
	applyFloat(&settings.zoom.Minimum, configuration.Zoom.Minimum)
	applyFloat(&settings.zoom.Maximum, configuration.Zoom.Maximum)
	applyFloat(&settings.zoom.Speed, configuration.Zoom.Speed)
	if configuration.Clipboard.Fallback != nil {
		settings.fallbackEnabled = *configuration.Clipboard.Fallback
	}
	if len(configuration.Clipboard.FallbackCommand) > 0 {
		settings.fallbackCommand = append([]string{}, configuration.Clipboard.FallbackCommand...)
	}
	if configuration.ErrorDialog != nil {
		settings.errorDialog = *configuration.ErrorDialog
	}

	if flags != nil {
		if flags.Changed(titleFlagName) {
			settings.window.Title = options.title
		}
		if flags.Changed(zoomFlagName) {
			settings.zoom.Initial = options.initialZoom
		}
		if flags.Changed(minimumZoomFlagName) {
			settings.zoom.Minimum = options.minimumZoom
		}
		if flags.Changed(maximumZoomFlagName) {
			settings.zoom.Maximum = options.maximumZoom
		}
		if flags.Changed(zoomSpeedFlagName) {
			settings.zoom.Speed = options.zoomSpeed
		}
		if flags.Changed(fallbackFlagName) {
			settings.fallbackEnabled = options.fallbackEnabled
		}
		if flags.Changed(fallbackCommandFlagName) {
			settings.fallbackCommand = append([]string{}, options.fallbackCommand...)
		}
		if flags.Changed(dialogFlagName) {
			settings.errorDialog = options.errorDialog
		}
	}

	if err := settings.zoom.Validate(); err != nil {
		return runSettings{}, err
	}
	if settings.window.Width <= 0 || settings.window.Height <= 0 {
		return runSettings{}, fmt.Errorf(invalidWindowSizeFormat, settings.window.Width, settings.window.Height)
	}
	if settings.fallbackEnabled && (len(settings.fallbackCommand) == 0 || settings.fallbackCommand[0] == "") {
		return runSettings{}, errors.New(emptyFallbackMessage)
	}
	return settings, nil
}

// clipboardSources lists the system clipboard followed by the fallback command when enabled.
func (settings runSettings) clipboardSources() []clipboard.Source {
	sources := []clipboard.Source{clipboard.NewSystemSource()}
	if settings.fallbackEnabled {
		sources = append(sources, clipboard.NewCommandSource(settings.fallbackCommand[0], settings.fallbackCommand[1:]...))
	}
	return sources
}

func applyFloat(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}
