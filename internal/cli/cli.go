// Package cli provides the qrclip command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/temirov/qrclip/internal/clipboard"
	"github.com/temirov/qrclip/internal/config"
	"github.com/temirov/qrclip/internal/host"
	"github.com/temirov/qrclip/internal/preview"
	"github.com/temirov/qrclip/internal/symbol"
	"github.com/temirov/qrclip/internal/utils"
	"github.com/temirov/qrclip/internal/viewer"
)

const (
	configFlagName          = "config"
	titleFlagName           = "title"
	zoomFlagName            = "zoom"
	minimumZoomFlagName     = "min-zoom"
	maximumZoomFlagName     = "max-zoom"
	zoomSpeedFlagName       = "zoom-speed"
	fallbackFlagName        = "fallback"
	fallbackCommandFlagName = "fallback-command"
	dialogFlagName          = "dialog"
	verboseFlagName         = "verbose"
	versionFlagName         = "version"
	globalFlagName          = "global"
	forceFlagName           = "force"

	rootUse              = utils.ApplicationName
	rootShortDescription = "show the clipboard text as a QR code"
	rootLongDescription  = `qrclip reads the current clipboard text, encodes it as a QR code and shows it in a window.
Scroll to zoom and hover the code to see the encoded text. Press Escape to close the window.
When the system clipboard is empty the fallback command (wl-paste by default) is read instead.`
	rootUsageExample = `  # Show the clipboard as a QR code
  qrclip

  # Start zoomed out and read the X11 selection when the clipboard is empty
  qrclip --zoom 1 --fallback-command xclip --fallback-command -o

  # Report startup failures in a desktop dialog
  qrclip --dialog`
	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to ./config.yaml, or to ~/.qrclip/config.yaml with --global.`

	configFlagDescription          = "configuration file to read instead of ./config.yaml"
	titleFlagDescription           = "window title"
	zoomFlagDescription            = "initial zoom factor"
	minimumZoomFlagDescription     = "smallest zoom factor"
	maximumZoomFlagDescription     = "largest zoom factor"
	zoomSpeedFlagDescription       = "zoom change per scroll unit"
	fallbackFlagDescription        = "read the fallback command when the system clipboard is empty"
	fallbackCommandFlagDescription = "fallback command and arguments, one per flag"
	dialogFlagDescription          = "show startup errors in a dialog"
	verboseFlagDescription         = "log debug details"
	versionFlagDescription         = "display application version"
	globalFlagDescription          = "write into the global configuration directory"
	forceFlagDescription           = "overwrite an existing configuration file"

	versionTemplate             = "qrclip version: %s\n"
	configurationWrittenFormat  = "configuration written to %s\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorDialogTitleSuffix      = " - Error"
)

// application carries the collaborators of a command run so tests can replace them.
type application struct {
	logger     *zap.Logger
	encoder    symbol.Encoder
	sources    func(settings runSettings) []clipboard.Source
	showViewer func(ctx context.Context, document preview.Document, settings runSettings, logger *zap.Logger) error
	showError  func(title string, message string)
}

func newApplication(logger *zap.Logger) *application {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &application{
		logger:     logger,
		encoder:    symbol.NewQREncoder(),
		sources:    runSettings.clipboardSources,
		showViewer: showViewerWindow,
		showError:  showErrorDialog,
	}
}

// Execute runs the qrclip application. An interrupt cancels a pending clipboard command
// or closes the viewer window.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCommand := createRootCommand(newApplication(logger))
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(app *application) *cobra.Command {
	var options viewerOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !options.verbose {
				return nil
			}
			verboseLogger, loggerError := utils.NewApplicationLogger(true)
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			app.logger = verboseLogger
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return app.runViewer(command, options)
		},
	}

	defaults := defaultRunSettings()
	persistentFlags := rootCommand.PersistentFlags()
	registerToggleFlag(persistentFlags, &options.verbose, verboseFlagName, false, verboseFlagDescription)

	flags := rootCommand.Flags()
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flags.StringVar(&options.title, titleFlagName, defaults.window.Title, titleFlagDescription)
	flags.Float64Var(&options.initialZoom, zoomFlagName, defaults.zoom.Initial, zoomFlagDescription)
	flags.Float64Var(&options.minimumZoom, minimumZoomFlagName, defaults.zoom.Minimum, minimumZoomFlagDescription)
	flags.Float64Var(&options.maximumZoom, maximumZoomFlagName, defaults.zoom.Maximum, maximumZoomFlagDescription)
	flags.Float64Var(&options.zoomSpeed, zoomSpeedFlagName, defaults.zoom.Speed, zoomSpeedFlagDescription)
	registerToggleFlag(flags, &options.fallbackEnabled, fallbackFlagName, defaults.fallbackEnabled, fallbackFlagDescription)
	flags.StringArrayVar(&options.fallbackCommand, fallbackCommandFlagName, defaults.fallbackCommand, fallbackCommandFlagDescription)
	registerToggleFlag(flags, &options.errorDialog, dialogFlagName, defaults.errorDialog, dialogFlagDescription)
	flags.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{Target: target, Force: overwrite})
			if err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, path)
			return nil
		},
	}

	registerToggleFlag(initCommand.Flags(), &writeGlobal, globalFlagName, false, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runViewer prepares the document and opens the window. Startup failures are returned
// before any window exists, after an optional error dialog.
func (app *application) runViewer(command *cobra.Command, options viewerOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	settings, settingsError := resolveRunSettings(configuration, options, command.Flags())
	if settingsError != nil {
		return settingsError
	}

	acquirer := clipboard.NewAcquirer(app.logger, app.sources(settings)...)
	document, prepareError := preview.Prepare(command.Context(), acquirer, app.encoder)
	if prepareError != nil {
		if settings.errorDialog {
			app.showError(settings.window.Title+errorDialogTitleSuffix, prepareError.Error())
		}
		return prepareError
	}
	app.logger.Debug("qr code prepared", zap.Int("modules", document.Modules), zap.Int("characters", len([]rune(document.Text))))
	return app.showViewer(command.Context(), document, settings, app.logger)
}

func showViewerWindow(ctx context.Context, document preview.Document, settings runSettings, logger *zap.Logger) error {
	previewer := viewer.New(document.Text, document.Pixels, host.TextureHost{}, viewer.Options{
		Zoom:   settings.zoom,
		Logger: logger,
	})
	return host.Run(ctx, previewer, settings.window)
}

func showErrorDialog(title string, message string) {
	dialog.Message("%s", message).Title(title).Error()
}
