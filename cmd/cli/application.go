package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	repos "github.com/temirov/giberg/cmd/cli/repos"
	"github.com/temirov/giberg/internal/interrupt"
	"github.com/temirov/giberg/internal/ui"
	"github.com/temirov/giberg/internal/utils"
	flagutils "github.com/temirov/giberg/internal/utils/flags"
)

const (
	applicationNameConstant                 = "giberg"
	applicationShortDescriptionConstant     = "Mirror repositories between GitHub and Codeberg"
	applicationLongDescriptionConstant      = "giberg downloads repositories from a source provider, publishes working copies to a target provider, and deletes or lists remote repositories."
	downloaderNameConstant                  = "ghd"
	downloaderShortDescriptionConstant      = "Download GitHub repositories into a local root directory"
	uploaderNameConstant                    = "cbu"
	uploaderShortDescriptionConstant        = "Upload local working copies to Codeberg or delete Codeberg repositories"
	uploaderUseConstant                     = uploaderNameConstant + " upload|delete"
	uploaderActionRequiredMessageConstant   = "an action is required: upload or delete"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	colorFlagNameConstant                   = "color"
	colorFlagUsageConstant                  = "Color status lines"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	environmentFilesFieldConstant           = "environment_files"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandDebugMessageConstant         = "giberg CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentsConstant               = "arguments"
)

var errUploaderActionRequired = errors.New(uploaderActionRequiredMessageConstant)

// Application wires a Cobra root command, the configuration loader, and the structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	colorFlagValue        string
	commandDependencies   repos.Dependencies
}

// ApplicationOption customizes an Application before its commands are built.
type ApplicationOption func(*Application)

// WithCommandDependencies replaces the collaborators handed to the mirror commands. Logging, configuration
// and color providers are always supplied by the application.
func WithCommandDependencies(commandDependencies repos.Dependencies) ApplicationOption {
	return func(application *Application) {
		application.commandDependencies = commandDependencies
	}
}

// WithLoggerOutput sends diagnostics to output instead of stderr.
func WithLoggerOutput(output io.Writer) ApplicationOption {
	return func(application *Application) {
		application.loggerFactory = utils.NewLoggerFactoryWithOutput(output)
	}
}

// NewApplication assembles the giberg command with download, upload, delete, sync and list.
func NewApplication(options ...ApplicationOption) *Application {
	application := newApplication(options...)

	rootCommand := &cobra.Command{
		Use:   applicationNameConstant,
		Short: applicationShortDescriptionConstant,
		Long:  applicationLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	commandDependencies := application.mirrorDependencies()

	downloadBuilder := repos.DownloadCommandBuilder{Dependencies: commandDependencies}
	downloadCommand, downloadBuildError := downloadBuilder.Build()
	if downloadBuildError == nil {
		rootCommand.AddCommand(downloadCommand)
	}

	uploadBuilder := repos.UploadCommandBuilder{Dependencies: commandDependencies}
	uploadCommand, uploadBuildError := uploadBuilder.Build()
	if uploadBuildError == nil {
		rootCommand.AddCommand(uploadCommand)
	}

	deleteBuilder := repos.DeleteCommandBuilder{Dependencies: commandDependencies}
	deleteCommand, deleteBuildError := deleteBuilder.Build()
	if deleteBuildError == nil {
		rootCommand.AddCommand(deleteCommand)
	}

	syncBuilder := repos.SyncCommandBuilder{Dependencies: commandDependencies}
	syncCommand, syncBuildError := syncBuilder.Build()
	if syncBuildError == nil {
		rootCommand.AddCommand(syncCommand)
	}

	listBuilder := repos.ListCommandBuilder{Dependencies: commandDependencies}
	listCommand, listBuildError := listBuilder.Build()
	if listBuildError == nil {
		rootCommand.AddCommand(listCommand)
	}

	application.attachRootCommand(rootCommand)
	return application
}

// NewDownloaderApplication assembles ghd, whose root command is the download command.
func NewDownloaderApplication(options ...ApplicationOption) *Application {
	application := newApplication(options...)

	downloadBuilder := repos.DownloadCommandBuilder{Dependencies: application.mirrorDependencies(), RequireToken: true}
	rootCommand, buildError := downloadBuilder.Build()
	if buildError != nil {
		rootCommand = &cobra.Command{}
	}
	rootCommand.Use = downloaderNameConstant
	rootCommand.Short = downloaderShortDescriptionConstant

	application.attachRootCommand(rootCommand)
	return application
}

// NewUploaderApplication assembles cbu with the upload and delete actions. The mandatory --token is accepted
// before or after the action.
func NewUploaderApplication(options ...ApplicationOption) *Application {
	application := newApplication(options...)

	var tokenValue string
	rootCommand := &cobra.Command{
		Use:   uploaderUseConstant,
		Short: uploaderShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return errUploaderActionRequired
		},
	}
	if tokenFlagError := flagutils.BindRequiredTokenFlag(rootCommand.PersistentFlags(), &tokenValue); tokenFlagError != nil {
		rootCommand.RunE = func(*cobra.Command, []string) error {
			return tokenFlagError
		}
	}

	commandDependencies := application.mirrorDependencies()

	uploadBuilder := repos.UploadCommandBuilder{Dependencies: commandDependencies, InheritTokenFlag: true}
	uploadCommand, uploadBuildError := uploadBuilder.Build()
	if uploadBuildError == nil {
		rootCommand.AddCommand(uploadCommand)
	}

	deleteBuilder := repos.DeleteCommandBuilder{Dependencies: commandDependencies, InheritTokenFlag: true}
	deleteCommand, deleteBuildError := deleteBuilder.Build()
	if deleteBuildError == nil {
		rootCommand.AddCommand(deleteCommand)
	}

	application.attachRootCommand(rootCommand)
	return application
}

func newApplication(options ...ApplicationOption) *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())
	configurationLoader.SetEnvironmentFiles(environmentFileNameConstant)

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}
	for _, option := range options {
		if option != nil {
			option(application)
		}
	}
	return application
}

// mirrorDependencies overlays the application's providers on the injected collaborators.
func (application *Application) mirrorDependencies() repos.Dependencies {
	commandDependencies := application.commandDependencies
	commandDependencies.LoggerProvider = func() *zap.Logger {
		return application.logger
	}
	commandDependencies.HumanReadableLoggingProvider = application.humanReadableLoggingEnabled
	commandDependencies.ConfigurationProvider = func() repos.Configuration {
		return application.configuration.Configuration
	}
	commandDependencies.ColorModeProvider = application.colorMode
	return commandDependencies
}

func (application *Application) attachRootCommand(rootCommand *cobra.Command) {
	rootCommand.SilenceUsage = true
	rootCommand.SilenceErrors = true
	rootCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}
	rootCommand.SetContext(context.Background())

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	flagutils.AddChoiceFlag(
		persistentFlags,
		&application.colorFlagValue,
		colorFlagNameConstant,
		string(ui.ColorModeAuto),
		[]string{string(ui.ColorModeAuto), string(ui.ColorModeAlways), string(ui.ColorModeNever)},
		colorFlagUsageConstant,
	)

	application.rootCommand = rootCommand
}

// Execute runs the command hierarchy against the process arguments and flushes the logger.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy against arguments and flushes the logger. Signal handling
// covers the whole run, so an interrupt during flag parsing or configuration loading is reported like one
// that arrives while repositories are processed.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	scope := interrupt.Acquire(context.Background())
	defer scope.Release()

	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(arguments))
	executionError := application.rootCommand.ExecuteContext(scope.Context())
	if scope.Interrupted() && !repos.IsReported(executionError) {
		executionError = application.reportInterrupted()
	}
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

func (application *Application) reportInterrupted() error {
	output := application.rootCommand.OutOrStdout()
	console := ui.NewConsole(output, ui.ColorsEnabled(output, application.colorMode()))
	console.ReportInterrupted()
	console.Farewell()
	return repos.ReportedError{Cause: interrupt.ErrInterrupted}
}

// SetOutput redirects command output and errors, mainly for tests.
func (application *Application) SetOutput(output io.Writer) {
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)
}

// Run executes application and converts the outcome into a process exit code. Failures not already reported
// by a command are printed to errorOutput as one red line.
func Run(application *Application, errorOutput io.Writer) int {
	executionError := application.Execute()
	if executionError == nil {
		return 0
	}
	if !repos.IsReported(executionError) {
		console := ui.NewConsole(errorOutput, ui.ColorsEnabled(errorOutput, application.colorMode()))
		console.Print(ui.ColorRed, executionError.Error())
	}
	return 1
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, DefaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, colorFlagNameConstant) {
		application.configuration.Common.Color = application.colorFlagValue
	}
	if _, colorError := ui.ParseColorMode(application.configuration.Common.Color); colorError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, colorError)
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Strings(environmentFilesFieldConstant, application.configurationMetadata.EnvironmentFilesUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) colorMode() ui.ColorMode {
	colorMode, parseError := ui.ParseColorMode(application.configuration.Common.Color)
	if parseError != nil {
		return ui.ColorModeAuto
	}
	return colorMode
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Strings(logFieldArgumentsConstant, arguments),
	)
	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
