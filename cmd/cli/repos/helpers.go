package repos

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/credentials"
	"github.com/temirov/giberg/internal/execshell"
	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/hosting/providers"
	"github.com/temirov/giberg/internal/repos/dependencies"
	"github.com/temirov/giberg/internal/repos/shared"
	"github.com/temirov/giberg/internal/ui"
	flagutils "github.com/temirov/giberg/internal/utils/flags"
	pathutils "github.com/temirov/giberg/internal/utils/path"
)

const (
	providerFlagUsageTemplateConstant = "Hosting provider (%s)"
	tokenResolvedLogMessageConstant   = "Resolved provider token"
	logFieldProviderConstant          = "provider"
	logFieldTokenSourceConstant       = "token_source"
)

var repositoryHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// Dependencies are the collaborators shared by the mirror commands. Nil fields fall back to production defaults.
type Dependencies struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
	ColorModeProvider            func() ui.ColorMode
	Registry                     *hosting.Registry
	FileSystem                   afero.Fs
	EnvironmentLookup            credentials.EnvironmentLookup
	GitExecutor                  shared.GitExecutor
	GitManager                   shared.GitRepositoryManager
}

func (commandDependencies Dependencies) configuration() Configuration {
	if commandDependencies.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return commandDependencies.ConfigurationProvider().sanitize()
}

func (commandDependencies Dependencies) logger() *zap.Logger {
	if commandDependencies.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := commandDependencies.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (commandDependencies Dependencies) humanReadableLogging() bool {
	if commandDependencies.HumanReadableLoggingProvider == nil {
		return false
	}
	return commandDependencies.HumanReadableLoggingProvider()
}

func (commandDependencies Dependencies) registry() *hosting.Registry {
	if commandDependencies.Registry != nil {
		return commandDependencies.Registry
	}
	return providers.NewDefaultRegistry()
}

func (commandDependencies Dependencies) console(command *cobra.Command) *ui.Console {
	colorMode := ui.ColorModeAuto
	if commandDependencies.ColorModeProvider != nil {
		colorMode = commandDependencies.ColorModeProvider()
	}
	output := command.OutOrStdout()
	return ui.NewConsole(output, ui.ColorsEnabled(output, colorMode))
}

func (commandDependencies Dependencies) tokenResolver(configuration Configuration) *credentials.Resolver {
	credentialsPath := configuration.Credentials.Path
	if len(credentialsPath) > 0 {
		credentialsPath = repositoryHomeDirectoryExpander.Expand(credentialsPath)
	}
	return credentials.NewResolver(
		credentials.NewLoader(dependencies.ResolveFileSystem(commandDependencies.FileSystem)),
		credentialsPath,
		commandDependencies.EnvironmentLookup,
	)
}

// provider resolves the token of providerName and constructs the provider.
func (commandDependencies Dependencies) provider(resolver *credentials.Resolver, configuration Configuration, providerName hosting.ProviderName, explicitToken string) (hosting.Provider, error) {
	token, tokenError := resolver.ResolveToken(string(providerName), explicitToken)
	if tokenError != nil {
		return nil, tokenError
	}
	commandDependencies.logger().Debug(
		tokenResolvedLogMessageConstant,
		zap.String(logFieldProviderConstant, string(providerName)),
		zap.String(logFieldTokenSourceConstant, string(token.Source)),
	)
	return commandDependencies.registry().Create(providerName, hosting.Settings{
		Token:   token.Value,
		BaseURL: configuration.BaseURL(providerName),
	})
}

// repositoryManager builds the git working-copy manager. Console logging renders git events as sentences
// instead of structured entries.
func (commandDependencies Dependencies) repositoryManager() (shared.GitRepositoryManager, error) {
	if commandDependencies.GitManager != nil {
		return commandDependencies.GitManager, nil
	}
	logger := commandDependencies.logger()
	executorLogger := logger
	var observers []execshell.CommandEventObserver
	if commandDependencies.humanReadableLogging() {
		executorLogger = zap.NewNop()
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(commandDependencies.GitExecutor, executorLogger, observers...)
	if executorError != nil {
		return nil, executorError
	}
	return dependencies.ResolveGitRepositoryManager(nil, gitExecutor)
}

func (commandDependencies Dependencies) scanner(privateMarker string) shared.RepositoryScanner {
	return dependencies.ResolveRepositoryScanner(nil, commandDependencies.FileSystem, privateMarker)
}

// resolveRoot prefers --root over the configured root and expands a leading tilde.
func resolveRoot(command *cobra.Command, values *flagutils.SelectionFlagValues, configuration Configuration) string {
	root := flagutils.Override(command, flagutils.RootFlagName, values.Root, configuration.Mirror.Root)
	return repositoryHomeDirectoryExpander.Expand(root)
}

// resolveFailurePolicy prefers --keep-going over the configured policy.
func resolveFailurePolicy(command *cobra.Command, values *flagutils.SelectionFlagValues, configuration Configuration) shared.FailurePolicy {
	keepGoing := configuration.Mirror.KeepGoing
	if command.Flags().Changed(flagutils.KeepGoingFlagName) {
		keepGoing = values.KeepGoing
	}
	return shared.FailurePolicyFromBool(keepGoing)
}

// resolveProviderName prefers the provider flag over the configured default.
func resolveProviderName(command *cobra.Command, flagName string, flagValue string, configured string) hosting.ProviderName {
	return hosting.ProviderName(strings.ToLower(strings.TrimSpace(flagutils.Override(command, flagName, flagValue, configured))))
}

func lookupToken(command *cobra.Command) string {
	token, lookupError := command.Flags().GetString(flagutils.TokenFlagName)
	if lookupError != nil {
		return ""
	}
	return token
}
