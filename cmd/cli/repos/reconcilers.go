package repos

import (
	"github.com/spf13/cobra"

	"github.com/temirov/giberg/internal/credentials"
	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/mirror"
	"github.com/temirov/giberg/internal/repos/shared"
	flagutils "github.com/temirov/giberg/internal/utils/flags"
)

// reconcilerSettings carries the per-run values a reconciler is built from.
type reconcilerSettings struct {
	configuration Configuration
	resolver      *credentials.Resolver
	providerName  hosting.ProviderName
	explicitToken string
	root          string
	failurePolicy shared.FailurePolicy
	reporter      shared.StatusReporter
}

func newReconcilerSettings(command *cobra.Command, selectionValues *flagutils.SelectionFlagValues, commandDependencies Dependencies, configuration Configuration, reporter shared.StatusReporter) reconcilerSettings {
	return reconcilerSettings{
		configuration: configuration,
		resolver:      commandDependencies.tokenResolver(configuration),
		explicitToken: lookupToken(command),
		root:          resolveRoot(command, selectionValues, configuration),
		failurePolicy: resolveFailurePolicy(command, selectionValues, configuration),
		reporter:      reporter,
	}
}

func (commandDependencies Dependencies) newDownloader(settings reconcilerSettings) (*mirror.Downloader, error) {
	provider, providerError := commandDependencies.provider(settings.resolver, settings.configuration, settings.providerName, settings.explicitToken)
	if providerError != nil {
		return nil, providerError
	}
	repositoryManager, managerError := commandDependencies.repositoryManager()
	if managerError != nil {
		return nil, managerError
	}
	return mirror.NewDownloader(
		mirror.DownloaderDependencies{
			Provider:          provider,
			Scanner:           commandDependencies.scanner(settings.configuration.Mirror.PrivateMarker),
			RepositoryManager: repositoryManager,
			Reporter:          settings.reporter,
			Logger:            commandDependencies.logger(),
		},
		mirror.DownloaderOptions{
			Root:          settings.root,
			FailurePolicy: settings.failurePolicy,
		},
	)
}

func (commandDependencies Dependencies) newUploader(settings reconcilerSettings) (*mirror.Uploader, error) {
	provider, providerError := commandDependencies.provider(settings.resolver, settings.configuration, settings.providerName, settings.explicitToken)
	if providerError != nil {
		return nil, providerError
	}
	repositoryManager, managerError := commandDependencies.repositoryManager()
	if managerError != nil {
		return nil, managerError
	}
	return mirror.NewUploader(
		mirror.UploaderDependencies{
			Provider:          provider,
			Scanner:           commandDependencies.scanner(settings.configuration.Mirror.PrivateMarker),
			RepositoryManager: repositoryManager,
			Reporter:          settings.reporter,
			Logger:            commandDependencies.logger(),
		},
		mirror.UploaderOptions{
			Root:          settings.root,
			RemoteName:    settings.configuration.Mirror.RemoteName,
			PrivateMarker: settings.configuration.Mirror.PrivateMarker,
			FailurePolicy: settings.failurePolicy,
		},
	)
}

func (commandDependencies Dependencies) newDeleter(settings reconcilerSettings) (*mirror.Deleter, error) {
	provider, providerError := commandDependencies.provider(settings.resolver, settings.configuration, settings.providerName, settings.explicitToken)
	if providerError != nil {
		return nil, providerError
	}
	return mirror.NewDeleter(
		mirror.DeleterDependencies{
			Provider: provider,
			Reporter: settings.reporter,
			Logger:   commandDependencies.logger(),
		},
		mirror.DeleterOptions{
			FailurePolicy: settings.failurePolicy,
		},
	)
}
