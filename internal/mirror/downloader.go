package mirror

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/repos/dependencies"
	"github.com/temirov/giberg/internal/repos/shared"
)

const (
	repositoryFieldNameConstant      = "repository"
	providerFieldNameConstant        = "provider"
	pathFieldNameConstant            = "path"
	remoteFieldNameConstant          = "remote"
	actionFieldNameConstant          = "action"
	repositoryCountFieldNameConstant = "repository_count"
	cloneLogMessageConstant          = "Cloning repository"
	refreshLogMessageConstant        = "Refreshing existing working copy"
	batchLogMessageConstant          = "Processing repositories"
)

// DownloaderDependencies are the collaborators of a Downloader.
type DownloaderDependencies struct {
	Provider          hosting.Provider
	Scanner           shared.RepositoryScanner
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.StatusReporter
	Logger            *zap.Logger
}

// DownloaderOptions configure a Downloader.
type DownloaderOptions struct {
	Root          string
	FailurePolicy shared.FailurePolicy
}

// Downloader mirrors remote repositories into the root directory.
type Downloader struct {
	provider          hosting.Provider
	scanner           shared.RepositoryScanner
	repositoryManager shared.GitRepositoryManager
	reporter          shared.StatusReporter
	logger            *zap.Logger
	root              shared.RepositoryPath
	failurePolicy     shared.FailurePolicy
	remote            *remoteState
}

// NewDownloader validates dependencies and options.
func NewDownloader(downloaderDependencies DownloaderDependencies, options DownloaderOptions) (*Downloader, error) {
	if downloaderDependencies.Provider == nil {
		return nil, ErrProviderNotConfigured
	}
	if downloaderDependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	root, rootError := shared.NewRepositoryPath(options.Root)
	if rootError != nil {
		return nil, rootError
	}
	logger := downloaderDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		provider:          downloaderDependencies.Provider,
		scanner:           dependencies.ResolveRepositoryScanner(downloaderDependencies.Scanner, nil, shared.DefaultPrivateMarkerConstant),
		repositoryManager: downloaderDependencies.RepositoryManager,
		reporter:          dependencies.ResolveStatusReporter(downloaderDependencies.Reporter),
		logger:            logger,
		root:              root,
		failurePolicy:     options.FailurePolicy,
		remote:            newRemoteState(downloaderDependencies.Provider),
	}, nil
}

// DownloadAll downloads every repository the provider lists.
func (downloader *Downloader) DownloadAll(executionContext context.Context) error {
	repositories, listError := downloader.remote.list(executionContext)
	if listError != nil {
		return listError
	}
	names := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		names = append(names, repository.Name)
	}
	return downloader.DownloadNames(executionContext, names)
}

// DownloadNames downloads the named repositories in order.
func (downloader *Downloader) DownloadNames(executionContext context.Context, names []string) error {
	downloader.logger.Debug(batchLogMessageConstant, zap.String(actionFieldNameConstant, string(shared.RepositoryActionDownload)), zap.Int(repositoryCountFieldNameConstant, len(names)))
	return runBatch(executionContext, downloader.failurePolicy, names, downloader.DownloadByName)
}

// DownloadByName clones the named repository or refreshes an existing working copy.
// An unknown name fails with NotFoundError before the filesystem is touched.
func (downloader *Downloader) DownloadByName(executionContext context.Context, name string) error {
	repositoryName, nameError := shared.NewRepositoryName(name)
	if nameError != nil {
		return nameError
	}
	repository, found, findError := downloader.remote.find(executionContext, repositoryName.String())
	if findError != nil {
		return findError
	}
	if !found {
		return NotFoundError{Subject: NotFoundSubjectRepository, Name: repositoryName.String(), Location: string(downloader.provider.Name())}
	}
	return downloader.download(executionContext, repository)
}

func (downloader *Downloader) download(executionContext context.Context, repository hosting.RemoteRepository) error {
	providerName := downloader.provider.Name()
	downloader.reporter.RepositoryStarted(shared.RepositoryActionDownload, repository.Name, providerName)

	if rootError := downloader.scanner.EnsureRoot(downloader.root.String()); rootError != nil {
		return rootError
	}
	localRepository, inspectError := downloader.scanner.Inspect(downloader.root.String(), repository.Name)
	if inspectError != nil {
		return inspectError
	}

	fields := []zap.Field{
		zap.String(repositoryFieldNameConstant, repository.Name),
		zap.String(providerFieldNameConstant, string(providerName)),
		zap.String(pathFieldNameConstant, localRepository.Path),
	}

	if localRepository.Exists {
		if !localRepository.VersionControlled {
			return InvalidStateError{Path: localRepository.Path, Reason: notVersionControlledReasonConstant}
		}
		downloader.logger.Info(refreshLogMessageConstant, fields...)
		if resetError := downloader.repositoryManager.ResetHard(executionContext, localRepository.Path); resetError != nil {
			return CommandError{Operation: commandOperationResetConstant, Repository: repository.Name, Cause: resetError}
		}
		if pullError := downloader.repositoryManager.Pull(executionContext, localRepository.Path); pullError != nil {
			return CommandError{Operation: commandOperationPullConstant, Repository: repository.Name, Cause: pullError}
		}
	} else {
		cloneURL, urlError := downloader.provider.AuthenticatedURL(repository, repository.Owner)
		if urlError != nil {
			return urlError
		}
		downloader.logger.Info(cloneLogMessageConstant, fields...)
		if cloneError := downloader.repositoryManager.Clone(executionContext, cloneURL, localRepository.Path); cloneError != nil {
			return CommandError{Operation: commandOperationCloneConstant, Repository: repository.Name, Cause: cloneError}
		}
	}

	downloader.reporter.RepositoryCompleted(shared.RepositoryActionDownload, repository.Name, providerName)
	return nil
}
