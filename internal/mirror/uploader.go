package mirror

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/repos/dependencies"
	"github.com/temirov/giberg/internal/repos/scanner"
	"github.com/temirov/giberg/internal/repos/shared"
)

const (
	createRemoteLogMessageConstant     = "Creating remote repository"
	updateVisibilityLogMessageConstant = "Updating remote repository visibility"
	remoteConfiguredLogMessageConstant = "Configured mirror remote"
	privateFieldNameConstant           = "private"
)

// UploaderDependencies are the collaborators of an Uploader.
type UploaderDependencies struct {
	Provider          hosting.Provider
	Scanner           shared.RepositoryScanner
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.StatusReporter
	Logger            *zap.Logger
}

// UploaderOptions configure an Uploader.
type UploaderOptions struct {
	Root          string
	RemoteName    string
	PrivateMarker string
	FailurePolicy shared.FailurePolicy
}

// Uploader publishes local working copies to the provider.
type Uploader struct {
	provider          hosting.Provider
	scanner           shared.RepositoryScanner
	repositoryManager shared.GitRepositoryManager
	reporter          shared.StatusReporter
	logger            *zap.Logger
	root              shared.RepositoryPath
	remoteName        string
	failurePolicy     shared.FailurePolicy
	remote            *remoteState
}

// NewUploader validates dependencies and options.
func NewUploader(uploaderDependencies UploaderDependencies, options UploaderOptions) (*Uploader, error) {
	if uploaderDependencies.Provider == nil {
		return nil, ErrProviderNotConfigured
	}
	if uploaderDependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	root, rootError := shared.NewRepositoryPath(options.Root)
	if rootError != nil {
		return nil, rootError
	}
	remoteNameValue := strings.TrimSpace(options.RemoteName)
	if len(remoteNameValue) == 0 {
		remoteNameValue = shared.DefaultMirrorRemoteNameConstant
	}
	remoteName, remoteNameError := shared.NewRepositoryName(remoteNameValue)
	if remoteNameError != nil {
		return nil, remoteNameError
	}
	logger := uploaderDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{
		provider:          uploaderDependencies.Provider,
		scanner:           dependencies.ResolveRepositoryScanner(uploaderDependencies.Scanner, nil, options.PrivateMarker),
		repositoryManager: uploaderDependencies.RepositoryManager,
		reporter:          dependencies.ResolveStatusReporter(uploaderDependencies.Reporter),
		logger:            logger,
		root:              root,
		remoteName:        remoteName.String(),
		failurePolicy:     options.FailurePolicy,
		remote:            newRemoteState(uploaderDependencies.Provider),
	}, nil
}

// UploadAll uploads every working copy found under the root directory.
func (uploader *Uploader) UploadAll(executionContext context.Context) error {
	names, listError := uploader.scanner.ListRepositoryNames(uploader.root.String())
	if errors.Is(listError, scanner.ErrRootNotFound) {
		return NotFoundError{Subject: NotFoundSubjectDirectory, Name: uploader.root.String(), Location: uploader.root.String()}
	}
	if listError != nil {
		return listError
	}
	return uploader.UploadNames(executionContext, names)
}

// UploadNames uploads the named working copies in order.
func (uploader *Uploader) UploadNames(executionContext context.Context, names []string) error {
	uploader.logger.Debug(batchLogMessageConstant, zap.String(actionFieldNameConstant, string(shared.RepositoryActionUpload)), zap.Int(repositoryCountFieldNameConstant, len(names)))
	return runBatch(executionContext, uploader.failurePolicy, names, uploader.UploadByName)
}

// UploadByName converges the remote repository with root/name and force-pushes every branch.
// The local working copy is validated before any request reaches the provider.
func (uploader *Uploader) UploadByName(executionContext context.Context, name string) error {
	repositoryName, nameError := shared.NewRepositoryName(name)
	if nameError != nil {
		return nameError
	}
	localRepository, inspectError := uploader.scanner.Inspect(uploader.root.String(), repositoryName.String())
	if inspectError != nil {
		return inspectError
	}
	if !localRepository.Exists {
		return NotFoundError{Subject: NotFoundSubjectDirectory, Name: repositoryName.String(), Location: uploader.root.String()}
	}
	if !localRepository.VersionControlled {
		return InvalidStateError{Path: localRepository.Path, Reason: notVersionControlledReasonConstant}
	}

	providerName := uploader.provider.Name()
	uploader.reporter.RepositoryStarted(shared.RepositoryActionUpload, localRepository.Name, providerName)

	remoteRepository, convergeError := uploader.convergeRemote(executionContext, localRepository)
	if convergeError != nil {
		return convergeError
	}

	username, userError := uploader.remote.currentUsername(executionContext)
	if userError != nil {
		return userError
	}
	pushURL, urlError := uploader.provider.AuthenticatedURL(remoteRepository, username)
	if urlError != nil {
		return urlError
	}

	action, remoteError := uploader.repositoryManager.ConfigureRemote(executionContext, localRepository.Path, uploader.remoteName, pushURL)
	if remoteError != nil {
		return CommandError{Operation: commandOperationRemoteConstant, Repository: localRepository.Name, Cause: remoteError}
	}
	uploader.logger.Debug(remoteConfiguredLogMessageConstant,
		zap.String(repositoryFieldNameConstant, localRepository.Name),
		zap.String(remoteFieldNameConstant, uploader.remoteName),
		zap.String(actionFieldNameConstant, string(action)),
	)

	if pushError := uploader.repositoryManager.PushAllBranches(executionContext, localRepository.Path, uploader.remoteName, true); pushError != nil {
		return CommandError{Operation: commandOperationPushConstant, Repository: localRepository.Name, Cause: pushError}
	}

	uploader.reporter.RepositoryCompleted(shared.RepositoryActionUpload, localRepository.Name, providerName)
	return nil
}

// convergeRemote creates the remote repository or patches its visibility to match the private marker.
func (uploader *Uploader) convergeRemote(executionContext context.Context, localRepository shared.LocalRepository) (hosting.RemoteRepository, error) {
	fields := []zap.Field{
		zap.String(repositoryFieldNameConstant, localRepository.Name),
		zap.String(providerFieldNameConstant, string(uploader.provider.Name())),
		zap.Bool(privateFieldNameConstant, localRepository.MarkedPrivate),
	}

	if _, listError := uploader.remote.list(executionContext); listError != nil {
		return hosting.RemoteRepository{}, listError
	}
	username, userError := uploader.remote.currentUsername(executionContext)
	if userError != nil {
		return hosting.RemoteRepository{}, userError
	}
	existingRepository, found, findError := uploader.remote.findOwned(executionContext, localRepository.Name, username)
	if findError != nil {
		return hosting.RemoteRepository{}, findError
	}

	if !found {
		uploader.logger.Info(createRemoteLogMessageConstant, fields...)
		createdRepository, createError := uploader.provider.CreateRepository(executionContext, localRepository.Name, localRepository.MarkedPrivate)
		if createError != nil {
			return hosting.RemoteRepository{}, createError
		}
		if len(createdRepository.Name) == 0 {
			createdRepository.Name = localRepository.Name
		}
		if len(createdRepository.Owner) == 0 {
			createdRepository.Owner = username
		}
		createdRepository.Private = localRepository.MarkedPrivate
		uploader.remote.remember(createdRepository)
		return createdRepository, nil
	}

	existingRepository.Owner = username
	uploader.logger.Info(updateVisibilityLogMessageConstant, fields...)
	if updateError := uploader.provider.UpdateRepositoryVisibility(executionContext, username, existingRepository.Name, localRepository.MarkedPrivate); updateError != nil {
		return hosting.RemoteRepository{}, updateError
	}
	existingRepository.Private = localRepository.MarkedPrivate
	uploader.remote.remember(existingRepository)
	return existingRepository, nil
}
