package mirror

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/repos/dependencies"
	"github.com/temirov/giberg/internal/repos/shared"
)

const (
	deleteLogMessageConstant = "Deleting remote repository"
)

// DeleterDependencies are the collaborators of a Deleter.
type DeleterDependencies struct {
	Provider hosting.Provider
	Reporter shared.StatusReporter
	Logger   *zap.Logger
}

// DeleterOptions configure a Deleter.
type DeleterOptions struct {
	FailurePolicy shared.FailurePolicy
}

// Deleter removes repositories from the provider immediately and without confirmation.
type Deleter struct {
	provider      hosting.Provider
	reporter      shared.StatusReporter
	logger        *zap.Logger
	failurePolicy shared.FailurePolicy
	remote        *remoteState
}

// NewDeleter validates dependencies.
func NewDeleter(deleterDependencies DeleterDependencies, options DeleterOptions) (*Deleter, error) {
	if deleterDependencies.Provider == nil {
		return nil, ErrProviderNotConfigured
	}
	logger := deleterDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deleter{
		provider:      deleterDependencies.Provider,
		reporter:      dependencies.ResolveStatusReporter(deleterDependencies.Reporter),
		logger:        logger,
		failurePolicy: options.FailurePolicy,
		remote:        newRemoteState(deleterDependencies.Provider),
	}, nil
}

// DeleteAll deletes every repository the provider lists.
func (deleter *Deleter) DeleteAll(executionContext context.Context) error {
	repositories, listError := deleter.remote.list(executionContext)
	if listError != nil {
		return listError
	}
	snapshot := append([]hosting.RemoteRepository{}, repositories...)
	deleter.logger.Debug(batchLogMessageConstant, zap.String(actionFieldNameConstant, string(shared.RepositoryActionDelete)), zap.Int(repositoryCountFieldNameConstant, len(snapshot)))

	owners := make(map[string]string, len(snapshot))
	names := make([]string, 0, len(snapshot))
	for _, repository := range snapshot {
		owners[repository.Name] = repository.Owner
		names = append(names, repository.Name)
	}
	return runBatch(executionContext, deleter.failurePolicy, names, func(batchContext context.Context, name string) error {
		return deleter.delete(batchContext, owners[name], name)
	})
}

// DeleteNames deletes the named repositories in order.
func (deleter *Deleter) DeleteNames(executionContext context.Context, names []string) error {
	deleter.logger.Debug(batchLogMessageConstant, zap.String(actionFieldNameConstant, string(shared.RepositoryActionDelete)), zap.Int(repositoryCountFieldNameConstant, len(names)))
	return runBatch(executionContext, deleter.failurePolicy, names, deleter.DeleteByName)
}

// DeleteByName deletes the named repository of the authenticated user.
func (deleter *Deleter) DeleteByName(executionContext context.Context, name string) error {
	repositoryName, nameError := shared.NewRepositoryName(name)
	if nameError != nil {
		return nameError
	}
	return deleter.delete(executionContext, "", repositoryName.String())
}

func (deleter *Deleter) delete(executionContext context.Context, owner string, name string) error {
	providerName := deleter.provider.Name()
	deleter.reporter.RepositoryStarted(shared.RepositoryActionDelete, name, providerName)

	if len(owner) == 0 {
		username, userError := deleter.remote.currentUsername(executionContext)
		if userError != nil {
			return userError
		}
		owner = username
	}

	deleter.logger.Info(deleteLogMessageConstant, zap.String(repositoryFieldNameConstant, name), zap.String(providerFieldNameConstant, string(providerName)))
	if deleteError := deleter.provider.DeleteRepository(executionContext, owner, name); deleteError != nil {
		return deleteError
	}
	deleter.remote.forget(owner, name)

	deleter.reporter.RepositoryCompleted(shared.RepositoryActionDelete, name, providerName)
	return nil
}
