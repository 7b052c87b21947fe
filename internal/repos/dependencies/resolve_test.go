package dependencies_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/execshell"
	"github.com/temirov/giberg/internal/repos/dependencies"
	"github.com/temirov/giberg/internal/repos/shared"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func TestResolversPreferProvidedValues(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.Same(testInstance, fileSystem, dependencies.ResolveFileSystem(fileSystem))

	executor := stubGitExecutor{}
	resolvedExecutor, executorError := dependencies.ResolveGitExecutor(executor, nil)
	require.NoError(testInstance, executorError)
	require.Equal(testInstance, executor, resolvedExecutor)

	reporter := shared.NoopStatusReporter{}
	require.Equal(testInstance, reporter, dependencies.ResolveStatusReporter(reporter))
}

func TestResolversBuildDefaults(testInstance *testing.T) {
	require.NotNil(testInstance, dependencies.ResolveFileSystem(nil))
	require.NotNil(testInstance, dependencies.ResolveRepositoryScanner(nil, afero.NewMemMapFs(), ""))
	require.Equal(testInstance, shared.NoopStatusReporter{}, dependencies.ResolveStatusReporter(nil))

	executor, executorError := dependencies.ResolveGitExecutor(nil, zap.NewNop())
	require.NoError(testInstance, executorError)

	manager, managerError := dependencies.ResolveGitRepositoryManager(nil, executor)
	require.NoError(testInstance, managerError)
	require.NotNil(testInstance, manager)
}

func TestResolveGitExecutorRequiresLogger(testInstance *testing.T) {
	_, executorError := dependencies.ResolveGitExecutor(nil, nil)
	require.ErrorIs(testInstance, executorError, execshell.ErrLoggerNotConfigured)
}
