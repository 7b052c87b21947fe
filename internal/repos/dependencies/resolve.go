package dependencies

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/giberg/internal/execshell"
	"github.com/temirov/giberg/internal/gitrepo"
	"github.com/temirov/giberg/internal/repos/scanner"
	"github.com/temirov/giberg/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing afero.Fs) afero.Fs {
	if existing != nil {
		return existing
	}
	return afero.NewOsFs()
}

// ResolveRepositoryScanner returns the provided scanner or one backed by the filesystem.
func ResolveRepositoryScanner(existing shared.RepositoryScanner, fileSystem afero.Fs, privateMarker string) shared.RepositoryScanner {
	if existing != nil {
		return existing
	}
	return scanner.NewScanner(ResolveFileSystem(fileSystem), privateMarker)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observers ...execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveStatusReporter returns the provided reporter or a no-op reporter.
func ResolveStatusReporter(existing shared.StatusReporter) shared.StatusReporter {
	if existing != nil {
		return existing
	}
	return shared.NoopStatusReporter{}
}
