package shared

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/giberg/internal/execshell"
	"github.com/temirov/giberg/internal/gitrepo"
	"github.com/temirov/giberg/internal/hosting"
)

const (
	// DefaultRootDirectoryConstant is the directory holding one working copy per repository.
	DefaultRootDirectoryConstant    = "./repos"
	// DefaultMirrorRemoteNameConstant names the remote that points at the upload target.
	DefaultMirrorRemoteNameConstant = "codeberg"
	// DefaultPrivateMarkerConstant is the file whose presence marks a working copy as private.
	DefaultPrivateMarkerConstant    = ".private"

	repositoryNameEmptyMessageConstant     = "repository name must not be empty"
	repositoryNameSeparatorMessageConstant = "repository name must not contain path separators"
	repositoryNameReservedMessageConstant  = "repository name must not be a relative path element"
	repositoryNameInvalidTemplateConstant  = "%w: %s"
	repositoryPathEmptyMessageConstant     = "repository path must not be empty"
	repositoryPathControlMessageConstant   = "repository path must not contain control characters"
	currentDirectoryElementConstant        = "."
	parentDirectoryElementConstant         = ".."
	pathSeparatorCharactersConstant        = `/\`
)

// ErrInvalidRepositoryName wraps every repository name validation failure.
var ErrInvalidRepositoryName = errors.New("invalid repository name")

// ErrInvalidRepositoryPath wraps every repository path validation failure.
var ErrInvalidRepositoryPath = errors.New("invalid repository path")

// RepositoryName is a validated single path element naming a repository.
type RepositoryName string

// NewRepositoryName trims and validates a repository name so it can be joined under the root directory safely.
func NewRepositoryName(raw string) (RepositoryName, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return "", fmt.Errorf(repositoryNameInvalidTemplateConstant, ErrInvalidRepositoryName, repositoryNameEmptyMessageConstant)
	case strings.ContainsAny(trimmed, pathSeparatorCharactersConstant):
		return "", fmt.Errorf(repositoryNameInvalidTemplateConstant, ErrInvalidRepositoryName, repositoryNameSeparatorMessageConstant)
	case trimmed == currentDirectoryElementConstant || trimmed == parentDirectoryElementConstant:
		return "", fmt.Errorf(repositoryNameInvalidTemplateConstant, ErrInvalidRepositoryName, repositoryNameReservedMessageConstant)
	}
	return RepositoryName(trimmed), nil
}

// String returns the name.
func (name RepositoryName) String() string {
	return string(name)
}

// RepositoryPath is a cleaned filesystem path to a working copy or root directory.
type RepositoryPath string

// NewRepositoryPath trims and cleans a filesystem path.
func NewRepositoryPath(raw string) (RepositoryPath, error) {
	if strings.ContainsAny(raw, "\n\r\x00") {
		return "", fmt.Errorf(repositoryNameInvalidTemplateConstant, ErrInvalidRepositoryPath, repositoryPathControlMessageConstant)
	}
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf(repositoryNameInvalidTemplateConstant, ErrInvalidRepositoryPath, repositoryPathEmptyMessageConstant)
	}
	return RepositoryPath(filepath.Clean(trimmed)), nil
}

// Join returns the path of the named repository below this root.
func (path RepositoryPath) Join(name RepositoryName) string {
	return filepath.Join(string(path), string(name))
}

// String returns the path.
func (path RepositoryPath) String() string {
	return string(path)
}

// LocalRepository describes a directory under the root as observed at invocation time.
type LocalRepository struct {
	Name              string
	Path              string
	Exists            bool
	VersionControlled bool
	MarkedPrivate     bool
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes the working-copy operations reconcilers rely on.
type GitRepositoryManager interface {
	Clone(executionContext context.Context, remoteURL string, destinationPath string) error
	ResetHard(executionContext context.Context, repositoryPath string) error
	Pull(executionContext context.Context, repositoryPath string) error
	ConfigureRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) (gitrepo.RemoteConfigurationAction, error)
	PushAllBranches(executionContext context.Context, repositoryPath string, remoteName string, force bool) error
}

// RepositoryScanner inspects the local root directory.
type RepositoryScanner interface {
	ListRepositoryNames(root string) ([]string, error)
	Inspect(root string, name string) (LocalRepository, error)
	EnsureRoot(root string) error
}

// RepositoryAction names a reconciler action in status reports.
type RepositoryAction string

// Reconciler actions.
const (
	RepositoryActionDownload RepositoryAction = RepositoryAction("download")
	RepositoryActionUpload   RepositoryAction = RepositoryAction("upload")
	RepositoryActionDelete   RepositoryAction = RepositoryAction("delete")
)

// StatusReporter receives per-repository progress from reconcilers.
type StatusReporter interface {
	RepositoryStarted(action RepositoryAction, repository string, provider hosting.ProviderName)
	RepositoryCompleted(action RepositoryAction, repository string, provider hosting.ProviderName)
}

// NoopStatusReporter discards every event.
type NoopStatusReporter struct{}

// RepositoryStarted does nothing.
func (NoopStatusReporter) RepositoryStarted(RepositoryAction, string, hosting.ProviderName) {}

// RepositoryCompleted does nothing.
func (NoopStatusReporter) RepositoryCompleted(RepositoryAction, string, hosting.ProviderName) {}
