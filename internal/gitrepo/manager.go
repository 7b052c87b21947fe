package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/temirov/giberg/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	remoteNameRequiredMessageConstant           = "remote name must be provided"
	remoteURLRequiredMessageConstant            = "remote url must be provided"
	repositoryOpenErrorTemplateConstant         = "unable to open repository %s: %w"
	remoteLookupErrorTemplateConstant           = "unable to inspect remote %s in %s: %w"
	gitCloneSubcommandConstant                  = "clone"
	gitResetSubcommandConstant                  = "reset"
	gitResetHardFlagConstant                    = "--hard"
	gitPullSubcommandConstant                   = "pull"
	gitRemoteSubcommandConstant                 = "remote"
	gitRemoteAddSubcommandConstant              = "add"
	gitRemoteSetURLSubcommandConstant           = "set-url"
	gitPushSubcommandConstant                   = "push"
	gitPushAllFlagConstant                      = "--all"
	gitPushForceFlagConstant                    = "--force"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRemoteNameRequired indicates an empty remote name.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// ErrRemoteURLRequired indicates an empty remote URL.
var ErrRemoteURLRequired = errors.New(remoteURLRequiredMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RemoteConfigurationAction reports how ConfigureRemote converged the remote.
type RemoteConfigurationAction string

// Remote configuration outcomes.
const (
	RemoteConfigurationAdded   RemoteConfigurationAction = RemoteConfigurationAction("added")
	RemoteConfigurationUpdated RemoteConfigurationAction = RemoteConfigurationAction("updated")
)

// RepositoryOpener opens a local working copy for inspection.
type RepositoryOpener func(repositoryPath string) (*git.Repository, error)

// RepositoryManager performs working-copy operations. Mutations run through the git executable so that
// the user's credential and transport configuration apply; read-only inspection uses go-git.
type RepositoryManager struct {
	executor         GitExecutor
	repositoryOpener RepositoryOpener
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor, repositoryOpener: openRepository}, nil
}

func openRepository(repositoryPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: false})
}

// Clone clones remoteURL into destinationPath.
func (manager *RepositoryManager) Clone(executionContext context.Context, remoteURL string, destinationPath string) error {
	trimmedURL := strings.TrimSpace(remoteURL)
	if len(trimmedURL) == 0 {
		return ErrRemoteURLRequired
	}
	trimmedPath := strings.TrimSpace(destinationPath)
	if len(trimmedPath) == 0 {
		return ErrRepositoryPathRequired
	}
	return manager.executeGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitCloneSubcommandConstant, trimmedURL, trimmedPath},
	})
}

// ResetHard discards tracked local modifications.
func (manager *RepositoryManager) ResetHard(executionContext context.Context, repositoryPath string) error {
	return manager.executeInRepository(executionContext, repositoryPath, gitResetSubcommandConstant, gitResetHardFlagConstant)
}

// Pull fetches and integrates the upstream of the current branch.
func (manager *RepositoryManager) Pull(executionContext context.Context, repositoryPath string) error {
	return manager.executeInRepository(executionContext, repositoryPath, gitPullSubcommandConstant)
}

// RemoteURL returns the first URL configured for remoteName and whether the remote exists.
func (manager *RepositoryManager) RemoteURL(repositoryPath string, remoteName string) (string, bool, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return "", false, ErrRepositoryPathRequired
	}
	trimmedRemote := strings.TrimSpace(remoteName)
	if len(trimmedRemote) == 0 {
		return "", false, ErrRemoteNameRequired
	}

	repository, openError := manager.repositoryOpener(trimmedPath)
	if openError != nil {
		return "", false, fmt.Errorf(repositoryOpenErrorTemplateConstant, trimmedPath, openError)
	}

	remote, remoteError := repository.Remote(trimmedRemote)
	if errors.Is(remoteError, git.ErrRemoteNotFound) {
		return "", false, nil
	}
	if remoteError != nil {
		return "", false, fmt.Errorf(remoteLookupErrorTemplateConstant, trimmedRemote, trimmedPath, remoteError)
	}

	remoteURLs := remote.Config().URLs
	if len(remoteURLs) == 0 {
		return "", true, nil
	}
	return remoteURLs[0], true, nil
}

// ConfigureRemote points remoteName at remoteURL, adding the remote when absent and rewriting it otherwise.
func (manager *RepositoryManager) ConfigureRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) (RemoteConfigurationAction, error) {
	trimmedURL := strings.TrimSpace(remoteURL)
	if len(trimmedURL) == 0 {
		return "", ErrRemoteURLRequired
	}

	_, remoteExists, lookupError := manager.RemoteURL(repositoryPath, remoteName)
	if lookupError != nil {
		return "", lookupError
	}

	trimmedRemote := strings.TrimSpace(remoteName)
	if remoteExists {
		updateError := manager.executeInRepository(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitRemoteSetURLSubcommandConstant, trimmedRemote, trimmedURL)
		if updateError != nil {
			return "", updateError
		}
		return RemoteConfigurationUpdated, nil
	}

	addError := manager.executeInRepository(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, trimmedRemote, trimmedURL)
	if addError != nil {
		return "", addError
	}
	return RemoteConfigurationAdded, nil
}

// PushAllBranches pushes every local branch to remoteName, overwriting diverged history when force is set.
func (manager *RepositoryManager) PushAllBranches(executionContext context.Context, repositoryPath string, remoteName string, force bool) error {
	trimmedRemote := strings.TrimSpace(remoteName)
	if len(trimmedRemote) == 0 {
		return ErrRemoteNameRequired
	}
	arguments := []string{gitPushSubcommandConstant, gitPushAllFlagConstant}
	if force {
		arguments = append(arguments, gitPushForceFlagConstant)
	}
	arguments = append(arguments, trimmedRemote)
	return manager.executeInRepository(executionContext, repositoryPath, arguments...)
}

func (manager *RepositoryManager) executeInRepository(executionContext context.Context, repositoryPath string, arguments ...string) error {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return ErrRepositoryPathRequired
	}
	return manager.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: trimmedPath,
	})
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, details execshell.CommandDetails) error {
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	_, executionError := manager.executor.ExecuteGit(executionContext, details)
	return executionError
}
