package mirror

import (
	"errors"
	"fmt"
)

const (
	notFoundErrorTemplateConstant           = "%s '%s' not found in %s"
	invalidStateErrorTemplateConstant       = "'%s' %s"
	commandErrorTemplateConstant            = "git %s failed for '%s': %s"
	notVersionControlledReasonConstant      = "is not a git repository"
	providerMissingMessageConstant          = "hosting provider not configured"
	repositoryManagerMissingMessageConstant = "git repository manager not configured"
	commandOperationCloneConstant           = "clone"
	commandOperationResetConstant           = "reset"
	commandOperationPullConstant            = "pull"
	commandOperationRemoteConstant          = "remote"
	commandOperationPushConstant            = "push"
)

// ErrProviderNotConfigured indicates a reconciler was built without a provider.
var ErrProviderNotConfigured = errors.New(providerMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates a reconciler was built without a repository manager.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// NotFoundSubject names what could not be found.
type NotFoundSubject string

// Not-found subjects.
const (
	NotFoundSubjectRepository NotFoundSubject = NotFoundSubject("repository")
	NotFoundSubjectDirectory  NotFoundSubject = NotFoundSubject("directory")
)

// NotFoundError reports a missing remote repository or local directory.
type NotFoundError struct {
	Subject  NotFoundSubject
	Name     string
	Location string
}

// Error describes what is missing and where it was looked up.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Subject, notFoundError.Name, notFoundError.Location)
}

// InvalidStateError reports a local path that cannot take part in a reconciliation.
type InvalidStateError struct {
	Path   string
	Reason string
}

// Error describes the path and the reason.
func (invalidStateError InvalidStateError) Error() string {
	return fmt.Sprintf(invalidStateErrorTemplateConstant, invalidStateError.Path, invalidStateError.Reason)
}

// CommandError wraps a failed git invocation with the repository it ran for.
type CommandError struct {
	Operation  string
	Repository string
	Cause      error
}

// Error carries the underlying failure text.
func (commandError CommandError) Error() string {
	return fmt.Sprintf(commandErrorTemplateConstant, commandError.Operation, commandError.Repository, commandError.Cause)
}

// Unwrap exposes the underlying failure.
func (commandError CommandError) Unwrap() error {
	return commandError.Cause
}
