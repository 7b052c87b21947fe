package repos

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/temirov/giberg/internal/interrupt"
	"github.com/temirov/giberg/internal/repos/shared"
	"github.com/temirov/giberg/internal/ui"
)

// ReportedError marks a failure that was already printed to the console. Callers exit non-zero without printing it again.
type ReportedError struct {
	Cause error
}

// Error returns the text of the underlying failure.
func (reportedError ReportedError) Error() string {
	if reportedError.Cause == nil {
		return interrupt.ErrInterrupted.Error()
	}
	return reportedError.Cause.Error()
}

// Unwrap exposes the underlying failure.
func (reportedError ReportedError) Unwrap() error {
	return reportedError.Cause
}

// IsReported reports whether err was already printed to the console.
func IsReported(err error) bool {
	var reportedError ReportedError
	return errors.As(err, &reportedError)
}

// actionFailure attributes a failure to the action that produced it when one command runs several actions.
type actionFailure struct {
	action shared.RepositoryAction
	cause  error
}

func (failure actionFailure) Error() string {
	return failure.cause.Error()
}

func (failure actionFailure) Unwrap() error {
	return failure.cause
}

type boundedOperation func(executionContext context.Context) error

// runWithinBoundary holds an interrupt scope for the duration of operation. Every exit path prints the closing
// line; a failure prints one red line and an interrupt prints the exit-signal line instead.
func runWithinBoundary(command *cobra.Command, console *ui.Console, action shared.RepositoryAction, operation boundedOperation) error {
	scope := interrupt.Acquire(command.Context())
	defer scope.Release()
	defer console.Farewell()

	operationError := operation(scope.Context())
	if scope.Interrupted() {
		console.ReportInterrupted()
		return ReportedError{Cause: interrupt.ErrInterrupted}
	}
	if operationError == nil {
		return nil
	}

	var failure actionFailure
	if errors.As(operationError, &failure) {
		action = failure.action
		operationError = failure.cause
	}
	console.ReportFailure(action, operationError)
	return ReportedError{Cause: operationError}
}
