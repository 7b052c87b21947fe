package mirror

import (
	"context"

	"go.uber.org/multierr"

	"github.com/temirov/giberg/internal/interrupt"
	"github.com/temirov/giberg/internal/repos/shared"
)

type repositoryOperation func(executionContext context.Context, name string) error

// runBatch applies operation to every name in order. Cancellation is observed between repositories.
func runBatch(executionContext context.Context, policy shared.FailurePolicy, names []string, operation repositoryOperation) error {
	var aggregatedError error
	for _, name := range names {
		if executionContext.Err() != nil {
			return multierr.Append(aggregatedError, interrupt.ErrInterrupted)
		}
		operationError := operation(executionContext, name)
		if operationError == nil {
			continue
		}
		if executionContext.Err() != nil {
			return multierr.Combine(aggregatedError, operationError, interrupt.ErrInterrupted)
		}
		if !policy.ShouldContinue() {
			return operationError
		}
		aggregatedError = multierr.Append(aggregatedError, operationError)
	}
	return aggregatedError
}
