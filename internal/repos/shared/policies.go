package shared

// FailurePolicy specifies how batch operations react to a failing repository.
type FailurePolicy int

const (
	// FailFast stops the batch at the first failure.
	FailFast FailurePolicy = iota
	// KeepGoing continues with the remaining repositories and reports every failure at the end.
	KeepGoing
)

// FailurePolicyFromBool converts a keep-going flag into a policy.
func FailurePolicyFromBool(keepGoing bool) FailurePolicy {
	if keepGoing {
		return KeepGoing
	}
	return FailFast
}

// ShouldContinue reports whether the batch proceeds after a failure.
func (policy FailurePolicy) ShouldContinue() bool {
	return policy == KeepGoing
}
