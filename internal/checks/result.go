package checks

// Result is the outcome of evaluating a single check.
type Result struct {
	// CheckName identifies which check produced this result.
	CheckName string

	// Reason explains why the check failed. Empty for passing checks.
	Reason string
}

// Passed reports whether the check passed.
func (r Result) Passed() bool {
	return r.Reason == ""
}

// NewPassResult creates a passing result for the named check.
func NewPassResult(checkName string) Result {
	return Result{
		CheckName: checkName,
	}
}

// NewFailResult creates a failing result with a human-readable reason.
func NewFailResult(checkName, reason string) Result {
	return Result{
		CheckName: checkName,
		Reason:    reason,
	}
}
