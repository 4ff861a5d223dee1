package errs

import "github.com/elaraai/east-go/internal/values"

// Result is the evaluator's tagged outcome: either a value (OK) or a
// structured Error, per §4.3.3's `EvalResult`. The zero Result is invalid;
// always construct one via OK or Err.
type Result struct {
	value values.Value
	err   *Error
}

// OK wraps a successful evaluation result.
func OK(v values.Value) Result { return Result{value: v} }

// Err wraps a failed evaluation result.
func Err(e *Error) Result { return Result{err: e} }

// IsError reports whether this result carries an Error.
func (r Result) IsError() bool { return r.err != nil }

// Value returns the OK value; callers must check IsError first.
func (r Result) Value() values.Value { return r.value }

// Error returns the carried Error, or nil if this Result is OK.
func (r Result) Error() *Error { return r.err }

// WithLocation prepends loc to the carried Error's location stack and
// returns the updated Result; a no-op on an OK Result.
func (r Result) WithLocation(loc Location) Result {
	if r.err == nil {
		return r
	}
	return Err(r.err.WithLocation(loc))
}
