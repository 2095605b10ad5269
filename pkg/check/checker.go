package check

import "context"

// Checker is implemented by all probe types.
// Each probe inspects one external capability and returns a Result;
// it never panics or returns an error of its own.
//
// Implementations:
//   - apicheck.Check: calls a hosted model API with a short prompt
//   - gpucheck.Check: queries local accelerator support
//   - cmdcheck.Check: verifies a local tool is installed
//   - httpcheck.Check: checks a local model server answers
type Checker interface {
	Run(ctx context.Context) Result
}
