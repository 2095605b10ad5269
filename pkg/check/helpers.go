package check

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Working marks the result as working with a detail line.
func (r *Result) Working(label, detail string, limit int) Result {
	r.Status = StatusWorking
	r.Label = label
	r.Detail = Truncate(detail, limit)
	return *r
}

// NotConfigured marks the result as missing a credential.
func (r *Result) NotConfigured(hint string) Result {
	r.Status = StatusNotConfigured
	r.Hint = hint
	return *r
}

// NotInstalled marks the result as missing an external tool.
func (r *Result) NotInstalled(hint string) Result {
	r.Status = StatusNotInstalled
	r.Hint = hint
	return *r
}

// Fail marks the result as failed, keeping the error message truncated.
func (r *Result) Fail(err error) Result {
	r.Status = StatusError
	r.Err = err
	if err != nil {
		r.Detail = Truncate(err.Error(), MaxDetailLen)
	}
	return *r
}

// Failf marks the result as failed with a formatted error.
func (r *Result) Failf(format string, args ...interface{}) Result {
	return r.Fail(fmt.Errorf(format, args...))
}

// Truncate returns at most limit characters of s with surrounding whitespace
// and line breaks collapsed. A limit <= 0 or above MaxDetailLen is clamped
// to MaxDetailLen.
func Truncate(s string, limit int) string {
	if limit <= 0 || limit > MaxDetailLen {
		limit = MaxDetailLen
	}
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
