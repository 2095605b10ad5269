// Package prober runs a fixed, ordered list of probes one after another.
package prober

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/localgpt-vision/llmprobe/pkg/check"
)

// Probe pairs a display name with the check that produces its result.
type Probe struct {
	Name    string
	Verb    string // heading verb, "Testing" or "Checking"
	Checker check.Checker
}

// Prober runs probes sequentially. One probe's failure never prevents
// the next from running.
type Prober struct {
	Probes []Probe

	// OnStart and OnResult are called around each probe, in order.
	// index is 1-based.
	OnStart  func(index int, p Probe)
	OnResult func(index int, r check.Result)

	Logger *slog.Logger
}

// Run executes every probe and returns the results in probe order.
func (p *Prober) Run(ctx context.Context) []check.Result {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]check.Result, 0, len(p.Probes))
	for i, probe := range p.Probes {
		index := i + 1
		if p.OnStart != nil {
			p.OnStart(index, probe)
		}

		start := time.Now()
		r := runIsolated(ctx, probe, logger)
		logger.Debug("probe finished", "probe", probe.Name, "status", string(r.Status), "duration", time.Since(start))

		results = append(results, r)
		if p.OnResult != nil {
			p.OnResult(index, r)
		}
	}
	return results
}

// runIsolated converts a panicking or nameless probe into a plain result.
func runIsolated(ctx context.Context, probe Probe, logger *slog.Logger) (r check.Result) {
	defer func() {
		if v := recover(); v != nil {
			logger.Debug("probe panicked", "probe", probe.Name, "panic", v, "stack", string(debug.Stack()))
			r = check.Result{Name: probe.Name}
			r.Fail(fmt.Errorf("panic: %v", v))
		}
	}()

	if probe.Checker == nil {
		r = check.Result{Name: probe.Name}
		return r.Failf("no checker configured")
	}
	if err := ctx.Err(); err != nil {
		r = check.Result{Name: probe.Name}
		return r.Fail(err)
	}

	r = probe.Checker.Run(ctx)
	if r.Name == "" {
		r.Name = probe.Name
	}
	return r
}

// Summary counts results per status.
type Summary map[check.Status]int

// Summarize builds a Summary from results.
func Summarize(results []check.Result) Summary {
	s := Summary{}
	for _, r := range results {
		s[r.Status]++
	}
	return s
}

// Failed reports whether any probe ended in an error.
func (s Summary) Failed() bool {
	return s[check.StatusError] > 0
}
