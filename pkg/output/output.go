// Package output renders probe results for humans.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/localgpt-vision/llmprobe/pkg/check"
)

const (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

// Rule is the banner separator line.
var Rule = strings.Repeat("=", 60)

// NextSteps is printed once at the end of every run.
var NextSteps = []string{
	"Configure missing API keys in .env file",
	"Run: python app.py",
	"Open: http://localhost:5050",
}

// Reporter writes the banner, one block per probe and the closing steps.
type Reporter struct {
	w     io.Writer
	color bool
}

// New creates a Reporter writing to w.
func New(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color}
}

// StdoutSupportsColor reports whether stdout can render ANSI colours.
func StdoutSupportsColor() bool {
	return supportscolor.Stdout().SupportsColor
}

// Header prints the opening banner.
func (r *Reporter) Header(title string) {
	fmt.Fprintln(r.w, Rule)
	fmt.Fprintln(r.w, title)
	fmt.Fprintln(r.w, Rule)
	fmt.Fprintln(r.w)
}

// Start prints the numbered probe heading, e.g. "1. Testing Google Gemini API...".
func (r *Reporter) Start(index int, verb, name string) {
	if verb == "" {
		verb = "Checking"
	}
	fmt.Fprintf(r.w, "%d. %s %s...\n", index, verb, name)
}

// PrintResult outputs a probe result followed by a blank line.
func (r *Reporter) PrintResult(res check.Result) {
	switch res.Status {
	case check.StatusWorking:
		r.line("Status", r.paint(green, res.StateText()))
		if res.Detail != "" {
			label := res.Label
			if label == "" {
				label = "Response"
			}
			r.line(label, res.Detail)
		}
	case check.StatusNotConfigured:
		r.line("Status", r.paint(yellow, "API Key not configured"))
	case check.StatusNotInstalled:
		r.line("Status", r.paint(yellow, "Not installed"))
	default:
		r.line("Status", r.paint(red, "Error")+" - "+res.Detail)
	}
	if res.Hint != "" {
		r.line("Action", res.Hint)
	}
	fmt.Fprintln(r.w)
}

// Footer prints the closing banner and the fixed next steps.
func (r *Reporter) Footer() {
	fmt.Fprintln(r.w, Rule)
	fmt.Fprintln(r.w, "Test Complete!")
	fmt.Fprintln(r.w, Rule)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Next Steps:")
	for i, step := range NextSteps {
		fmt.Fprintf(r.w, "%d. %s\n", i+1, step)
	}
	fmt.Fprintln(r.w)
}

func (r *Reporter) line(key, value string) {
	fmt.Fprintf(r.w, "   %s: %s\n", key, value)
}

func (r *Reporter) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + reset
}
