package output

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Progress shows a spinner on a terminal while a probe runs.
// On anything but a terminal it does nothing.
type Progress struct {
	s *spinner.Spinner
}

// NewProgress returns a Progress writing to f when f is a terminal.
func NewProgress(f *os.File) *Progress {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return &Progress{}
	}
	return newProgress(f)
}

func newProgress(w io.Writer) *Progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	return &Progress{s: s}
}

// Start shows the spinner with a suffix.
func (p *Progress) Start(suffix string) {
	if p.s == nil {
		return
	}
	p.s.Suffix = " " + suffix
	p.s.Start()
}

// Stop clears the spinner.
func (p *Progress) Stop() {
	if p.s == nil {
		return
	}
	p.s.Stop()
}
