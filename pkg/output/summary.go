package output

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/localgpt-vision/llmprobe/pkg/check"
)

// statusText maps a status to its short table label.
func statusText(s check.Status) string {
	switch s {
	case check.StatusWorking:
		return "working"
	case check.StatusNotConfigured:
		return "not configured"
	case check.StatusNotInstalled:
		return "not installed"
	default:
		return "error"
	}
}

// Summary renders one table row per result.
func Summary(w io.Writer, results []check.Result, color bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if !color {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"#", "Probe", "Status", "Detail"})

	for i, r := range results {
		status := statusText(r.Status)
		if color {
			switch r.Status {
			case check.StatusWorking:
				status = text.FgGreen.Sprint(status)
			case check.StatusError:
				status = text.FgRed.Sprint(status)
			default:
				status = text.FgYellow.Sprint(status)
			}
		}
		detail := r.Detail
		if detail == "" {
			detail = r.Hint
		}
		t.AppendRow(table.Row{strconv.Itoa(i + 1), r.Name, status, detail})
	}
	t.Render()
}
