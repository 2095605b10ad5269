package check

// Status represents the outcome of a probe.
type Status string

const (
	StatusWorking       Status = "Working"
	StatusNotConfigured Status = "NotConfigured"
	StatusNotInstalled  Status = "NotInstalled"
	StatusError         Status = "Error"
)

// MaxDetailLen bounds the length of Result.Detail.
const MaxDetailLen = 80

// Result holds the outcome of a single probe.
type Result struct {
	Name   string // e.g., "Google Gemini API", "Ollama Installation"
	Status Status
	State  string // status word for a working result; empty means "Working"
	Label  string // names the detail line: "Response", "Version", "CUDA"
	Detail string // response excerpt or error message, at most MaxDetailLen
	Hint   string // remediation shown for NotConfigured/NotInstalled
	Err    error  // underlying error for StatusError
}

// StateText returns the word shown on the status line for a working result.
func (r Result) StateText() string {
	if r.State == "" {
		return string(StatusWorking)
	}
	return r.State
}

// OK returns true if the probe reported a working capability.
func (r Result) OK() bool {
	return r.Status == StatusWorking
}

// Failed returns true if the probe ended in an error.
// NotConfigured and NotInstalled are not failures.
func (r Result) Failed() bool {
	return r.Status == StatusError
}
