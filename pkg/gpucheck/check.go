// Package gpucheck reports which accelerator a local inference runtime
// could use: CUDA, Apple MPS, or CPU only.
package gpucheck

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/localgpt-vision/llmprobe/pkg/check"
	"github.com/localgpt-vision/llmprobe/pkg/cmdcheck"
)

// DriverVersionFile is exposed by the NVIDIA kernel module on Linux.
const DriverVersionFile = "/proc/driver/nvidia/version"

const queryTimeout = 5 * time.Second

var driverRegex = regexp.MustCompile(`Kernel Module\s+([0-9][0-9.]*)`)

// Check queries local accelerator support.
type Check struct {
	Name   string             // e.g. "Local Model Support"
	Host   Host               // injected for testing
	Runner cmdcheck.CmdRunner // runs nvidia-smi; injected for testing
}

// Run executes the accelerator check. A host without a GPU is still
// reported as working, with the CPU fallback as detail.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: c.Name,
	}

	host := c.Host
	if host == nil {
		host = &RealHost{}
	}
	runner := c.Runner
	if runner == nil {
		runner = &cmdcheck.RealCmdRunner{}
	}

	gpu, ok, err := c.detectCUDA(ctx, host, runner)
	if err != nil {
		return result.Fail(err)
	}
	if ok {
		return result.Working("CUDA", "Available ("+gpu+")", check.MaxDetailLen)
	}

	if host.OS() == "darwin" && host.Arch() == "arm64" {
		return result.Working("MPS (Apple Silicon)", "Available", check.MaxDetailLen)
	}

	return result.Working("Note", "No GPU detected, using CPU ("+host.CPU()+")", check.MaxDetailLen)
}

// detectCUDA looks for the NVIDIA driver, then asks nvidia-smi for the
// device name. A missing driver or tool is not an error.
func (c *Check) detectCUDA(ctx context.Context, host Host, runner cmdcheck.CmdRunner) (string, bool, error) {
	var driver string
	if host.OS() == "linux" {
		data, err := host.ReadFile(DriverVersionFile)
		switch {
		case err == nil:
			driver = "driver unknown"
			if m := driverRegex.FindSubmatch(data); m != nil {
				driver = "driver " + string(m[1])
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return "", false, err
		}
	}

	if _, err := runner.LookPath("nvidia-smi"); err != nil {
		return driver, driver != "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stdout, _, err := runner.RunCommandContext(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// nvidia-smi present but no usable device
			return driver, driver != "", nil
		}
		return "", false, err
	}

	name := strings.TrimSpace(strings.SplitN(strings.TrimSpace(stdout), "\n", 2)[0])
	if name == "" {
		return driver, driver != "", nil
	}
	return name, true, nil
}
