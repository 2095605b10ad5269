package cmdcheck

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/localgpt-vision/llmprobe/pkg/check"
	"github.com/localgpt-vision/llmprobe/pkg/version"
)

// DefaultTimeout bounds the version command.
const DefaultTimeout = 5 * time.Second

// StateInstalled is the status word shown for a tool that answered --version.
const StateInstalled = "Installed"

// Check verifies that a local tool is installed and answers --version.
type Check struct {
	Name        string              // e.g. "Ollama Installation"
	Command     string              // binary to look up, e.g. "ollama"
	VersionArgs []string            // args to get version (default: --version)
	MinVersion  *semver.Constraints // optional version constraint
	InstallHint string              // remediation when the tool is missing
	Timeout     time.Duration       // timeout for version command (default: 5s)
	Runner      CmdRunner           // injected for testing
}

// Run executes the command check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: c.Name,
	}

	runner := c.Runner
	if runner == nil {
		runner = &RealCmdRunner{}
	}

	if _, err := runner.LookPath(c.Command); err != nil {
		return result.NotInstalled(c.InstallHint)
	}

	args := c.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := runner.RunCommandContext(ctx, c.Command, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result.Failf("version command timed out after %s", timeout)
		}
		if ctx.Err() != nil {
			return result.Fail(ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) || errors.Is(err, exec.ErrNotFound) {
			return result.NotInstalled(c.InstallHint)
		}
		if stderr != "" {
			return result.Failf("%v: %s", err, strings.TrimSpace(stderr))
		}
		return result.Fail(err)
	}

	versionOutput := strings.TrimSpace(stdout)
	if versionOutput == "" {
		versionOutput = strings.TrimSpace(stderr)
	}

	if c.MinVersion != nil {
		if err := c.checkVersionConstraint(versionOutput); err != nil {
			return result.Fail(err)
		}
	}

	result.State = StateInstalled
	return result.Working("Version", versionOutput, check.MaxDetailLen)
}

func (c *Check) checkVersionConstraint(output string) error {
	v, err := version.Extract(output)
	if err != nil {
		return fmt.Errorf("could not parse version from output: %w", err)
	}
	if !c.MinVersion.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s", v, c.MinVersion)
	}
	return nil
}
