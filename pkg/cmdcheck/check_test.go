package cmdcheck

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/localgpt-vision/llmprobe/pkg/check"
)

// mockCmdRunner implements CmdRunner for testing.
type mockCmdRunner struct {
	LookPathFunc   func(file string) (string, error)
	RunCommandFunc func(ctx context.Context, name string, args ...string) (string, string, error)
	runs           int
}

func (m *mockCmdRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

func (m *mockCmdRunner) RunCommandContext(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	m.runs++
	return m.RunCommandFunc(ctx, name, args...)
}

func found(string) (string, error) { return "/usr/local/bin/ollama", nil }

const hint = "Install from https://ollama.ai"

func TestCommandCheck_NotFound(t *testing.T) {
	runner := &mockCmdRunner{
		LookPathFunc: func(file string) (string, error) {
			return "", exec.ErrNotFound
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", InstallHint: hint, Runner: runner}
	result := c.Run(context.Background())

	if result.Status != check.StatusNotInstalled {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusNotInstalled)
	}
	if result.Hint != hint {
		t.Errorf("Hint = %q, want %q", result.Hint, hint)
	}
	if runner.runs != 0 {
		t.Errorf("command ran %d times, want 0", runner.runs)
	}
}

func TestCommandCheck_Found(t *testing.T) {
	runner := &mockCmdRunner{
		LookPathFunc: found,
		RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			if name != "ollama" || len(args) != 1 || args[0] != "--version" {
				t.Errorf("unexpected command %s %v", name, args)
			}
			return "ollama version is 0.5.7\n", "", nil
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", Runner: runner}
	result := c.Run(context.Background())

	if result.Status != check.StatusWorking {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusWorking)
	}
	if result.Label != "Version" || result.Detail != "ollama version is 0.5.7" {
		t.Errorf("Label, Detail = %q, %q", result.Label, result.Detail)
	}
	if result.StateText() != StateInstalled {
		t.Errorf("StateText() = %q, want %q", result.StateText(), StateInstalled)
	}
}

func TestCommandCheck_VersionOnStderr(t *testing.T) {
	runner := &mockCmdRunner{
		LookPathFunc: found,
		RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			return "", "Warning: could not connect to a running Ollama instance\nclient version is 0.5.7", nil
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", Runner: runner}
	result := c.Run(context.Background())

	if result.Status != check.StatusWorking {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusWorking)
	}
	if len(result.Detail) > check.MaxDetailLen {
		t.Errorf("len(Detail) = %d", len(result.Detail))
	}
}

func TestCommandCheck_NonZeroExit(t *testing.T) {
	runner := &mockCmdRunner{
		LookPathFunc: found,
		RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			return "", "boom", &exec.ExitError{}
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", InstallHint: hint, Runner: runner}
	result := c.Run(context.Background())

	if result.Status != check.StatusNotInstalled {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusNotInstalled)
	}
}

func TestCommandCheck_Timeout(t *testing.T) {
	runner := &mockCmdRunner{
		LookPathFunc: found,
		RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			<-ctx.Done()
			return "", "", ctx.Err()
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", Timeout: 20 * time.Millisecond, Runner: runner}

	start := time.Now()
	result := c.Run(context.Background())

	if result.Status != check.StatusError {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusError)
	}
	if result.Detail != "version command timed out after 20ms" {
		t.Errorf("Detail = %q", result.Detail)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("check took %s, should stop at the timeout", elapsed)
	}
}

func TestCommandCheck_DefaultTimeout(t *testing.T) {
	var deadline time.Time
	runner := &mockCmdRunner{
		LookPathFunc: found,
		RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			deadline, _ = ctx.Deadline()
			return "ollama version is 0.1.0", "", nil
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", Runner: runner}
	start := time.Now()
	c.Run(context.Background())

	if d := deadline.Sub(start); d <= 0 || d > DefaultTimeout+time.Second {
		t.Errorf("deadline in %s, want about %s", d, DefaultTimeout)
	}
}

func TestCommandCheck_OtherError(t *testing.T) {
	runner := &mockCmdRunner{
		LookPathFunc: found,
		RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
			return "", "", errors.New("permission denied")
		},
	}

	c := &Check{Name: "Ollama Installation", Command: "ollama", Runner: runner}
	result := c.Run(context.Background())

	if result.Status != check.StatusError {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusError)
	}
	if result.Detail != "permission denied" {
		t.Errorf("Detail = %q", result.Detail)
	}
}

func TestCommandCheck_MinVersion(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		constraint string
		wantStatus check.Status
	}{
		{"satisfied", "ollama version is 0.5.7", ">= 0.3.0", check.StatusWorking},
		{"too old", "ollama version is 0.1.32", ">= 0.3.0", check.StatusError},
		{"unparseable", "ollama dev build", ">= 0.3.0", check.StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockCmdRunner{
				LookPathFunc: found,
				RunCommandFunc: func(ctx context.Context, name string, args ...string) (string, string, error) {
					return tt.output, "", nil
				},
			}
			cs, err := semver.NewConstraint(tt.constraint)
			if err != nil {
				t.Fatalf("NewConstraint: %v", err)
			}

			c := &Check{Name: "Ollama Installation", Command: "ollama", MinVersion: cs, Runner: runner}
			result := c.Run(context.Background())

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (detail %q)", result.Status, tt.wantStatus, result.Detail)
			}
		})
	}
}
