package apicheck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/localgpt-vision/llmprobe/pkg/check"
	"github.com/localgpt-vision/llmprobe/pkg/config"
)

// ExcerptLen bounds the response excerpt shown for a working API.
const ExcerptLen = 50

// Completer sends one prompt to a hosted model and returns its text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// ClientFactory builds a Completer once the credential is known to be set.
// It is only called when a network call is about to happen.
type ClientFactory func(provider config.Provider) (Completer, error)

// Check verifies that a hosted model API accepts the configured credential.
type Check struct {
	Name      string          // e.g. "Google Gemini API"
	Provider  config.Provider // credential, endpoint and model
	Prompt    string          // default: config.DefaultPrompt
	MaxTokens int             // default: config.DefaultMaxTokens
	NewClient ClientFactory   // injected for testing
	Logger    *slog.Logger
}

// Run executes the API check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: c.Name,
	}

	cred := c.Provider.Credential
	if !cred.Configured() {
		return result.NotConfigured(fmt.Sprintf("Add %s to .env file", cred.Name))
	}

	prompt := c.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}
	maxTokens := c.MaxTokens
	if maxTokens == 0 {
		maxTokens = config.DefaultMaxTokens
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("calling model API",
		"probe", c.Name, "endpoint", c.Provider.Endpoint, "model", c.Provider.Model, "credential", cred.String())

	client, err := c.NewClient(c.Provider)
	if err != nil {
		return result.Fail(err)
	}

	text, err := client.Complete(ctx, c.Provider.Model, prompt, maxTokens)
	if err != nil {
		logger.Debug("model API call failed", "probe", c.Name, "error", err)
		return result.Fail(err)
	}

	return result.Working("Response", text, ExcerptLen)
}
