package prober

import (
	"log/slog"

	client "github.com/mutablelogic/go-client"

	"github.com/localgpt-vision/llmprobe/pkg/apicheck"
	"github.com/localgpt-vision/llmprobe/pkg/cmdcheck"
	"github.com/localgpt-vision/llmprobe/pkg/config"
	"github.com/localgpt-vision/llmprobe/pkg/gpucheck"
	"github.com/localgpt-vision/llmprobe/pkg/httpcheck"
	"github.com/localgpt-vision/llmprobe/pkg/provider/gemini"
	"github.com/localgpt-vision/llmprobe/pkg/provider/openai"
)

// Probe names, in run order.
const (
	GeminiProbe       = "Google Gemini API"
	OpenAIProbe       = "OpenAI GPT-4 API"
	GroqProbe         = "Groq API"
	AcceleratorProbe  = "Local Model Support"
	OllamaProbe       = "Ollama Installation"
	OllamaServerProbe = "Ollama Server"
)

// OllamaInstallHint is shown when the ollama binary is missing.
const OllamaInstallHint = "Install from https://ollama.ai"

// Options selects optional probes and collaborators.
type Options struct {
	ClientOpts   []client.ClientOpt // passed to every vendor client
	OllamaServer bool               // also probe the running ollama server
	Runner       cmdcheck.CmdRunner // nil means the real OS runner
	Logger       *slog.Logger
}

// Default returns the fixed probe list for cfg.
func Default(cfg *config.Config, opts Options) []Probe {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runner := opts.Runner
	if runner == nil {
		runner = &cmdcheck.RealCmdRunner{}
	}

	clientOpts := append([]client.ClientOpt{}, opts.ClientOpts...)
	if cfg.HTTPTimeout > 0 {
		clientOpts = append(clientOpts, client.OptTimeout(cfg.HTTPTimeout))
	}

	api := func(name string, p config.Provider, factory apicheck.ClientFactory) Probe {
		return Probe{Name: name, Verb: "Testing", Checker: &apicheck.Check{
			Name:      name,
			Provider:  p,
			Prompt:    cfg.Prompt,
			MaxTokens: cfg.MaxTokens,
			NewClient: factory,
			Logger:    logger,
		}}
	}

	probes := []Probe{
		api(GeminiProbe, cfg.Gemini, GeminiClient(clientOpts...)),
		api(OpenAIProbe, cfg.OpenAI, OpenAIClient(clientOpts...)),
		api(GroqProbe, cfg.Groq, OpenAIClient(clientOpts...)),
		{Name: AcceleratorProbe, Verb: "Checking", Checker: &gpucheck.Check{
			Name:   AcceleratorProbe,
			Runner: runner,
		}},
		{Name: OllamaProbe, Verb: "Checking", Checker: &cmdcheck.Check{
			Name:        OllamaProbe,
			Command:     cfg.OllamaBinary,
			MinVersion:  cfg.OllamaMin,
			InstallHint: OllamaInstallHint,
			Timeout:     cfg.CommandTimeout,
			Runner:      runner,
		}},
	}

	if opts.OllamaServer {
		probes = append(probes, Probe{Name: OllamaServerProbe, Verb: "Checking", Checker: &httpcheck.Check{
			Name: OllamaServerProbe,
			URL:  httpcheck.VersionURL(cfg.OllamaHost),
			Hint: "Start it with: ollama serve",
		}})
	}
	return probes
}

// GeminiClient returns a factory for Gemini clients.
func GeminiClient(opts ...client.ClientOpt) apicheck.ClientFactory {
	return func(p config.Provider) (apicheck.Completer, error) {
		c, err := gemini.New(p.Endpoint, p.Credential.Value, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// OpenAIClient returns a factory for OpenAI-compatible clients.
func OpenAIClient(opts ...client.ClientOpt) apicheck.ClientFactory {
	return func(p config.Provider) (apicheck.Completer, error) {
		c, err := openai.New(p.Endpoint, p.Credential.Value, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
