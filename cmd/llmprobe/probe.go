package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	client "github.com/mutablelogic/go-client"
	"github.com/mutablelogic/go-client/pkg/transport"
	"github.com/spf13/cobra"

	"github.com/localgpt-vision/llmprobe/pkg/check"
	"github.com/localgpt-vision/llmprobe/pkg/cmdcheck"
	"github.com/localgpt-vision/llmprobe/pkg/config"
	"github.com/localgpt-vision/llmprobe/pkg/output"
	"github.com/localgpt-vision/llmprobe/pkg/prober"
)

const title = "API Connection Test for LocalGPT Vision"

// ErrProbeFailed is returned in strict mode when any probe ended in an error.
var ErrProbeFailed = errors.New("one or more probes failed")

var (
	envFile      string
	verbose      bool
	strict       bool
	summary      bool
	ollamaServer bool
	ollamaMin    string
	httpTimeout  time.Duration
	geminiModel  string
	openaiModel  string
	groqModel    string
)

// newRunner is replaced in tests so no real binaries are spawned.
var newRunner = func() cmdcheck.CmdRunner { return &cmdcheck.RealCmdRunner{} }

func init() {
	f := rootCmd.Flags()
	f.StringVar(&envFile, "env-file", "", "path to .env file (default: search up from current directory)")
	f.BoolVarP(&verbose, "verbose", "v", false, "log probe activity and HTTP traffic to stderr")
	f.BoolVar(&strict, "strict", false, "exit with status 1 when any probe reports an error")
	f.BoolVar(&summary, "summary", false, "print a summary table after the probes")
	f.BoolVar(&ollamaServer, "ollama-server", false, "also check that the ollama server answers on OLLAMA_HOST")
	f.StringVar(&ollamaMin, "ollama-min", "", "required ollama version constraint, e.g. \">= 0.3.0\"")
	f.DurationVar(&httpTimeout, "timeout", config.DefaultHTTPTimeout, "timeout for each hosted API call")
	f.StringVar(&geminiModel, "gemini-model", config.DefaultGeminiModel, "Gemini model to call")
	f.StringVar(&openaiModel, "openai-model", config.DefaultOpenAIModel, "OpenAI model to call")
	f.StringVar(&groqModel, "groq-model", config.DefaultGroqModel, "Groq model to call")
}

func runProbes(cmd *cobra.Command, _ []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := newLogger(stderr, verbose)

	getter, err := envGetter(envFile, logger)
	if err != nil {
		return err
	}

	cfg := config.Load(getter)
	cfg.Gemini.Model = geminiModel
	cfg.OpenAI.Model = openaiModel
	cfg.Groq.Model = groqModel
	cfg.HTTPTimeout = httpTimeout
	if err := cfg.SetOllamaMin(ollamaMin); err != nil {
		return err
	}

	var clientOpts []client.ClientOpt
	if verbose {
		clientOpts = append(clientOpts, traceOpt(stderr))
	}

	color := colorFor(stdout)
	reporter := output.New(stdout, color)
	progress := progressFor(stderr)

	p := &prober.Prober{
		Probes: prober.Default(cfg, prober.Options{
			ClientOpts:   clientOpts,
			OllamaServer: ollamaServer,
			Runner:       newRunner(),
			Logger:       logger,
		}),
		OnStart: func(index int, probe prober.Probe) {
			reporter.Start(index, probe.Verb, probe.Name)
			progress.Start(probe.Name)
		},
		OnResult: func(_ int, r check.Result) {
			progress.Stop()
			reporter.PrintResult(r)
		},
		Logger: logger,
	}

	reporter.Header(title)
	results := p.Run(cmd.Context())
	if summary {
		output.Summary(stdout, results, color)
		fmt.Fprintln(stdout)
	}
	reporter.Footer()

	if strict && prober.Summarize(results).Failed() {
		return ErrProbeFailed
	}
	return nil
}

// envGetter chains the process environment before the nearest .env file.
// Only an explicit --env-file can fail the run; a failed search falls back
// to the process environment.
func envGetter(explicit string, logger *slog.Logger) (config.EnvGetter, error) {
	process := &config.RealEnvGetter{}

	path, err := findEnvFile(explicit)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		if !errors.Is(err, config.ErrEnvFileNotFound) {
			logger.Warn("skipping .env discovery", "error", err)
		}
		return process, nil
	}

	vars, err := config.ReadEnvFile(path)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		logger.Warn("skipping .env file", "path", path, "error", err)
		return process, nil
	}
	logger.Debug("loaded .env file", "path", path, "vars", len(vars))
	return config.Chain{process, vars}, nil
}

func findEnvFile(explicit string) (string, error) {
	if explicit != "" {
		return config.FindEnvFile("", explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.FindEnvFile(wd, "")
}

// traceOpt logs HTTP traffic to w. As the outermost layer it runs before
// vendor key transports add their headers.
func traceOpt(w io.Writer) client.ClientOpt {
	return client.OptTransport(func(next http.RoundTripper) http.RoundTripper {
		return transport.NewLogging(w, next, true)
	})
}

func colorFor(w io.Writer) bool {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return output.StdoutSupportsColor()
	}
	return false
}

func progressFor(w io.Writer) *output.Progress {
	if f, ok := w.(*os.File); ok {
		return output.NewProgress(f)
	}
	return output.NewProgress(nil)
}
