// Package config builds the explicit configuration passed to every probe.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Credential env vars and their documented placeholders.
const (
	GoogleAPIKeyEnv = "GOOGLE_API_KEY"
	OpenAIAPIKeyEnv = "OPENAI_API_KEY"
	GroqAPIKeyEnv   = "GROQ_API_KEY"

	GooglePlaceholder = "your_google_api_key_here"
	OpenAIPlaceholder = "your_openai_api_key_here"
	GroqPlaceholder   = "your_groq_api_key_here"
)

// Defaults.
const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultOpenAIEndpoint = "https://api.openai.com/v1"
	DefaultGroqEndpoint   = "https://api.groq.com/openai/v1"
	DefaultOllamaHost     = "http://localhost:11434"

	DefaultGeminiModel = "gemini-1.5-flash-002"
	DefaultOpenAIModel = "gpt-4o"
	DefaultGroqModel   = "llama-3.2-90b-text-preview"

	DefaultPrompt    = "Say 'OK'"
	DefaultMaxTokens = 5

	DefaultOllamaBinary   = "ollama"
	DefaultCommandTimeout = 5 * time.Second
	DefaultHTTPTimeout    = 60 * time.Second
)

// Provider holds everything a hosted API probe needs.
type Provider struct {
	Credential Credential
	Endpoint   string
	Model      string
}

// Config is passed into each probe instead of ambient environment lookups.
type Config struct {
	Gemini Provider
	OpenAI Provider
	Groq   Provider

	Prompt      string
	MaxTokens   int
	HTTPTimeout time.Duration

	OllamaBinary   string
	OllamaHost     string
	CommandTimeout time.Duration
	OllamaMin      *semver.Constraints // nil means any version is accepted
}

// Load builds a Config from the environment seen through getter.
// Base URLs may be overridden with GEMINI_BASE_URL, OPENAI_BASE_URL
// and GROQ_BASE_URL; the Ollama server with OLLAMA_HOST.
func Load(getter EnvGetter) *Config {
	return &Config{
		Gemini: Provider{
			Credential: LookupCredential(getter, GoogleAPIKeyEnv, GooglePlaceholder),
			Endpoint:   envOr(getter, "GEMINI_BASE_URL", DefaultGeminiEndpoint),
			Model:      DefaultGeminiModel,
		},
		OpenAI: Provider{
			Credential: LookupCredential(getter, OpenAIAPIKeyEnv, OpenAIPlaceholder),
			Endpoint:   envOr(getter, "OPENAI_BASE_URL", DefaultOpenAIEndpoint),
			Model:      DefaultOpenAIModel,
		},
		Groq: Provider{
			Credential: LookupCredential(getter, GroqAPIKeyEnv, GroqPlaceholder),
			Endpoint:   envOr(getter, "GROQ_BASE_URL", DefaultGroqEndpoint),
			Model:      DefaultGroqModel,
		},
		Prompt:         DefaultPrompt,
		MaxTokens:      DefaultMaxTokens,
		HTTPTimeout:    DefaultHTTPTimeout,
		OllamaBinary:   DefaultOllamaBinary,
		OllamaHost:     ollamaHost(envOr(getter, "OLLAMA_HOST", DefaultOllamaHost)),
		CommandTimeout: DefaultCommandTimeout,
	}
}

// SetOllamaMin parses a semver constraint such as ">= 0.3.0".
// An empty string clears the constraint.
func (c *Config) SetOllamaMin(constraint string) error {
	if constraint == "" {
		c.OllamaMin = nil
		return nil
	}
	cs, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid ollama version constraint %q: %w", constraint, err)
	}
	c.OllamaMin = cs
	return nil
}

func envOr(getter EnvGetter, key, def string) string {
	if v, ok := getter.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// ollamaHost accepts OLLAMA_HOST in the forms ollama itself does:
// "host:port", "0.0.0.0" or a full URL.
func ollamaHost(v string) string {
	v = strings.TrimRight(v, "/")
	if !strings.Contains(v, "://") {
		v = "http://" + v
	}
	host := strings.TrimPrefix(strings.TrimPrefix(v, "http://"), "https://")
	if !strings.Contains(host, ":") {
		v += ":11434"
	}
	return v
}
