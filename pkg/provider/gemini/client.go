/*
gemini implements a minimal client for the Google Gemini generateContent API
https://ai.google.dev/api/generate-content
*/
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	// Packages
	provider "github.com/localgpt-vision/llmprobe/pkg/provider"
	client "github.com/mutablelogic/go-client"
	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls models/{model}:generateContent.
type Client struct {
	*client.Client
}

// keyTransport sets the API key header. It is installed as the innermost
// transport so request logging never sees the key.
type keyTransport struct {
	next http.RoundTripper
	key  string
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type reqGenerateContent struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig,omitzero"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrEmptyResponse is returned when the response carries no candidate text.
var ErrEmptyResponse = errors.New("response contains no candidates")

// ErrBlocked is returned when the prompt was rejected by safety filters.
var ErrBlocked = errors.New("prompt blocked")

const (
	textPath     = "candidates.0.content.parts.0.text"
	apiKeyHeader = "x-goog-api-key"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for endpoint, e.g.
// "https://generativelanguage.googleapis.com/v1beta". Trace with
// client.OptTransport and transport.NewLogging: the deprecated
// client.OptTrace sits below the key transport and would log the key.
func New(endPoint, apiKey string, opts ...client.ClientOpt) (*Client, error) {
	opts = append(opts, client.OptEndpoint(endPoint))
	opts = append(opts, client.OptTransport(func(next http.RoundTripper) http.RoundTripper {
		return &keyTransport{next: next, key: apiKey}
	}))
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{c}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete sends a single user prompt and returns the first candidate's text.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	req, err := client.NewJSONRequest(reqGenerateContent{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		GenerationConfig: generationConfig{MaxOutputTokens: maxTokens},
	})
	if err != nil {
		return "", err
	}

	var response json.RawMessage
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("models", model+":generateContent")); err != nil {
		return "", provider.APIError(err)
	}

	return Text(response)
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(apiKeyHeader, t.key)
	return t.next.RoundTrip(req)
}

// Text extracts the first candidate's text from a raw response.
func Text(response []byte) (string, error) {
	if !gjson.ValidBytes(response) {
		return "", fmt.Errorf("invalid JSON in response")
	}
	if reason := gjson.GetBytes(response, "promptFeedback.blockReason"); reason.Exists() {
		return "", fmt.Errorf("%w: %s", ErrBlocked, reason.String())
	}
	text := gjson.GetBytes(response, textPath)
	if !text.Exists() {
		if msg := gjson.GetBytes(response, "error.message"); msg.Exists() {
			return "", errors.New(msg.String())
		}
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
