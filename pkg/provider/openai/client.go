/*
openai implements a minimal client for OpenAI-compatible chat completion
APIs. It is used for OpenAI itself and for Groq, which serves the same
wire format under https://api.groq.com/openai/v1.
*/
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	// Packages
	provider "github.com/localgpt-vision/llmprobe/pkg/provider"
	client "github.com/mutablelogic/go-client"
	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls the chat completions endpoint.
type Client struct {
	*client.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type reqChatCompletion struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrEmptyResponse is returned when the response carries no choices.
var ErrEmptyResponse = errors.New("response contains no choices")

const contentPath = "choices.0.message.content"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for endpoint, e.g. "https://api.openai.com/v1",
// authenticating with a bearer token.
func New(endPoint, apiKey string, opts ...client.ClientOpt) (*Client, error) {
	opts = append(opts, client.OptEndpoint(endPoint))
	opts = append(opts, client.OptReqToken(client.Token{
		Scheme: client.Bearer,
		Value:  apiKey,
	}))
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{c}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete sends a single user message and returns the text of the first choice.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	req, err := client.NewJSONRequest(reqChatCompletion{
		Model:     model,
		Messages:  []message{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	var response json.RawMessage
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("chat", "completions")); err != nil {
		return "", provider.APIError(err)
	}

	return Text(response)
}

// Text extracts the first choice's message content from a raw response.
func Text(response []byte) (string, error) {
	if !gjson.ValidBytes(response) {
		return "", fmt.Errorf("invalid JSON in response")
	}
	content := gjson.GetBytes(response, contentPath)
	if !content.Exists() {
		if msg := gjson.GetBytes(response, "error.message"); msg.Exists() {
			return "", errors.New(msg.String())
		}
		return "", ErrEmptyResponse
	}
	return content.String(), nil
}
