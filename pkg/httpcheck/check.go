package httpcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/localgpt-vision/llmprobe/pkg/check"
)

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPClient uses the real net/http package.
type RealHTTPClient struct {
	Timeout time.Duration
}

// Do executes an HTTP request.
func (c *RealHTTPClient) Do(req *http.Request) (*http.Response, error) {
	client := &http.Client{
		Timeout: c.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return client.Do(req)
}

// maxBody bounds how much of the response is read.
const maxBody = 64 << 10

// Check verifies that a local model server answers on its version endpoint.
type Check struct {
	Name     string        // e.g. "Ollama Server"
	URL      string        // target URL (required)
	Timeout  time.Duration // request timeout (default: 5s)
	JSONPath string        // gjson path of the value to report (default: "version")
	Hint     string        // shown when the server does not answer
	Client   HTTPClient    // injected for testing
}

// Run executes the server check. Exactly one request is made.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: c.Name,
		Hint: c.Hint,
	}

	parsedURL, err := url.Parse(c.URL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return result.Failf("invalid URL: %s", c.URL)
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	path := c.JSONPath
	if path == "" {
		path = "version"
	}

	client := c.Client
	if client == nil {
		client = &RealHTTPClient{Timeout: timeout}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, http.NoBody)
	if err != nil {
		return result.Failf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return result.Failf("request failed: %v", err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	_ = resp.Body.Close()
	if err != nil {
		return result.Failf("failed to read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return result.Failf("status %d, expected %d", resp.StatusCode, http.StatusOK)
	}

	value := gjson.GetBytes(body, path)
	if !value.Exists() {
		return result.Failf("JSON path %q not found", path)
	}

	result.Hint = ""
	return result.Working("Version", strings.TrimSpace(value.String()), check.MaxDetailLen)
}

// VersionURL joins a server base URL with ollama's version endpoint.
func VersionURL(base string) string {
	return fmt.Sprintf("%s/api/version", strings.TrimRight(base, "/"))
}
