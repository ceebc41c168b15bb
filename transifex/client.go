// Package transifex issues authenticated read-only requests against the
// Transifex v2 REST API and classifies their outcome.
package transifex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the origin and version prefix every request path is appended to.
const DefaultBaseURL = "https://www.transifex.com/api/2"

// Credentials is the username/password pair used for Basic authentication.
type Credentials struct {
	User string
	Pass string
}

// Client performs single GET exchanges against the API. It holds no state
// between calls and never retries.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

// NewClient returns a client rooted at baseURL. A nil httpClient falls back
// to http.DefaultClient; timeouts are the caller's http.Client concern.
func NewClient(baseURL string, creds Credentials, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: httpClient,
	}
}

// Get requests relPath (query string already encoded) and decodes the body
// as a JSON object.
func (c *Client) Get(ctx context.Context, relPath string) (map[string]any, error) {
	var obj map[string]any
	if err := c.do(ctx, relPath, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &TransportError{Kind: KindMalformedResponse, Path: relPath, Err: errors.New("expected a JSON object")}
	}

	return obj, nil
}

// GetList requests relPath and decodes the body as a JSON array of objects.
func (c *Client) GetList(ctx context.Context, relPath string) ([]map[string]any, error) {
	var list []map[string]any
	if err := c.do(ctx, relPath, &list); err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) do(ctx context.Context, relPath string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+relPath, nil)
	if err != nil {
		return &TransportError{Kind: KindNetwork, Path: relPath, Err: err}
	}
	req.SetBasicAuth(c.creds.User, c.creds.Pass)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Kind: KindNetwork, Path: relPath, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &TransportError{Kind: KindNotFound, Status: resp.StatusCode, Path: relPath}
	case resp.StatusCode == http.StatusUnauthorized:
		return &TransportError{Kind: KindUnauthorized, Status: resp.StatusCode, Path: relPath}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &TransportError{Kind: KindUnexpected, Status: resp.StatusCode, Path: relPath}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Kind: KindNetwork, Status: resp.StatusCode, Path: relPath, Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &TransportError{Kind: KindMalformedResponse, Status: resp.StatusCode, Path: relPath, Err: err}
	}

	return nil
}
