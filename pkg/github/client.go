// Package github fetches account statistics from the GitHub GraphQL v4 API.
//
// The client issues plain POST queries with a bearer token and tallies every
// outbound call per operation in an explicit Counter. There is no retry and
// no cache: a failed call surfaces immediately as a *RequestError so the
// caller can abort before touching any output file.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultEndpoint = "https://api.github.com/graphql"
	httpTimeout     = 10 * time.Second

	// non-2xx bodies are truncated to keep RequestError printable
	maxErrorBody = 4 << 10
)

// Client talks to the GitHub GraphQL endpoint on behalf of one user login.
// It is not safe for concurrent use; the fetch path is sequential by design.
type Client struct {
	http     *http.Client
	endpoint string
	login    string
	counter  *Counter
}

// NewClient builds a client authenticated with the given token, querying
// statistics for login.
func NewClient(ctx context.Context, token, login string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, src)
	hc.Timeout = httpTimeout

	return &Client{
		http:     hc,
		endpoint: defaultEndpoint,
		login:    login,
		counter:  NewCounter(),
	}
}

// Login returns the user login the client queries for.
func (c *Client) Login() string { return c.login }

// Counter returns the per-operation call tally for this client.
func (c *Client) Counter() *Counter { return c.counter }

// RequestError is a non-success response from the GraphQL endpoint. The run
// aborts on the first one; nothing is retried.
type RequestError struct {
	Op     string // operation that issued the request
	Status int    // HTTP status code
	Body   string // response body, truncated
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("github: %s failed with status %d: %s", e.Op, e.Status, e.Body)
}

type graphqlError struct {
	Message string `json:"message"`
}

// do posts a named query and decodes the response's data object into v.
// Every call increments the counter under op, including failed ones.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, v any) error {
	c.counter.Inc(op)

	payload, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return fmt.Errorf("github: %s: encode query: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("github: %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("github: %s: decode response: %w", op, err)
	}
	// GraphQL reports query-level failures on a 200
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("github: %s: %s", op, envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("github: %s: decode data: %w", op, err)
	}
	return nil
}
