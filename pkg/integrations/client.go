package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cerrors "github.com/matzehuels/condadeps/pkg/errors"
	"github.com/matzehuels/condadeps/pkg/observability"
)

// Client provides shared HTTP functionality for API clients.
// It applies common request headers, maps response status codes to typed
// errors, and reports every request to the registered HTTP hooks.
// Requests are never retried.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		headers: headers,
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// PostJSON encodes in as the JSON request body, POSTs it to rawURL, and
// decodes a successful response into out. out may be nil to discard the body.
//
// Errors are *errors.Error values: NOT_FOUND for 404, UNAUTHORIZED for 401
// and 403, NETWORK_ERROR for transport failures and other statuses. Status
// failures wrap a [*StatusError].
func (c *Client) PostJSON(ctx context.Context, rawURL string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInternal, err, "encode request body")
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return c.do(ctx, http.MethodPost, rawURL, bytes.NewReader(body), headers, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "build %s request", method)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := endpoint(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return cerrors.Wrap(cerrors.ErrCodeNetwork, fmt.Errorf("%w: %w", ErrNetwork, err), "%s %s", method, path)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return cerrors.Wrap(codeFor(err), err, "%s %s", method, path)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeNetwork, fmt.Errorf("%w: %w", ErrNetwork, err), "decode %s %s response", method, path)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	se := &StatusError{StatusCode: code, Message: errorMessage(resp.Body)}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		se.kind = ErrUnauthorized
	case http.StatusNotFound:
		se.kind = ErrNotFound
	default:
		se.kind = ErrNetwork
	}
	return se
}

func codeFor(err error) cerrors.Code {
	se, ok := err.(*StatusError)
	if !ok {
		return cerrors.ErrCodeNetwork
	}
	switch se.kind {
	case ErrUnauthorized:
		return cerrors.ErrCodeUnauthorized
	case ErrNotFound:
		return cerrors.ErrCodeNotFound
	default:
		return cerrors.ErrCodeNetwork
	}
}

// errorMessage extracts the "message" field of a JSON error body, falling
// back to the trimmed body text.
func errorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return strings.TrimSpace(payload.Message)
	}
	return strings.TrimSpace(string(data))
}

func endpoint(u *url.URL) (host, path string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.Path
}
