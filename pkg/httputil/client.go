package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/react-native-community/vscode-react-native-directory/pkg/observability"
)

// Client performs JSON GET requests with default headers, per-host circuit
// breaking and HTTP hooks. It does not retry; wrap calls in [Retry] where a
// retry is wanted.
type Client struct {
	http     *http.Client
	headers  map[string]string
	breakers *Breakers
}

// NewClient creates a Client. A nil httpClient selects [NewHTTPClient] with
// the default timeout; a nil breakers disables circuit breaking.
func NewClient(httpClient *http.Client, breakers *Breakers, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{http: httpClient, headers: headers, breakers: breakers}
}

// Get fetches url and decodes the JSON body into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders is [Client.Get] with extra headers that override the
// client's defaults.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	do := func() error { return c.get(ctx, url, headers, v) }
	if c.breakers == nil {
		return do()
	}
	return c.breakers.Do(ctx, url, do)
}

func (c *Client) get(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	host, path := splitURL(rawURL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if canceled(ctx, err) {
			return err
		}
		return &RetryableError{Err: fmt.Errorf("%w: %w", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(rawURL, resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if canceled(ctx, err) {
			return context.Canceled
		}
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return &RetryableError{Err: fmt.Errorf("%w: %w", ErrNetwork, err)}
		}
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}
