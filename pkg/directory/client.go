package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/react-native-community/vscode-react-native-directory/pkg/buildinfo"
	"github.com/react-native-community/vscode-react-native-directory/pkg/httputil"
)

// DefaultBaseURL is the directory's public libraries API.
const DefaultBaseURL = "https://reactnative.directory/api/libraries"

var (
	// ErrNotFound is returned by [Client.Package] for unknown packages.
	ErrNotFound = httputil.ErrNotFound

	// ErrNetwork is returned for transport failures and 5xx responses.
	ErrNetwork = httputil.ErrNetwork

	// ErrDecode is returned when the response is not the expected JSON.
	ErrDecode = httputil.ErrDecode
)

// Client talks to the React Native Directory API.
type Client struct {
	http      *httputil.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	httpc     *http.Client
	breakers  *httputil.Breakers
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another deployment of the API.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout sets the per-request timeout used when no HTTP client is given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBreakers enables per-host circuit breaking.
func WithBreakers(b *httputil.Breakers) Option {
	return func(c *Client) { c.breakers = b }
}

// NewClient creates a directory client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = httputil.NewHTTPClient(c.timeout)
	}
	c.http = httputil.NewClient(c.httpc, c.breakers, map[string]string{"User-Agent": c.userAgent})
	return c
}

// BaseURL returns the API root the client queries.
func (c *Client) BaseURL() string { return c.baseURL }

// Lookup fetches the entries for names in a single request. Names unknown to
// the directory are absent from the result. There is no retry: the caller
// decides when to ask again.
func (c *Client) Lookup(ctx context.Context, names []string) (Libraries, error) {
	if len(names) == 0 {
		return Libraries{}, nil
	}
	q := url.Values{}
	q.Set("name", strings.Join(names, ","))

	var libs Libraries
	if err := c.http.Get(ctx, c.baseURL+"/library?"+q.Encode(), &libs); err != nil {
		return nil, err
	}
	if libs == nil {
		libs = Libraries{}
	}
	return libs, nil
}

// Package fetches a single entry.
func (c *Client) Package(ctx context.Context, name string) (*Library, error) {
	libs, err := c.Lookup(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	lib, ok := libs[name]
	if !ok {
		for _, l := range libs {
			if l.NpmPkg == name {
				lib, ok = l, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &lib, nil
}

// Search queries the catalog ordered by downloads. Transient failures are
// retried a few times because a person is waiting on the answer.
func (c *Client) Search(ctx context.Context, query Query) (*SearchResult, error) {
	endpoint := c.baseURL + "?" + query.Values().Encode()

	var result SearchResult
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.http.Get(ctx, endpoint, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
