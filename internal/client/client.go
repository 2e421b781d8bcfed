// Package client fetches listings from an fsurf listing service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/vidyasagar/fsurf/internal/explorer"
	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/logging"
	"github.com/vidyasagar/fsurf/internal/navigation"
)

const (
	defaultTimeout   = 15 * time.Second
	maxBodySize      = 32 * 1024 * 1024 // 32 MB
	defaultUserAgent = "fsurf/0.1 (terminal filesystem browser)"
)

// SharedTransport is a tuned HTTP transport shared across all clients.
var SharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          20,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
}

// APIError is a non-2xx response from the listing service.
type APIError struct {
	StatusCode int
	Name       string `json:"error"`
	Message    string `json:"message"`
	Code       int    `json:"code"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Options configures a Client.
type Options struct {
	Timeout  time.Duration
	RetryMax int
	Logger   zerolog.Logger
}

// Client is a navigation.Provider backed by the listing service's HTTP API.
type Client struct {
	base      *url.URL
	client    *http.Client
	userAgent string
	log       zerolog.Logger

	mu    sync.Mutex
	query explorer.Query
}

var _ navigation.Provider = (*Client)(nil)

// New creates a client for the service at baseURL. A bare host:port gets
// http:// prepended.
func New(baseURL string, opts Options) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	retry := retryablehttp.NewClient()
	retry.HTTPClient = &http.Client{Transport: SharedTransport, Timeout: opts.Timeout}
	retry.RetryMax = opts.RetryMax
	retry.RetryWaitMin = 200 * time.Millisecond
	retry.RetryWaitMax = 2 * time.Second
	retry.Logger = logging.RetryLogger{Log: opts.Logger}

	return &Client{
		base:      base,
		client:    retry.StandardClient(),
		userAgent: defaultUserAgent,
		log:       opts.Logger,
		query:     explorer.Query{SortBy: explorer.SortByName},
	}, nil
}

// ParseBaseURL normalises a service address.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("server address is empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing server address: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server address %q has no host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Query returns the options applied to folder fetches.
func (c *Client) Query() explorer.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetQuery replaces the options applied to folder fetches.
func (c *Client) SetQuery(q explorer.Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

// Fetch returns the listing for path; navigation.RootPath asks for the
// device root.
func (c *Client) Fetch(ctx context.Context, path string) (*listing.Listing, error) {
	var endpoint *url.URL
	if path == navigation.RootPath {
		endpoint = c.endpoint("/api/device", nil)
	} else {
		q := c.Query()
		params := url.Values{"path": {path}}
		if q.Search != "" {
			params.Set("search", q.Search)
		}
		if q.SortBy != "" {
			params.Set("sort_by", string(q.SortBy))
		}
		if q.Reverse {
			params.Set("reverse", strconv.FormatBool(true))
		}
		if q.ShowHidden {
			params.Set("show_hidden", strconv.FormatBool(true))
		}
		endpoint = c.endpoint("/api/items", params)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("listing fetched")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Name == "" {
			apiErr.Name = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	var l listing.Listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}
	return &l, nil
}

func (c *Client) endpoint(p string, params url.Values) *url.URL {
	u := *c.base
	u.Path = c.base.Path + p
	u.RawQuery = params.Encode()
	return &u
}
