package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "go-confluence"
	retryBaseDelay   = 500 * time.Millisecond
)

// Config wires a Client. BaseURL falls back to the credentials file value
// when empty; everything else has a working default.
type Config struct {
	BaseURL     string
	Credentials Credentials
	HTTPClient  *http.Client
	Timeout     time.Duration
	MaxRetries  int
	UserAgent   string
	Routes      *urlkit.Config
	Logger      interfaces.Logger
}

// Client talks to the Confluence REST API. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	routes    *router
	creds     Credentials
	baseURL   string
	retries   int
	userAgent string
	logger    interfaces.Logger
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = strings.TrimSpace(cfg.Credentials.BaseURL)
	}
	if baseURL == "" {
		return nil, ErrBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if cfg.Credentials.Username == "" || cfg.Credentials.APIToken == "" {
		return nil, &CredentialsError{Reason: "username and token required"}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		http:      httpClient,
		routes:    newRouter(cfg.Routes, baseURL),
		creds:     cfg.Credentials,
		baseURL:   baseURL,
		retries:   retries,
		userAgent: userAgent,
		logger:    logger,
	}, nil
}

// BaseURL reports the normalized instance URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do runs one request with retries on transport failures, 429, and 5xx
// responses. It returns the final status and body; classification into
// errors happens at the call sites, which know the endpoint semantics.
func (c *Client) do(ctx context.Context, method, endpoint string, header http.Header, payload []byte) (int, []byte, error) {
	var (
		status  int
		body    []byte
		lastErr error
	)
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * retryBaseDelay
			select {
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			case <-time.After(delay):
			}
			c.logger.Debug("retrying request", "method", method, "path", urlPath(endpoint), "attempt", attempt+1)
		}
		status, body, lastErr = c.roundTrip(ctx, method, endpoint, header, payload)
		if lastErr != nil {
			if ctx.Err() != nil {
				return 0, nil, lastErr
			}
			continue
		}
		if !retryableStatus(status) {
			return status, body, nil
		}
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return status, body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, header http.Header, payload []byte) (int, []byte, error) {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, fmt.Errorf("client: build request: %w", err)
	}
	req.SetBasicAuth(c.creds.Username, c.creds.APIToken)
	req.Header.Set("User-Agent", c.userAgent)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("client: %s %s: %w", method, urlPath(endpoint), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("client: read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// shortLinkTarget follows a /x/ short link one hop and returns the page URL
// named by its Location header. The redirect is read rather than followed so
// the probe stays a single request.
func (c *Client) shortLinkTarget(ctx context.Context, shortURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, nil)
	if err != nil {
		return "", fmt.Errorf("client: build request: %w", err)
	}
	req.SetBasicAuth(c.creds.Username, c.creds.APIToken)
	req.Header.Set("User-Agent", c.userAgent)

	probe := *c.http
	probe.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := probe.Do(req)
	if err != nil {
		return "", fmt.Errorf("client: %s %s: %w", http.MethodGet, urlPath(shortURL), err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", &ReferenceError{Reference: shortURL, Detail: fmt.Sprintf("short link answered %d instead of redirecting", resp.StatusCode)}
	}
	target, err := resp.Location()
	if err != nil {
		return "", &ReferenceError{Reference: shortURL, Detail: "short link redirect carries no location"}
	}
	return target.String(), nil
}

// requestJSON encodes in (when non-nil), runs the request, and decodes a
// 2xx body into out (when non-nil). Non-2xx statuses become an *APIError.
func (c *Client) requestJSON(ctx context.Context, method, endpoint string, in, out any) error {
	header := http.Header{}
	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		payload = data
		header.Set("Content-Type", "application/json")
	}
	status, body, err := c.do(ctx, method, endpoint, header, payload)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return c.apiError(status, urlPath(endpoint), body)
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) apiError(status int, endpoint string, body []byte) *APIError {
	return &APIError{
		Status:   status,
		Code:     statusCode(status),
		Endpoint: endpoint,
		Message:  serverMessage(body),
	}
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// serverMessage pulls the human readable explanation Confluence embeds in
// error bodies.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func urlPath(endpoint string) string {
	u, err := neturl.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	return u.Path
}
