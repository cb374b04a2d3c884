package apiclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
)

// Config holds the transport settings shared by every remote call.
type Config struct {
	// BaseURL is the API root every request path is joined onto.
	BaseURL string `env:"API_BASE_URL,required"`

	// UserAgent identifies the calling application to the remote API,
	// which rejects anonymous clients.
	UserAgent string `env:"API_USER_AGENT,required"`

	// Timeout bounds every request. The remote transport has no inherent
	// bound, so an explicit one is always applied.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
}

// Client is a minimal HTTP client for the session API. It carries no
// session state itself; callers attach credentials per request.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, keeping the
// configured timeout if the replacement has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.UserAgent == "" {
		return nil, ErrMissingUserAgent
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Timeout == 0 {
		c.http.Timeout = timeout
	}
	return c, nil
}

// Response is the digested result of a remote call.
type Response struct {
	Status  int
	Body    []byte
	Cookies []cookiejar.Cookie
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// RequestOption mutates a single outgoing request.
type RequestOption func(*http.Request)

// WithBasicAuth attaches an Authorization header built from the
// percent-encoded username and password joined by a colon.
func WithBasicAuth(username, password string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Basic "+BasicCredentials(username, password))
	}
}

// WithCookieHeader attaches a preformatted Cookie header when non-empty.
func WithCookieHeader(header string) RequestOption {
	return func(r *http.Request) {
		if header != "" {
			r.Header.Set("Cookie", header)
		}
	}
}

// Do issues a request against path, joined onto the base URL, with an
// optional JSON body. Set-Cookie headers on the response are parsed into
// cookie records; any response body is fully read.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Join(ErrRequestFailed, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	cookies, err := cookiejar.ParseSetCookies(resp.Header.Values("Set-Cookie"))
	if err != nil {
		return nil, err
	}

	return &Response{
		Status:  resp.StatusCode,
		Body:    data,
		Cookies: cookies,
	}, nil
}

// BasicCredentials builds the base64 payload of a Basic Authorization
// header. Username and password are percent-encoded individually before
// being joined, so reserved characters in either cannot corrupt the pair.
func BasicCredentials(username, password string) string {
	pair := escapeCredential(username) + ":" + escapeCredential(password)
	return base64.StdEncoding.EncodeToString([]byte(pair))
}

// escapeCredential percent-encodes one half of the credential pair. The
// server percent-decodes, so a space must arrive as "%20"; QueryEscape's
// form-style "+" would decode to a literal plus.
func escapeCredential(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
