package graph

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Graph API host. Trailing slashes are dropped.
// Mostly useful for pointing the client at a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimRight(baseURL, "/"); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithAPIVersion prefixes every request path with a version segment such as "v19.0".
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.version = strings.Trim(version, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client. Nil clients are ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// It has no effect on a client supplied with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTokenSource makes the client pull its credential from ts on every
// request. A static access token, if also set, takes precedence.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}
