// Package espn reads league, roster, free-agent and transaction data from the
// ESPN fantasy football API.
package espn

import (
	"net/http"
	"strings"
	"time"

	"github.com/okian/fflboard/pkg/logger"
)

// DefaultBaseURL is the public read endpoint for fantasy football leagues.
const DefaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxRetries   = 2
	defaultRetryBackoff = 500 * time.Millisecond
)

// Client talks to one league for one season.
type Client struct {
	baseURL  string
	leagueID int
	year     int
	espnS2   string
	swid     string

	httpClient *http.Client
	logger     logger.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for leagueID in year. espnS2 and swid are the
// browser cookies that grant access to private leagues.
func NewClient(leagueID, year int, espnS2, swid string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		leagueID: leagueID,
		year:     year,
		espnS2:   espnS2,
		swid:     swid,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("espn")
	}
	return c
}

// WithBaseURL points the client at another host, typically a test server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetries sets how often a retryable failure is retried and the initial
// backoff, which doubles per attempt.
func WithRetries(n int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
		if backoff > 0 {
			c.retryBackoff = backoff
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Year returns the season the client reads.
func (c *Client) Year() int { return c.year }
