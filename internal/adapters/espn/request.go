package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/fflboard/pkg/logger"
	"github.com/okian/fflboard/pkg/metrics"
)

const filterHeader = "X-Fantasy-Filter"

// APIError is a non-2xx answer from ESPN.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("espn api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether the request may succeed when repeated.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// request describes one GET against the API.
type request struct {
	path   string // appended to the base URL
	views  []string
	query  url.Values
	filter any // marshalled into the X-Fantasy-Filter header when set
}

func (r request) view() string {
	if len(r.views) == 0 {
		return "none"
	}
	return r.views[0]
}

func (r request) encode() string {
	q := url.Values{}
	for k, vs := range r.query {
		q[k] = append([]string(nil), vs...)
	}
	for _, v := range r.views {
		q.Add("view", v)
	}
	return q.Encode()
}

func (c *Client) leaguePath() string {
	return fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", c.year, c.leagueID)
}

func (c *Client) seasonPath() string {
	return fmt.Sprintf("/seasons/%d", c.year)
}

func (c *Client) doRequest(ctx context.Context, r request) ([]byte, error) {
	fullURL := c.baseURL + r.path
	if q := r.encode(); q != "" {
		fullURL += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.filter != nil {
		f, err := json.Marshal(r.filter)
		if err != nil {
			return nil, fmt.Errorf("encode filter: %w", err)
		}
		req.Header.Set(filterHeader, string(f))
	}
	if c.espnS2 != "" {
		req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
	}
	if c.swid != "" {
		req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordProviderRequest(r.view(), "transport_error", float64(time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.RecordProviderRequest(r.view(), strconv.Itoa(resp.StatusCode), float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}
	return body, nil
}

// doWithRetry repeats retryable failures with jittered exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, r request) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// backoff * [0.5, 1.5)
			wait := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug(ctx, "retrying request",
				logger.Int("attempt", attempt),
				logger.Duration("backoff", wait),
				logger.String("view", r.view()),
			)
			metrics.RecordProviderRetry(r.view())

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			backoff *= 2
		}

		body, err := c.doRequest(ctx, r)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs r with retries and decodes the body into result.
func (c *Client) get(ctx context.Context, r request, result any) error {
	body, err := c.doWithRetry(ctx, r)
	if err != nil {
		metrics.RecordErrorByComponent("espn", errorType(err))
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		metrics.RecordErrorByComponent("espn", "decode")
		return fmt.Errorf("unmarshal %s response: %w", r.view(), err)
	}
	return nil
}

func errorType(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &apiErr):
		return "status_" + strconv.Itoa(apiErr.StatusCode)
	default:
		return "transport"
	}
}
