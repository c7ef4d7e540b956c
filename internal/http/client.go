// Package http implements the transport layer: it builds one HTTP
// transaction per action call, applies the prepare chain, sends it with the
// configured retry policy, and classifies the outcome.
package http

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/awncorp/api-basecamp/internal/constants"
	"github.com/awncorp/api-basecamp/pkg/basecamp"
)

// Client sends prepared transactions with retry and debug logging. It is
// safe for concurrent use.
type Client struct {
	retryClient *retryablehttp.Client
	prepare     *basecamp.PrepareChain
	logger      basecamp.Logger
	debug       bool
}

// Response is the transport-level outcome of a transaction's final attempt.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger basecamp.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging. Credentials are redacted.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig sets the retry budget and the fixed delay between
// attempts. A budget of 0 means exactly one attempt.
func WithRetryConfig(retries int, delay time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retries
		c.retryClient.RetryWaitMin = delay
		c.retryClient.RetryWaitMax = delay
	}
}

// WithPrepare replaces the prepare chain applied before every send.
func WithPrepare(chain *basecamp.PrepareChain) Option {
	return func(c *Client) {
		c.prepare = chain
	}
}

// NewClient creates a transport client. Without options it performs exactly
// one attempt per transaction with the default timeout and prepare chain.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetries
	retryClient.RetryWaitMin = constants.RetryDelay
	retryClient.RetryWaitMax = constants.RetryDelay
	retryClient.CheckRetry = checkRetry
	retryClient.Backoff = fixedBackoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultTimeout

	client := &Client{
		retryClient: retryClient,
		prepare:     basecamp.DefaultPrepareChain(constants.DefaultIdentifier),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do runs the prepare chain over the transaction, sends it honoring the
// retry policy, and classifies the result. A 4xx/5xx final status returns
// both the response and an *basecamp.HTTPError; the caller decides whether
// the error surfaces based on fatal mode. Transport failures return an
// *basecamp.TransportError.
func (c *Client) Do(ctx context.Context, txn *basecamp.Transaction) (*Response, error) {
	if c.prepare != nil {
		err := c.prepare.Run(ctx, txn)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction: %w", err)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": txn.Method,
			"url":    txn.RedactedURL(),
		})
	}

	var body interface{}
	if len(txn.Body) > 0 {
		body = txn.Body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, txn.Method, txn.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, values := range txn.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.retryClient.Do(req)
	if err != nil {
		transportErr := &basecamp.TransportError{Err: err}

		if c.debug && c.logger != nil {
			c.logger.Debug("HTTP Response", map[string]interface{}{
				"method": txn.Method,
				"url":    txn.RedactedURL(),
				"error":  err.Error(),
			})
		}

		return nil, transportErr
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &basecamp.TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      txn.Method,
			"url":         txn.RedactedURL(),
			"status_code": resp.StatusCode,
		})
	}

	if resp.StatusCode >= nethttp.StatusBadRequest {
		return response, &basecamp.HTTPError{
			Status:  resp.StatusCode,
			Headers: resp.Header,
			Body:    respBody,
		}
	}

	return response, nil
}

// checkRetry retries transport failures and any 4xx/5xx status. Context
// cancellation always wins over the retry budget.
func checkRetry(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp != nil && resp.StatusCode >= nethttp.StatusBadRequest {
		return true, nil
	}

	return false, nil
}

// fixedBackoff waits the configured delay between attempts without
// exponential growth.
func fixedBackoff(minWait, maxWait time.Duration, attemptNum int, resp *nethttp.Response) time.Duration {
	return minWait
}
