// Package client implements the basecamp.Client interface.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/awncorp/api-basecamp/internal/constants"
	"github.com/awncorp/api-basecamp/internal/http"
	"github.com/awncorp/api-basecamp/pkg/basecamp"
)

// Client is a resource proxy: a shared read-only config plus one owned
// Locator. Deriving a resource copies the Locator, so sibling proxies never
// share mutable path state.
type Client struct {
	config     *basecamp.Config
	locator    basecamp.Locator
	httpClient *http.Client
}

// New creates the root client for an already validated and defaulted
// config. The root Locator path is the canonical /{account}/api/v{version}
// base with the account credentials embedded as userinfo.
func New(config *basecamp.Config) (*Client, error) {
	locator, err := basecamp.NewLocator(config.BaseURL)
	if err != nil {
		return nil, err
	}

	locator = locator.
		WithUserInfo(config.Username, config.Password).
		WithBasePath(config.Account, config.Version)

	httpOpts := []http.Option{
		http.WithTimeout(config.Timeout),
		http.WithRetryConfig(config.Retries, constants.RetryDelay),
		http.WithPrepare(basecamp.DefaultPrepareChain(config.Identifier)),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	return &Client{
		config:     config,
		locator:    locator,
		httpClient: http.NewClient(httpOpts...),
	}, nil
}

// Resource implements basecamp.ResourceComposer. It returns a new client
// sharing the config and transport, bound to the extended Locator.
func (c *Client) Resource(segments ...string) basecamp.Client {
	return &Client{
		config:     c.config,
		locator:    c.locator.Append(segments...),
		httpClient: c.httpClient,
	}
}

// Locator implements basecamp.ResourceComposer.
func (c *Client) Locator() basecamp.Locator {
	return c.locator
}

// Do implements basecamp.Actions. It builds one transaction from the
// client's Locator and config, sends it through the transport, and
// classifies the outcome per fatal mode.
func (c *Client) Do(ctx context.Context, verb string, opts *basecamp.RequestOptions) (*basecamp.Result, error) {
	verb = strings.ToUpper(strings.TrimSpace(verb))
	if verb == "" {
		verb = nethttp.MethodGet
	}

	txn, err := c.buildTransaction(verb, opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, txn)
	if err != nil {
		httpErr := &basecamp.HTTPError{}
		if errors.As(err, &httpErr) && resp != nil {
			result := resultFrom(resp, txn)
			if c.config.Fatal {
				return result, err
			}

			// Non-fatal mode returns the failed result as an ordinary value.
			return result, nil
		}

		return nil, err
	}

	result := resultFrom(resp, txn)

	if len(result.Body) > 0 {
		var decoded interface{}

		err = json.Unmarshal(result.Body, &decoded)
		if err != nil {
			return result, &basecamp.SerializationError{Err: err}
		}

		result.Data = decoded
	}

	return result, nil
}

// Fetch implements basecamp.Actions.Fetch.
func (c *Client) Fetch(ctx context.Context, opts *basecamp.RequestOptions) (*basecamp.Result, error) {
	return c.Do(ctx, nethttp.MethodGet, opts)
}

// Create implements basecamp.Actions.Create.
func (c *Client) Create(ctx context.Context, opts *basecamp.RequestOptions) (*basecamp.Result, error) {
	return c.Do(ctx, nethttp.MethodPost, opts)
}

// Update implements basecamp.Actions.Update.
func (c *Client) Update(ctx context.Context, opts *basecamp.RequestOptions) (*basecamp.Result, error) {
	return c.Do(ctx, nethttp.MethodPut, opts)
}

// Delete implements basecamp.Actions.Delete.
func (c *Client) Delete(ctx context.Context, opts *basecamp.RequestOptions) (*basecamp.Result, error) {
	return c.Do(ctx, nethttp.MethodDelete, opts)
}

// buildTransaction renders the Locator into an absolute URL, merges the
// optional query values, and serializes the optional data payload.
func (c *Client) buildTransaction(verb string, opts *basecamp.RequestOptions) (*basecamp.Transaction, error) {
	rendered := c.locator.URL()

	var body []byte

	if opts != nil {
		if len(opts.Query) > 0 {
			query := rendered.Query()
			for key, values := range opts.Query {
				for _, value := range values {
					query.Add(key, value)
				}
			}

			rendered.RawQuery = query.Encode()
		}

		if opts.Data != nil {
			encoded, err := json.Marshal(opts.Data)
			if err != nil {
				return nil, fmt.Errorf("encoding request body: %w", err)
			}

			body = encoded
		}
	}

	return &basecamp.Transaction{
		Method:  verb,
		URL:     rendered,
		Headers: make(nethttp.Header),
		Body:    body,
	}, nil
}

func resultFrom(resp *http.Response, txn *basecamp.Transaction) *basecamp.Result {
	return &basecamp.Result{
		Status:  resp.StatusCode,
		Headers: resp.Headers,
		Body:    resp.Body,
		Request: txn,
	}
}
