package basecamp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Transaction represents one outgoing HTTP request before it is sent. It is
// built fresh for every action call and never reused across attempts of
// different calls; retries re-send the same transaction unchanged.
type Transaction struct {
	Method  string
	URL     *url.URL
	Headers http.Header
	Body    []byte
}

// RedactedURL renders the transaction URL with credentials masked. The mask
// is spliced into the rendered string; url.Userinfo would percent-encode it.
func (t *Transaction) RedactedURL() string {
	if t.URL == nil {
		return ""
	}

	rendered := *t.URL
	if rendered.User == nil {
		return rendered.String()
	}

	rendered.User = nil

	return strings.Replace(rendered.String(), "://", "://***@", 1)
}

// PrepareFunc is a pure transformation applied to a transaction before it
// is sent. Hooks run for every verb.
type PrepareFunc func(ctx context.Context, txn *Transaction) error

// PrepareChain manages an ordered chain of prepare hooks.
type PrepareChain struct {
	hooks []PrepareFunc
}

// NewPrepareChain creates a chain from the given hooks, run in order.
func NewPrepareChain(hooks ...PrepareFunc) *PrepareChain {
	return &PrepareChain{hooks: hooks}
}

// Add appends a hook to the chain.
func (c *PrepareChain) Add(hook PrepareFunc) {
	c.hooks = append(c.hooks, hook)
}

// Run executes all hooks against the transaction.
func (c *PrepareChain) Run(ctx context.Context, txn *Transaction) error {
	for _, hook := range c.hooks {
		err := hook(ctx, txn)
		if err != nil {
			return fmt.Errorf("prepare hook failed: %w", err)
		}
	}

	return nil
}

// Common hooks

// JSONSuffixHook enforces the ".json" suffix on the request path. Suffixing
// is idempotent: a path already ending in ".json" is left unchanged.
func JSONSuffixHook() PrepareFunc {
	return func(ctx context.Context, txn *Transaction) error {
		if txn.URL == nil || strings.HasSuffix(txn.URL.Path, ".json") {
			return nil
		}

		txn.URL.Path += ".json"

		return nil
	}
}

// HeaderDefaultsHook sets the default request headers: the JSON content
// type and the client identifier as User-Agent. Existing values win.
func HeaderDefaultsHook(identifier string) PrepareFunc {
	return func(ctx context.Context, txn *Transaction) error {
		if txn.Headers == nil {
			txn.Headers = make(http.Header)
		}

		if txn.Headers.Get("Content-Type") == "" {
			txn.Headers.Set("Content-Type", "application/json")
		}

		if txn.Headers.Get("Accept") == "" {
			txn.Headers.Set("Accept", "application/json")
		}

		if identifier != "" && txn.Headers.Get("User-Agent") == "" {
			txn.Headers.Set("User-Agent", identifier)
		}

		return nil
	}
}

// HeaderHook adds custom headers to every transaction.
func HeaderHook(headers map[string]string) PrepareFunc {
	return func(ctx context.Context, txn *Transaction) error {
		if txn.Headers == nil {
			txn.Headers = make(http.Header)
		}

		for key, value := range headers {
			txn.Headers.Set(key, value)
		}

		return nil
	}
}

// LoggingHook logs each prepared transaction with credentials redacted.
func LoggingHook(logger Logger) PrepareFunc {
	return func(ctx context.Context, txn *Transaction) error {
		logger.Debug("Prepared transaction", map[string]interface{}{
			"method": txn.Method,
			"url":    txn.RedactedURL(),
		})

		return nil
	}
}

// DefaultPrepareChain is the chain applied to every outgoing transaction:
// path suffixing followed by header normalization.
func DefaultPrepareChain(identifier string) *PrepareChain {
	return NewPrepareChain(
		JSONSuffixHook(),
		HeaderDefaultsHook(identifier),
	)
}
