package basecamp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// ResourceComposer derives resource-scoped clients by appending path
// segments. Resource is the sole mechanism for building nested paths and
// composes associatively: root.Resource("a").Resource("b") addresses the
// same resource as root.Resource("a", "b").
type ResourceComposer interface {
	Resource(segments ...string) Client
	Locator() Locator
}

// Actions executes HTTP verbs against the client's resource locator. The
// convenience verbs are pure aliases for Do with the matching method.
type Actions interface {
	Do(ctx context.Context, verb string, opts *RequestOptions) (*Result, error)
	Fetch(ctx context.Context, opts *RequestOptions) (*Result, error)
	Create(ctx context.Context, opts *RequestOptions) (*Result, error)
	Update(ctx context.Context, opts *RequestOptions) (*Result, error)
	Delete(ctx context.Context, opts *RequestOptions) (*Result, error)
}

// ResourceAccessors enumerates the known top-level resource names. Each
// accessor is purely Resource("<name>", args...) and carries no logic of
// its own.
type ResourceAccessors interface {
	Projects(args ...string) Client
	Messages(args ...string) Client
	Todos(args ...string) Client
	People(args ...string) Client
	Events(args ...string) Client
	Documents(args ...string) Client
	Uploads(args ...string) Client
	Comments(args ...string) Client
	Attachments(args ...string) Client
	Calendars(args ...string) Client
	CalendarEvents(args ...string) Client
	Groups(args ...string) Client
	Stars(args ...string) Client
	Topics(args ...string) Client
	Accesses(args ...string) Client
	ProjectTemplates(args ...string) Client
	TodoLists(args ...string) Client
}

// Client is a resource-scoped Basecamp API client. Deriving a client never
// mutates its parent, so clients derived from the same root may be used
// concurrently from independent call sites.
type Client interface {
	ResourceComposer
	Actions
	ResourceAccessors
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds the fixed identity of a client instance. It is validated and
// defaulted once at construction and read-only afterwards, so it is safe to
// share across derived clients without synchronization.
type Config struct {
	// Required fields
	// Account: the numeric Basecamp account identifier. It becomes the first
	// segment of the canonical base path /{account}/api/v{version}.
	Account string
	// Username: account username, embedded as URL userinfo on every request.
	Username string
	// Password: account password, embedded alongside Username.
	Password string

	// Optional configurations
	// Identifier tags outgoing requests as the User-Agent; it has no other
	// protocol significance. Defaults to "API::Basecamp (Go)".
	Identifier string
	// Version selects the API version segment of the base path. Defaults to 1.
	Version int
	// BaseURL is the scheme and host requests are sent to. Defaults to
	// "https://basecamp.com".
	BaseURL string
	// Debug: when true, the rendered request and received response are
	// written to Logger with credentials redacted. No effect on control flow.
	Debug bool
	// Fatal: when true, exhausted-retry HTTP failures are surfaced as
	// *HTTPError instead of being returned as an ordinary failed Result.
	Fatal bool
	// Retries is the number of additional attempts after the first for
	// transport failures and 4xx/5xx responses. 0 means exactly one attempt.
	Retries int
	// Timeout bounds each attempt. Defaults to 10 seconds.
	Timeout time.Duration
	// Logger: optional structured logger for the HTTP layer.
	Logger Logger
}

// RequestOptions carries the optional per-action payloads: query values
// appended to the URL and data serialized as the JSON request body.
type RequestOptions struct {
	Query url.Values
	Data  interface{}
}

// Result is the outcome of one action call: the classified response plus
// the raw transaction for introspection of request and response headers.
type Result struct {
	// Status is the HTTP status code of the final attempt.
	Status int
	// Headers are the response headers of the final attempt.
	Headers http.Header
	// Body is the raw response body.
	Body []byte
	// Data is the JSON-decoded body of a successful response; nil when the
	// body was empty or the request failed. Failed results keep the raw
	// body only; use JSON or Decode for best-effort decoding.
	Data interface{}
	// Request reports the transaction as sent, after prepare hooks ran.
	Request *Transaction
}

// Succeeded reports whether the final status is in the 2xx/3xx range.
func (r *Result) Succeeded() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusBadRequest
}

// JSON decodes the response body into the generic mapping/sequence
// representation. An empty body decodes to nil.
func (r *Result) JSON() (interface{}, error) {
	if len(r.Body) == 0 {
		return nil, nil
	}

	var decoded interface{}

	err := json.Unmarshal(r.Body, &decoded)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	return decoded, nil
}

// Decode unmarshals the response body into v.
func (r *Result) Decode(v interface{}) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return &SerializationError{Err: err}
	}

	return nil
}
