package basecamp

import (
	"net/url"
	"strconv"
	"strings"
)

// Locator is a composable URL value identifying one API resource. A Locator
// is immutable: every derivation returns a fresh copy, so proxies derived
// from the same root never share mutable path state.
type Locator struct {
	scheme   string
	host     string
	username string
	password string
	segments []string
	query    url.Values
}

// NewLocator parses a base URL (scheme and host) into a Locator with an
// empty path. The base URL's own path, if any, is discarded.
func NewLocator(base string) (Locator, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return Locator{}, &ConfigurationError{Field: "base URL", Err: err}
	}

	if parsed.Host == "" {
		return Locator{}, &ConfigurationError{Field: "base URL", Err: ErrNoHostInURL}
	}

	return Locator{
		scheme: parsed.Scheme,
		host:   parsed.Host,
	}, nil
}

// WithUserInfo returns a copy of the Locator carrying the given credentials
// as URL userinfo ("username:password").
func (l Locator) WithUserInfo(username, password string) Locator {
	derived := l.copy()
	derived.username = username
	derived.password = password

	return derived
}

// WithBasePath returns a copy of the Locator whose path is the canonical
// account/version base: /{account}/api/v{version}. Any existing segments
// are replaced.
func (l Locator) WithBasePath(account string, version int) Locator {
	derived := l.copy()
	derived.segments = []string{account, "api", "v" + strconv.Itoa(version)}

	return derived
}

// Append returns a new Locator whose path is the receiver's path joined
// with the given segments in order. Composition is associative:
// l.Append("a").Append("b") equals l.Append("a", "b"). The receiver is
// never mutated.
func (l Locator) Append(segments ...string) Locator {
	derived := l.copy()
	derived.segments = append(derived.segments, segments...)

	return derived
}

// WithQuery returns a copy of the Locator carrying the given query values.
func (l Locator) WithQuery(values url.Values) Locator {
	derived := l.copy()

	if values == nil {
		derived.query = nil

		return derived
	}

	derived.query = make(url.Values, len(values))
	for key, vals := range values {
		derived.query[key] = append([]string(nil), vals...)
	}

	return derived
}

// Path renders the path component, segments joined with "/".
func (l Locator) Path() string {
	if len(l.segments) == 0 {
		return ""
	}

	return "/" + strings.Join(l.segments, "/")
}

// Segments returns a copy of the ordered path segments.
func (l Locator) Segments() []string {
	return append([]string(nil), l.segments...)
}

// UserInfo renders the embedded credentials as "username:password", or ""
// when absent.
func (l Locator) UserInfo() string {
	if l.username == "" && l.password == "" {
		return ""
	}

	return l.username + ":" + l.password
}

// Host returns the host component.
func (l Locator) Host() string {
	return l.host
}

// URL renders the Locator into an absolute *url.URL.
func (l Locator) URL() *url.URL {
	rendered := &url.URL{
		Scheme:   l.scheme,
		Host:     l.host,
		Path:     l.Path(),
		RawQuery: l.query.Encode(),
	}

	if l.username != "" || l.password != "" {
		rendered.User = url.UserPassword(l.username, l.password)
	}

	return rendered
}

// String renders the Locator into an absolute URL string.
func (l Locator) String() string {
	return l.URL().String()
}

// Redacted renders the Locator with credentials masked, for diagnostics.
// The mask is spliced into the rendered string; url.Userinfo would
// percent-encode it.
func (l Locator) Redacted() string {
	rendered := l.URL()
	if rendered.User == nil {
		return rendered.String()
	}

	rendered.User = nil

	return strings.Replace(rendered.String(), "://", "://***@", 1)
}

// copy returns a deep copy so that derivations never alias the receiver's
// segment slice or query map.
func (l Locator) copy() Locator {
	copied := l
	copied.segments = append([]string(nil), l.segments...)

	if l.query != nil {
		copied.query = make(url.Values, len(l.query))
		for key, vals := range l.query {
			copied.query[key] = append([]string(nil), vals...)
		}
	}

	return copied
}
