package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Client construction defaults.
const (
	// DefaultBaseURL is the scheme and host requests are sent to when the
	// config does not override it.
	DefaultBaseURL = "https://basecamp.com"

	// DefaultIdentifier tags outgoing requests as the User-Agent.
	DefaultIdentifier = "API::Basecamp (Go)"

	// DefaultVersion selects the API version segment of the base path.
	DefaultVersion = 1

	// DefaultTimeout bounds each request attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is the number of additional attempts after the first.
	// Zero means exactly one attempt.
	DefaultRetries = 0

	// RetryDelay is the fixed wait between attempts. No backoff is applied.
	RetryDelay = 500 * time.Millisecond
)
