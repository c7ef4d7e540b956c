// Package bcclient provides the main entry point for creating Basecamp API clients
package bcclient

import (
	"strings"

	"github.com/awncorp/api-basecamp/internal/client"
	"github.com/awncorp/api-basecamp/internal/constants"
	"github.com/awncorp/api-basecamp/pkg/basecamp"
)

// New creates a new Basecamp API client. Account, Username, and Password are
// required; all other fields receive defaults. The caller's config is not
// mutated: validation and defaulting operate on a copy, and the resulting
// config is read-only for the client's lifetime.
func New(config *basecamp.Config) (basecamp.Client, error) {
	if config == nil {
		return nil, basecamp.ErrConfigRequired
	}

	resolved, err := resolveConfig(config)
	if err != nil {
		return nil, err
	}

	return client.New(resolved)
}

// NewWithCredentials creates a new client from the three required fields.
func NewWithCredentials(account, username, password string) (basecamp.Client, error) {
	return New(&basecamp.Config{
		Account:  account,
		Username: username,
		Password: password,
	})
}

// resolveConfig validates required fields and applies defaults to a copy.
func resolveConfig(config *basecamp.Config) (*basecamp.Config, error) {
	resolved := *config

	if strings.TrimSpace(resolved.Account) == "" {
		return nil, &basecamp.ConfigurationError{Field: "account", Err: basecamp.ErrAccountRequired}
	}

	if strings.TrimSpace(resolved.Username) == "" {
		return nil, &basecamp.ConfigurationError{Field: "username", Err: basecamp.ErrUsernameRequired}
	}

	if strings.TrimSpace(resolved.Password) == "" {
		return nil, &basecamp.ConfigurationError{Field: "password", Err: basecamp.ErrPasswordRequired}
	}

	if resolved.Version < 0 {
		return nil, &basecamp.ConfigurationError{Field: "version", Err: basecamp.ErrInvalidVersion}
	}

	if resolved.Retries < 0 {
		return nil, &basecamp.ConfigurationError{Field: "retries", Err: basecamp.ErrInvalidRetries}
	}

	if resolved.Timeout < 0 {
		return nil, &basecamp.ConfigurationError{Field: "timeout", Err: basecamp.ErrInvalidTimeout}
	}

	if resolved.Identifier == "" {
		resolved.Identifier = constants.DefaultIdentifier
	}

	// Debug output must go somewhere even without an explicit logger.
	if resolved.Debug && resolved.Logger == nil {
		resolved.Logger = basecamp.NewStderrLogger()
	}

	if resolved.Version == 0 {
		resolved.Version = constants.DefaultVersion
	}

	if resolved.Timeout == 0 {
		resolved.Timeout = constants.DefaultTimeout
	}

	if resolved.BaseURL == "" {
		resolved.BaseURL = constants.DefaultBaseURL
	}

	// Normalize the base URL the way callers tend to write it.
	resolved.BaseURL = strings.TrimSuffix(resolved.BaseURL, "/")
	if !strings.HasPrefix(resolved.BaseURL, "http://") && !strings.HasPrefix(resolved.BaseURL, "https://") {
		resolved.BaseURL = "https://" + resolved.BaseURL
	}

	return &resolved, nil
}
