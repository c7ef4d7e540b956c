package basecamp_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awncorp/api-basecamp/pkg/basecamp"
)

func TestNewLocator(t *testing.T) {
	t.Parallel()
	t.Run("parses scheme and host", func(t *testing.T) {
		t.Parallel()

		locator, err := basecamp.NewLocator("https://basecamp.com")
		require.NoError(t, err)
		assert.Equal(t, "basecamp.com", locator.Host())
		assert.Equal(t, "https://basecamp.com", locator.String())
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		_, err := basecamp.NewLocator("not-a-url")
		require.Error(t, err)

		configErr := &basecamp.ConfigurationError{}
		require.ErrorAs(t, err, &configErr)
		assert.ErrorIs(t, err, basecamp.ErrNoHostInURL)
	})
}

func TestLocator_BasePath(t *testing.T) {
	t.Parallel()

	locator, err := basecamp.NewLocator("https://basecamp.com")
	require.NoError(t, err)

	locator = locator.
		WithUserInfo("u", "p").
		WithBasePath("605816632", 1)

	assert.Equal(t, "/605816632/api/v1", locator.Path())
	assert.Equal(t, "u:p", locator.UserInfo())
	assert.Equal(t, "https://u:p@basecamp.com/605816632/api/v1", locator.String())
}

func TestLocator_Append(t *testing.T) {
	t.Parallel()
	t.Run("composes associatively", func(t *testing.T) {
		t.Parallel()

		root, err := basecamp.NewLocator("https://basecamp.com")
		require.NoError(t, err)

		root = root.WithBasePath("605816632", 1)

		chained := root.Append("projects").Append("605816632").Append("todos")
		batched := root.Append("projects", "605816632", "todos")

		assert.Equal(t, batched.Path(), chained.Path())
		assert.Equal(t, "/605816632/api/v1/projects/605816632/todos", chained.Path())
	})

	t.Run("never mutates the receiver", func(t *testing.T) {
		t.Parallel()

		root, err := basecamp.NewLocator("https://basecamp.com")
		require.NoError(t, err)

		root = root.WithBasePath("605816632", 1)
		parent := root.Append("projects")
		child := parent.Append("todos")

		assert.Equal(t, "/605816632/api/v1/projects", parent.Path())
		assert.Equal(t, "/605816632/api/v1/projects/todos", child.Path())
		assert.Equal(t, "/605816632/api/v1", root.Path())
	})

	t.Run("siblings do not alias segment storage", func(t *testing.T) {
		t.Parallel()

		root, err := basecamp.NewLocator("https://basecamp.com")
		require.NoError(t, err)

		root = root.WithBasePath("605816632", 1)
		first := root.Append("projects")
		second := root.Append("messages")

		assert.Equal(t, "/605816632/api/v1/projects", first.Path())
		assert.Equal(t, "/605816632/api/v1/messages", second.Path())
	})
}

func TestLocator_Segments(t *testing.T) {
	t.Parallel()

	root, err := basecamp.NewLocator("https://basecamp.com")
	require.NoError(t, err)

	locator := root.WithBasePath("a", 2).Append("b")
	segments := locator.Segments()
	assert.Equal(t, []string{"a", "api", "v2", "b"}, segments)

	// Mutating the returned slice must not affect the locator.
	segments[0] = "mutated"
	assert.Equal(t, "/a/api/v2/b", locator.Path())
}

func TestLocator_WithQuery(t *testing.T) {
	t.Parallel()

	root, err := basecamp.NewLocator("https://basecamp.com")
	require.NoError(t, err)

	values := url.Values{"a": []string{"1"}}
	locator := root.WithBasePath("acc", 1).WithQuery(values)

	assert.Equal(t, "https://basecamp.com/acc/api/v1?a=1", locator.String())

	// The locator holds its own copy of the values.
	values.Set("a", "2")
	assert.Equal(t, "https://basecamp.com/acc/api/v1?a=1", locator.String())
}

func TestLocator_Redacted(t *testing.T) {
	t.Parallel()

	root, err := basecamp.NewLocator("https://basecamp.com")
	require.NoError(t, err)

	locator := root.WithUserInfo("user", "secret").WithBasePath("acc", 1)

	redacted := locator.Redacted()
	assert.NotContains(t, redacted, "secret")
	assert.NotContains(t, redacted, "user")
	assert.Equal(t, "https://***@basecamp.com/acc/api/v1", redacted)
}

func TestLocator_RedactedWithoutCredentials(t *testing.T) {
	t.Parallel()

	root, err := basecamp.NewLocator("https://basecamp.com")
	require.NoError(t, err)

	locator := root.WithBasePath("acc", 1)
	assert.Equal(t, "https://basecamp.com/acc/api/v1", locator.Redacted())
}
