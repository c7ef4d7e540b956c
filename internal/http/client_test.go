package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	bchttp "github.com/awncorp/api-basecamp/internal/http"
	"github.com/awncorp/api-basecamp/pkg/basecamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func newTestTransaction(t *testing.T, method, rawURL string, body []byte) *basecamp.Transaction {
	t.Helper()

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)

	return &basecamp.Transaction{
		Method:  method,
		URL:     parsed,
		Headers: make(http.Header),
		Body:    body,
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/acc/api/v1/projects.json", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.Equal(t, "API::Basecamp (Go)", request.Header.Get("User-Agent"))

			_ = json.NewEncoder(writer).Encode([]map[string]string{{"name": "Launch"}})
		}))
		defer server.Close()

		client := bchttp.NewClient()
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects", nil)

		resp, err := client.Do(context.Background(), txn)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result []map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "Launch", result[0]["name"])
	})

	t.Run("embedded userinfo becomes basic auth", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user, pass, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "u", user)
			assert.Equal(t, "p", pass)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		serverURL, err := url.Parse(server.URL)
		require.NoError(t, err)

		serverURL.User = url.UserPassword("u", "p")
		serverURL.Path = "/acc/api/v1/people"

		client := bchttp.NewClient()
		txn := &basecamp.Transaction{Method: "GET", URL: serverURL, Headers: make(http.Header)}

		resp, err := client.Do(context.Background(), txn)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Launch", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := bchttp.NewClient()
		txn := newTestTransaction(t, "POST", server.URL+"/acc/api/v1/projects", []byte(`{"name":"Launch"}`))

		resp, err := client.Do(context.Background(), txn)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response returns both response and error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":"not found"}`))
		}))
		defer server.Close()

		client := bchttp.NewClient()
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects/999", nil)

		resp, err := client.Do(context.Background(), txn)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)

		httpErr := &basecamp.HTTPError{}
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Status)
		assert.JSONEq(t, `{"error":"not found"}`, string(httpErr.Body))
	})

	t.Run("custom headers pass through", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := bchttp.NewClient()
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects", nil)
		txn.Headers.Set("X-Custom-Header", "custom-value")

		resp, err := client.Do(context.Background(), txn)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := bchttp.NewClient(bchttp.WithLogger(logger), bchttp.WithDebug(true))

		serverURL, err := url.Parse(server.URL)
		require.NoError(t, err)

		serverURL.User = url.UserPassword("u", "hunter2")
		serverURL.Path = "/acc/api/v1/projects"

		txn := &basecamp.Transaction{Method: "GET", URL: serverURL, Headers: make(http.Header)}

		_, err = client.Do(context.Background(), txn)
		require.NoError(t, err)

		// Should have logged request and response, with credentials redacted
		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])

		for _, entry := range logger.logs {
			fields, ok := entry["fields"].(map[string]interface{})
			require.True(t, ok)
			assert.NotContains(t, fields["url"], "hunter2")
		}
	})

	t.Run("transport failure returns transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		server.Close()

		client := bchttp.NewClient()
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects", nil)

		resp, err := client.Do(context.Background(), txn)
		require.Error(t, err)
		assert.Nil(t, resp)

		transportErr := &basecamp.TransportError{}
		assert.ErrorAs(t, err, &transportErr)
	})
}

func TestClient_RetryPolicy(t *testing.T) {
	t.Parallel()
	t.Run("retries consume the budget and return the last failure", func(t *testing.T) {
		t.Parallel()

		var attempts int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt64(&attempts, 1)
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte(`{"error":"boom"}`))
		}))
		defer server.Close()

		client := bchttp.NewClient(bchttp.WithRetryConfig(2, time.Millisecond))
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects", nil)

		resp, err := client.Do(context.Background(), txn)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
	})

	t.Run("zero retries means exactly one attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt64(&attempts, 1)
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := bchttp.NewClient()
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects/999", nil)

		_, err := client.Do(context.Background(), txn)
		require.Error(t, err)
		assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
	})

	t.Run("a success within the budget stops retrying", func(t *testing.T) {
		t.Parallel()

		var attempts int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if atomic.AddInt64(&attempts, 1) < 2 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := bchttp.NewClient(bchttp.WithRetryConfig(5, time.Millisecond))
		txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/projects", nil)

		resp, err := client.Do(context.Background(), txn)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int64(2), atomic.LoadInt64(&attempts))
	})

	t.Run("request body is re-sent unchanged on retry", func(t *testing.T) {
		t.Parallel()

		var (
			attempts int64
			bodies   []string
		)

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			bodies = append(bodies, body["name"])

			if atomic.AddInt64(&attempts, 1) < 2 {
				writer.WriteHeader(http.StatusBadGateway)

				return
			}

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := bchttp.NewClient(bchttp.WithRetryConfig(1, time.Millisecond))
		txn := newTestTransaction(t, "POST", server.URL+"/acc/api/v1/projects", []byte(`{"name":"Launch"}`))

		resp, err := client.Do(context.Background(), txn)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, []string{"Launch", "Launch"}, bodies)
	})
}

func TestClient_PrepareChain(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/acc/api/v1/todos.json", request.URL.Path)
		assert.Equal(t, "hooked", request.Header.Get("X-Extra"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	chain := basecamp.DefaultPrepareChain("ident")
	chain.Add(basecamp.HeaderHook(map[string]string{"X-Extra": "hooked"}))

	client := bchttp.NewClient(bchttp.WithPrepare(chain))
	txn := newTestTransaction(t, "GET", server.URL+"/acc/api/v1/todos", nil)

	resp, err := client.Do(context.Background(), txn)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
