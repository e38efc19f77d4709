package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/busline/seatplan/pkg/cache"
	"github.com/busline/seatplan/pkg/httputil"
)

var fastPolicy = httputil.Policy{Attempts: 3, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test:", time.Hour, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	if _, ok := client.cache.(*cache.NullCache); !ok {
		t.Errorf("nil cache should become NullCache, got %T", client.cache)
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var override, auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		override = r.Header.Get("X-Override")
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	headers := BearerHeaders("secret")
	headers["X-Override"] = "default"
	client := NewClient(nil, "test:", time.Hour, headers)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if override != "overridden" {
		t.Errorf("header = %q, want %q", override, "overridden")
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestClientGetStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		want      error
		retryable bool
	}{
		{"404", http.StatusNotFound, ErrNotFound, false},
		{"401", http.StatusUnauthorized, ErrUnauthorized, false},
		{"500", http.StatusInternalServerError, ErrNetwork, true},
		{"429", http.StatusTooManyRequests, ErrRateLimited, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			client := NewClient(nil, "test:", time.Hour, nil)
			client.SetHTTPClient(server.Client())

			var resp map[string]string
			err := client.Get(context.Background(), server.URL, &resp)
			if !errors.Is(err, tt.want) {
				t.Errorf("Get() error = %v, want %v", err, tt.want)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", httputil.IsRetryable(err), tt.retryable)
			}
		})
	}
}

func TestClientGetBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if err == nil {
		t.Fatal("Get() should fail on malformed JSON")
	}
	if httputil.IsRetryable(err) {
		t.Error("decode errors should not be retryable")
	}
}

func TestClientCached(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, "test:", time.Hour, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second testData
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}
	if _, hit, _ := c.Get(context.Background(), "test:key"); !hit {
		t.Error("Cached() should store under the client prefix")
	}
}

func TestClientCachedRefresh(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, "test:", time.Hour, nil)

	fetchCount := 0
	var value string
	fetch := func() error {
		fetchCount++
		value = "fetched"
		return nil
	}

	for range 2 {
		if err := client.Cached(context.Background(), "key", true, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", fetchCount)
	}
}

func TestClientCachedRetries(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetPolicy(fastPolicy)

	calls := 0
	var value string
	err := client.Cached(context.Background(), "key", false, &value, func() error {
		calls++
		if calls < 3 {
			return httputil.Retryable(ErrNetwork)
		}
		value = "ok"
		return nil
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetPolicy(fastPolicy)

	fetchCount := 0
	var value string
	err := client.Cached(context.Background(), "key", false, &value, func() error {
		fetchCount++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", fetchCount)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		retryAfter string
		wantType   error
		isRetryErr bool
		wantAfter  time.Duration
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantType: ErrNotFound},
		{name: "401 Unauthorized", code: 401, wantType: ErrUnauthorized},
		{name: "403 Forbidden", code: 403, wantType: ErrUnauthorized},
		{name: "400 Bad Request", code: 400, wantType: ErrNetwork},
		{name: "429 with Retry-After", code: 429, retryAfter: "7", wantType: ErrRateLimited, isRetryErr: true, wantAfter: 7 * time.Second},
		{name: "429 without Retry-After", code: 429, wantType: ErrRateLimited, isRetryErr: true},
		{name: "500 Internal Server Error", code: 500, wantType: ErrNetwork, isRetryErr: true},
		{name: "503 Service Unavailable", code: 503, wantType: ErrNetwork, isRetryErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.code, Header: http.Header{}}
			if tt.retryAfter != "" {
				resp.Header.Set("Retry-After", tt.retryAfter)
			}
			err := checkStatus(resp)

			if tt.wantType == nil {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			var retryErr *httputil.RetryableError
			if errors.As(err, &retryErr) != tt.isRetryErr {
				t.Errorf("checkStatus() retryable = %v, want %v", !tt.isRetryErr, tt.isRetryErr)
			}
			if tt.isRetryErr && retryErr.After != tt.wantAfter {
				t.Errorf("After = %v, want %v", retryErr.After, tt.wantAfter)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"-1", 0},
		{"soon", 0},
		{"Mon, 02 Jan 2006 15:04:05 GMT", 0}, // in the past
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBearerHeaders(t *testing.T) {
	if BearerHeaders("  ") != nil {
		t.Error("blank token should produce nil headers")
	}
	if got := BearerHeaders("abc")["Authorization"]; got != "Bearer abc" {
		t.Errorf("Authorization = %q", got)
	}
}
