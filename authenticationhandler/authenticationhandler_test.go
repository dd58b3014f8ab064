// authenticationhandler/authenticationhandler_test.go
package authenticationhandler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCredentials = ClientCredentials{
	ClientID:     "4d1c9a0e-client",
	ClientSecret: "s3cr3t",
	Username:     "admin@example.com",
	Password:     "hunter22",
}

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// tokenServer serves the OAuth endpoint and counts exchanges.
type tokenServer struct {
	*httptest.Server
	calls     atomic.Int32
	expiresIn int
	status    int
	body      string
	lastQuery atomic.Value
}

func newTokenServer(t *testing.T, expiresIn int) *tokenServer {
	t.Helper()

	ts := &tokenServer{expiresIn: expiresIn, status: http.StatusOK}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := ts.calls.Add(1)
		ts.lastQuery.Store(r.URL.Query())

		if r.Method != http.MethodGet || r.URL.Path != "/oauth/token" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ts.status)
		if ts.body != "" {
			_, _ = w.Write([]byte(ts.body))
			return
		}
		_, _ = fmt.Fprintf(w, `{"access_token":"access-%d","token_type":"bearer","expires_in":%d}`, n, ts.expiresIn)
	}))
	t.Cleanup(ts.Close)

	return ts
}

func newTestPasswordGrantHandler(ts *tokenServer, clock *fakeClock, opts Options) *AuthTokenHandler {
	opts.Now = clock.Now
	return NewPasswordGrantHandler(ts.URL+"/", testCredentials, resty.New(), logger.NewNopLogger(), opts)
}

func TestStaticTokenHandler(t *testing.T) {
	h := NewStaticTokenHandler("tok-1", nil)

	assert.Equal(t, AuthMethodStaticToken, h.AuthMethod())
	assert.Equal(t, "tok-1", h.Token(context.Background()))
	assert.Equal(t, "tok-1", h.Token(context.Background()))

	h.Invalidate()
	token, err := h.ObtainToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.True(t, h.Expires().IsZero())
}

func TestPasswordGrant_ExchangeParameters(t *testing.T) {
	ts := newTokenServer(t, 3600)
	h := newTestPasswordGrantHandler(ts, newFakeClock(), Options{})

	token, err := h.ObtainToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "access-1", token)

	query := ts.lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"admin@example.com"}, query["username"])
	assert.Equal(t, []string{"hunter22"}, query["password"])
	assert.Equal(t, []string{"4d1c9a0e-client"}, query["client_id"])
	assert.Equal(t, []string{"s3cr3t"}, query["client_secret"])
	assert.Equal(t, []string{"password"}, query["grant_type"])
}

func TestPasswordGrant_ReusesTokenWhileValid(t *testing.T) {
	ts := newTokenServer(t, 3600)
	clock := newFakeClock()
	h := newTestPasswordGrantHandler(ts, clock, Options{})

	first := h.Token(context.Background())
	clock.Advance(30 * time.Minute)
	second := h.Token(context.Background())

	assert.Equal(t, "access-1", first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, ts.calls.Load())
	assert.Equal(t, clock.Now().Add(30*time.Minute), h.Expires())
}

func TestPasswordGrant_RefreshesAfterExpiry(t *testing.T) {
	ts := newTokenServer(t, 1)
	clock := newFakeClock()
	h := newTestPasswordGrantHandler(ts, clock, Options{})

	first := h.Token(context.Background())
	clock.Advance(2 * time.Second)
	second := h.Token(context.Background())

	assert.Equal(t, "access-1", first)
	assert.Equal(t, "access-2", second)
	assert.EqualValues(t, 2, ts.calls.Load())
}

func TestPasswordGrant_RefreshBufferPeriod(t *testing.T) {
	ts := newTokenServer(t, 60)
	clock := newFakeClock()
	h := newTestPasswordGrantHandler(ts, clock, Options{TokenRefreshBufferPeriod: 30 * time.Second})

	h.Token(context.Background())
	clock.Advance(20 * time.Second)
	h.Token(context.Background())
	assert.EqualValues(t, 1, ts.calls.Load())

	clock.Advance(15 * time.Second)
	h.Token(context.Background())
	assert.EqualValues(t, 2, ts.calls.Load())
}

func TestPasswordGrant_Invalidate(t *testing.T) {
	ts := newTokenServer(t, 3600)
	h := newTestPasswordGrantHandler(ts, newFakeClock(), Options{})

	assert.Equal(t, "access-1", h.Token(context.Background()))
	h.Invalidate()
	assert.Equal(t, "access-2", h.Token(context.Background()))
	assert.EqualValues(t, 2, ts.calls.Load())
}

func TestPasswordGrant_ConcurrentCallersShareOneExchange(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"shared","expires_in":3600}`))
	}))
	defer server.Close()

	h := NewPasswordGrantHandler(server.URL+"/", testCredentials, nil, nil, Options{})

	const callers = 10
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = h.Token(context.Background())
		}(i)
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, token := range tokens {
		assert.Equal(t, "shared", token)
	}
	assert.EqualValues(t, 1, calls.Load())
}

func TestPasswordGrant_CancelledCallerDoesNotFailSharedExchange(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"survivor","expires_in":3600}`))
	}))
	defer server.Close()

	h := NewPasswordGrantHandler(server.URL+"/", testCredentials, nil, nil, Options{})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := h.ObtainToken(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan string, 1)
	go func() {
		second <- h.Token(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared exchange")
	}

	close(release)
	select {
	case token := <-second:
		assert.Equal(t, "survivor", token)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never received a token")
	}
	assert.EqualValues(t, 1, calls.Load())

	token, err := h.ObtainToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "survivor", token)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPasswordGrant_SoftFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"non-2xx", http.StatusUnauthorized, `{"error":"invalid_grant"}`, "status code 401"},
		{"malformed JSON", http.StatusOK, `{"access_token":`, "failed to decode OAuth response"},
		{"missing token", http.StatusOK, `{"expires_in":3600}`, "empty access token received"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTokenServer(t, 3600)
			ts.status = tt.status
			ts.body = tt.body
			h := newTestPasswordGrantHandler(ts, newFakeClock(), Options{})

			assert.Equal(t, "", h.Token(context.Background()))

			_, err := h.ObtainToken(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPasswordGrant_TransportFailure(t *testing.T) {
	ts := newTokenServer(t, 3600)
	closedURL := ts.URL
	ts.Close()

	h := NewPasswordGrantHandler(closedURL+"/", testCredentials, resty.New(), nil, Options{})

	assert.Equal(t, "", h.Token(context.Background()))
	_, err := h.ObtainToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to request OAuth token")
}

func TestPasswordGrant_FailureIsLogged(t *testing.T) {
	ts := newTokenServer(t, 3600)
	ts.status = http.StatusInternalServerError
	ts.body = "boom"

	mockLogger := logger.NewMockLogger()
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return()
	mockLogger.On("Warn", "No authentication token available", mock.Anything).Return()
	mockLogger.On("LogAuthTokenError", "oauth_token_request_failed", http.MethodGet, ts.URL+"/oauth/token", http.StatusInternalServerError, mock.Anything).Return()

	h := NewPasswordGrantHandler(ts.URL+"/", testCredentials, resty.New(), mockLogger, Options{})

	assert.Equal(t, "", h.Token(context.Background()))
	mockLogger.AssertExpectations(t)
}

func TestDetermineAuthMethod(t *testing.T) {
	tests := []struct {
		name        string
		apiToken    string
		credentials ClientCredentials
		expected    AuthMethod
		ok          bool
	}{
		{"token only", "tok", ClientCredentials{}, AuthMethodStaticToken, true},
		{"token wins over credentials", "tok", testCredentials, AuthMethodStaticToken, true},
		{"full quadruple", "", testCredentials, AuthMethodPasswordGrant, true},
		{"partial quadruple", "", ClientCredentials{ClientID: "id", Username: "u"}, "", false},
		{"nothing", "  ", ClientCredentials{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, ok := DetermineAuthMethod(tt.apiToken, tt.credentials)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, method)
		})
	}
}

func TestClientCredentials_MissingFields(t *testing.T) {
	assert.Empty(t, testCredentials.MissingFields())
	assert.True(t, testCredentials.IsComplete())
	assert.True(t, ClientCredentials{}.IsEmpty())
	assert.Equal(t, []string{"client_secret", "password"},
		ClientCredentials{ClientID: "id", Username: "user"}.MissingFields())
}

func TestPasswordGrant_ExchangeTimeout(t *testing.T) {
	bounded := NewPasswordGrantHandler("https://api.example.com/", testCredentials, resty.New().SetTimeout(5*time.Second), nil, Options{})
	unbounded := NewPasswordGrantHandler("https://api.example.com/", testCredentials, nil, nil, Options{})

	assert.Equal(t, 5*time.Second, bounded.exchangeTimeout())
	assert.Equal(t, DefaultTokenExchangeTimeout, unbounded.exchangeTimeout())
}
