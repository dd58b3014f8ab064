// httpclient/testing_helpers_test.go
package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-sdk-billforward/authenticationhandler"
	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/go-resty/resty/v2"
)

// recordedRequest is what the fake API saw for one call.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// fakeAPI stands in for BillForward: an OAuth token endpoint plus canned resource routes.
type fakeAPI struct {
	*httptest.Server

	tokenCalls atomic.Int32
	expiresIn  int

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{expiresIn: 3600, routes: map[string]http.HandlerFunc{}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serveHTTP))
	t.Cleanup(api.Close)

	return api
}

// host returns the base URL in the form the client expects, with a trailing slash.
func (a *fakeAPI) host() string {
	return a.URL + "/"
}

// handle registers a handler for "METHOD /path".
func (a *fakeAPI) handle(method, path string, handler http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[method+" "+path] = handler
}

// respond registers a canned response.
func (a *fakeAPI) respond(method, path string, status int, contentType, body string) {
	a.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// resourceRequests returns every recorded call that was not a token exchange.
func (a *fakeAPI) resourceRequests() []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]recordedRequest(nil), a.requests...)
}

func (a *fakeAPI) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/oauth/token" {
		n := a.tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"access_token":"access-%d","token_type":"bearer","expires_in":%d}`, n, a.expiresIn)
		return
	}

	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.requests = append(a.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	handler, ok := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"errorType":"NotFound","errorMessage":"no route","errorParameters":[]}}`)
		return
	}
	handler(w, r)
}

// fakeClock is a manually advanced clock for token expiry.
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

func staticTokenConfig(host, token string) ClientConfig {
	config := ClientConfig{
		Host:        host,
		Environment: "sandbox",
		Auth:        AuthConfig{APIToken: token},
	}
	SetDefaultValuesClientConfig(&config)
	return config
}

func passwordGrantConfig(host string) ClientConfig {
	config := ClientConfig{
		Host:        host,
		Environment: "sandbox",
		Auth: AuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Username:     "admin@example.com",
			Password:     "hunter22",
		},
	}
	SetDefaultValuesClientConfig(&config)
	return config
}

// newTestClient builds a client that logs nowhere.
func newTestClient(t *testing.T, config ClientConfig) *Client {
	t.Helper()
	return newClient(config, logger.NewNopLogger())
}

// newTestPasswordGrantClient builds a password grant client whose token expiry follows clock.
func newTestPasswordGrantClient(t *testing.T, host string, clock *fakeClock) *Client {
	t.Helper()

	config := passwordGrantConfig(host)
	client := newTestClient(t, config)
	client.tokens = authenticationhandler.NewPasswordGrantHandler(
		host,
		credentialsFromConfig(config.Auth),
		resty.New(),
		logger.NewNopLogger(),
		authenticationhandler.Options{Now: clock.Now},
	)
	return client
}

// newUnreachableTokenHandler returns a password grant handler whose token endpoint refuses
// connections, so Token always yields the empty sentinel.
func newUnreachableTokenHandler(t *testing.T) *authenticationhandler.AuthTokenHandler {
	t.Helper()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedHost := closed.URL + "/"
	closed.Close()

	return authenticationhandler.NewPasswordGrantHandler(
		closedHost,
		authenticationhandler.ClientCredentials{ClientID: "id", ClientSecret: "secret", Username: "user", Password: "pass"},
		resty.New(),
		logger.NewNopLogger(),
		authenticationhandler.Options{},
	)
}
