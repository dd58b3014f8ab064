// authenticationhandler/authenticationhandler.go

package authenticationhandler

import (
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

// AuthMethod identifies how the handler produces bearer tokens.
type AuthMethod string

const (
	// AuthMethodStaticToken returns a preconfigured API token and never touches the network.
	AuthMethodStaticToken AuthMethod = "token"
	// AuthMethodPasswordGrant exchanges client and user credentials for an expiring access token.
	AuthMethodPasswordGrant AuthMethod = "password_grant"
)

// AuthTokenHandler manages authentication tokens.
type AuthTokenHandler struct {
	authMethod  AuthMethod
	host        string
	credentials ClientCredentials
	transport   *resty.Client
	logger      logger.Logger
	options     Options

	tokenLock sync.RWMutex // guards token and expires
	token     string
	expires   time.Time
	refresh   singleflight.Group

	now func() time.Time
}

// ClientCredentials holds the credentials necessary for the password grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Options tunes token caching and what ends up in logs.
type Options struct {
	// TokenRefreshBufferPeriod is subtracted from the token lifetime when checking validity.
	// Zero reuses a token until the instant it expires.
	TokenRefreshBufferPeriod time.Duration
	// HideSensitiveData redacts tokens in log output.
	HideSensitiveData bool
	// Now overrides the clock used for expiry, time.Now when nil.
	Now func() time.Time
}

// NewStaticTokenHandler creates a handler that always returns token.
func NewStaticTokenHandler(token string, log logger.Logger) *AuthTokenHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &AuthTokenHandler{
		authMethod: AuthMethodStaticToken,
		token:      token,
		logger:     log,
		now:        time.Now,
	}
}

// NewPasswordGrantHandler creates a handler that obtains access tokens from {host}oauth/token.
// A nil transport gets a default resty client.
func NewPasswordGrantHandler(host string, credentials ClientCredentials, transport *resty.Client, log logger.Logger, opts Options) *AuthTokenHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if transport == nil {
		transport = resty.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &AuthTokenHandler{
		authMethod:  AuthMethodPasswordGrant,
		host:        host,
		credentials: credentials,
		transport:   transport,
		logger:      log,
		options:     opts,
		now:         now,
	}
}

// AuthMethod reports which mode the handler runs in.
func (h *AuthTokenHandler) AuthMethod() AuthMethod {
	return h.authMethod
}

// Expires returns the expiry of the cached access token. It is the zero time for static tokens
// and before the first exchange.
func (h *AuthTokenHandler) Expires() time.Time {
	h.tokenLock.RLock()
	defer h.tokenLock.RUnlock()
	return h.expires
}
