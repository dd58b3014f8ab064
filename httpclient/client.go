// httpclient/client.go
/* The `httpclient` package provides the BillForward API client. It authenticates with either a static API
token or an OAuth2 password grant, sends JSON requests over a resty transport and maps failed responses onto
the typed errors in the `errors` package. Requests are synchronous and never retried. */
package httpclient

import (
	"strings"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-sdk-billforward/authenticationhandler"
	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/deploymenttheory/go-api-sdk-billforward/redirecthandler"
	"github.com/deploymenttheory/go-api-sdk-billforward/version"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// EnvironmentDevelopment enables request diagnostics: URL, request id, token, payload and response.
const EnvironmentDevelopment = "development"

// Master struct/object
type Client struct {
	// Private
	config ClientConfig
	http   *resty.Client
	tokens *authenticationhandler.AuthTokenHandler

	orgLock        sync.Mutex
	organizationID string

	// Exported
	Logger logger.Logger
}

// ClientConfig holds the options a client is built from. It is not modified after BuildClient.
type ClientConfig struct {
	Host          string        `json:"host" mapstructure:"host"`               // Base URL, e.g. https://api-sandbox.billforward.net:443/v1/. Paths are appended verbatim.
	Environment   string        `json:"environment" mapstructure:"environment"` // "development" turns on request diagnostics.
	Auth          AuthConfig    `json:"auth" mapstructure:"auth"`
	ClientOptions ClientOptions `json:"client_options" mapstructure:"client_options"`
}

// AuthConfig holds either a static API token or the full set of password grant credentials.
type AuthConfig struct {
	APIToken     string `json:"api_token,omitempty" mapstructure:"api_token"`
	ClientID     string `json:"client_id,omitempty" mapstructure:"client_id"`
	ClientSecret string `json:"client_secret,omitempty" mapstructure:"client_secret"`
	Username     string `json:"username,omitempty" mapstructure:"username"`
	Password     string `json:"password,omitempty" mapstructure:"password"`
}

// ClientOptions holds optional settings for the HTTP client.
type ClientOptions struct {
	LogLevel                 string        `json:"log_level,omitempty" mapstructure:"log_level"`                 // Parsed with logger.ParseLogLevelFromString, e.g. "LogLevelInfo".
	LogOutputFormat          string        `json:"log_output_format,omitempty" mapstructure:"log_output_format"` // "json" or "console".
	LogConsoleSeparator      string        `json:"log_console_separator,omitempty" mapstructure:"log_console_separator"`
	HideSensitiveData        bool          `json:"hide_sensitive_data,omitempty" mapstructure:"hide_sensitive_data"`
	CustomTimeout            time.Duration `json:"custom_timeout,omitempty" mapstructure:"custom_timeout"`
	TokenRefreshBufferPeriod time.Duration `json:"token_refresh_buffer_period,omitempty" mapstructure:"token_refresh_buffer_period"`
	MaxRedirects             int           `json:"max_redirects,omitempty" mapstructure:"max_redirects"` // Only GET and HEAD redirects are followed.
}

// BuildClient creates a new BillForward client with the provided configuration. Invalid options
// yield an *errors.InstantiationError.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {
	if populateDefaultValues {
		SetDefaultValuesClientConfig(&config)
	}

	if err := validateClientConfig(config); err != nil {
		return nil, err
	}

	parsedLogLevel := logger.ParseLogLevelFromString(config.ClientOptions.LogLevel)
	if config.Environment == EnvironmentDevelopment {
		parsedLogLevel = logger.LogLevelDebug
	}
	log := logger.BuildLogger(parsedLogLevel, config.ClientOptions.LogOutputFormat, config.ClientOptions.LogConsoleSeparator)

	return newClient(config, log), nil
}

// newClient wires the transport and credential manager around an already validated config.
func newClient(config ClientConfig, log logger.Logger) *Client {
	transport := resty.New().
		SetTimeout(config.ClientOptions.CustomTimeout).
		SetRetryCount(0).
		SetLogger(newRestyLogger(log)).
		SetRedirectPolicy(redirecthandler.NewRedirectHandler(log, config.ClientOptions.MaxRedirects).Policy()).
		SetHeader("User-Agent", version.GetUserAgentHeader())

	authMethod, _ := authenticationhandler.DetermineAuthMethod(config.Auth.APIToken, credentialsFromConfig(config.Auth))

	var tokens *authenticationhandler.AuthTokenHandler
	switch authMethod {
	case authenticationhandler.AuthMethodStaticToken:
		tokens = authenticationhandler.NewStaticTokenHandler(strings.TrimSpace(config.Auth.APIToken), log)
	default:
		tokens = authenticationhandler.NewPasswordGrantHandler(
			config.Host,
			credentialsFromConfig(config.Auth),
			transport,
			log,
			authenticationhandler.Options{
				TokenRefreshBufferPeriod: config.ClientOptions.TokenRefreshBufferPeriod,
				HideSensitiveData:        config.ClientOptions.HideSensitiveData,
			},
		)
	}

	client := &Client{
		config: config,
		http:   transport,
		tokens: tokens,
		Logger: log,
	}

	log.Debug("New BillForward client initialized",
		zap.String("Host", config.Host),
		zap.String("Environment", config.Environment),
		zap.String("Authentication Method", string(tokens.AuthMethod())),
		zap.String("Log Encoding Format", config.ClientOptions.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.ClientOptions.HideSensitiveData),
		zap.Duration("Token Refresh Buffer Period", config.ClientOptions.TokenRefreshBufferPeriod),
		zap.Duration("Custom Timeout", config.ClientOptions.CustomTimeout),
		zap.Int("Max Redirects", config.ClientOptions.MaxRedirects),
	)

	return client
}

func credentialsFromConfig(auth AuthConfig) authenticationhandler.ClientCredentials {
	return authenticationhandler.ClientCredentials{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		Username:     auth.Username,
		Password:     auth.Password,
	}
}

// Host returns the base URL requests are sent to.
func (c *Client) Host() string {
	return c.config.Host
}

// Environment returns the configured environment name.
func (c *Client) Environment() string {
	return c.config.Environment
}

// AuthTokenHandler exposes the credential manager, e.g. to invalidate a token after a 401.
func (c *Client) AuthTokenHandler() *authenticationhandler.AuthTokenHandler {
	return c.tokens
}

func (c *Client) isDevelopment() bool {
	return c.config.Environment == EnvironmentDevelopment
}
