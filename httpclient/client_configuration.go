// httpclient/client_configuration.go
// Description: This file contains functions to load configuration values from a file or environment variables
// and to populate defaults for missing options.
package httpclient

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultLogLevelString           = "LogLevelInfo"
	DefaultLogOutputFormatString    = "json"
	DefaultLogConsoleSeparator      = "\t"
	DefaultHideSensitiveData        = true
	DefaultCustomTimeout            = 30 * time.Second
	DefaultTokenRefreshBufferPeriod = 0 * time.Second
	DefaultMaxRedirects             = 10
	EnvPrefix                       = "BILLFORWARD"
)

// envBindings maps configuration keys onto environment variable names. Every variable carries the
// BILLFORWARD_ prefix, e.g. BILLFORWARD_HOST or BILLFORWARD_API_TOKEN.
var envBindings = map[string]string{
	"host":                                       "HOST",
	"environment":                                "ENVIRONMENT",
	"auth.api_token":                             "API_TOKEN",
	"auth.client_id":                             "CLIENT_ID",
	"auth.client_secret":                         "CLIENT_SECRET",
	"auth.username":                              "USERNAME",
	"auth.password":                              "PASSWORD",
	"client_options.log_level":                   "LOG_LEVEL",
	"client_options.log_output_format":           "LOG_OUTPUT_FORMAT",
	"client_options.log_console_separator":       "LOG_CONSOLE_SEPARATOR",
	"client_options.hide_sensitive_data":         "HIDE_SENSITIVE_DATA",
	"client_options.custom_timeout":              "CUSTOM_TIMEOUT",
	"client_options.token_refresh_buffer_period": "TOKEN_REFRESH_BUFFER_PERIOD",
	"client_options.max_redirects":               "MAX_REDIRECTS",
}

// LoadConfigFromFile loads http client configuration settings from a JSON, YAML or TOML file. The
// format is taken from the file extension. Defaults are applied to missing options.
func LoadConfigFromFile(filepath string) (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(filepath)
	setViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read configuration file %s: %w", filepath, err)
	}

	var config ClientConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not decode configuration file %s: %w", filepath, err)
	}

	SetDefaultValuesClientConfig(&config)

	return &config, nil
}

// LoadConfigFromEnv loads http client configuration settings from BILLFORWARD_* environment variables.
// Unset variables fall back to the defaults defined in the constants.
func LoadConfigFromEnv() (*ClientConfig, error) {
	v := viper.New()
	setViperDefaults(v)

	for key, name := range envBindings {
		if err := v.BindEnv(key, EnvPrefix+"_"+name); err != nil {
			return nil, fmt.Errorf("could not bind environment variable %s_%s: %w", EnvPrefix, name, err)
		}
	}

	var config ClientConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not decode environment configuration: %w", err)
	}

	SetDefaultValuesClientConfig(&config)

	return &config, nil
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("client_options.log_level", DefaultLogLevelString)
	v.SetDefault("client_options.log_output_format", DefaultLogOutputFormatString)
	v.SetDefault("client_options.hide_sensitive_data", DefaultHideSensitiveData)
	v.SetDefault("client_options.custom_timeout", DefaultCustomTimeout)
	v.SetDefault("client_options.max_redirects", DefaultMaxRedirects)
}

// SetDefaultValuesClientConfig sets default values for the client configuration options if none are provided.
// A negative refresh buffer is reset to zero.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	setDefaultValue(&config.ClientOptions.LogLevel, DefaultLogLevelString)
	setDefaultValue(&config.ClientOptions.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultValue(&config.ClientOptions.LogConsoleSeparator, DefaultLogConsoleSeparator)

	if config.ClientOptions.CustomTimeout <= 0 {
		config.ClientOptions.CustomTimeout = DefaultCustomTimeout
	}

	if config.ClientOptions.MaxRedirects <= 0 {
		config.ClientOptions.MaxRedirects = DefaultMaxRedirects
	}

	if config.ClientOptions.TokenRefreshBufferPeriod < 0 {
		config.ClientOptions.TokenRefreshBufferPeriod = DefaultTokenRefreshBufferPeriod
	}
}

// setDefaultValue sets a string field to defaultValue when it is empty.
func setDefaultValue(field *string, defaultValue string) {
	if *field == "" {
		*field = defaultValue
	}
}
