// httpclient/config_validation.go
package httpclient

import (
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-billforward/authenticationhandler"
	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
	"github.com/deploymenttheory/go-api-sdk-billforward/headers/redact"
)

const instantiationFailureMessage = "Failed to initialize BillForward API Client\n" +
	"Required parameters: host and environment, and either [api_token] or all of [client_id, client_secret, username, password].\n" +
	"Supplied Parameters: %s"

// validateClientConfig checks that host and environment are present and that the auth section
// holds either an API token or complete password grant credentials.
func validateClientConfig(config ClientConfig) error {
	if strings.TrimSpace(config.Host) == "" || strings.TrimSpace(config.Environment) == "" {
		return newInstantiationError(config)
	}

	if _, ok := authenticationhandler.DetermineAuthMethod(config.Auth.APIToken, credentialsFromConfig(config.Auth)); !ok {
		return newInstantiationError(config)
	}

	return nil
}

func newInstantiationError(config ClientConfig) *bferrors.InstantiationError {
	return &bferrors.InstantiationError{
		Message: fmt.Sprintf(instantiationFailureMessage, suppliedParameters(config)),
	}
}

// suppliedParameters renders the non-empty construction options with secrets redacted.
func suppliedParameters(config ClientConfig) string {
	supplied := []struct {
		key   string
		value string
	}{
		{"host", config.Host},
		{"environment", config.Environment},
		{"api_token", config.Auth.APIToken},
		{"client_id", config.Auth.ClientID},
		{"client_secret", config.Auth.ClientSecret},
		{"username", config.Auth.Username},
		{"password", config.Auth.Password},
	}

	var parts []string
	for _, option := range supplied {
		if option.value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %q", option.key, redact.RedactSensitiveHeaderData(true, option.key, option.value)))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
