// authenticationhandler/auth_oauth.go

/* Password grant exchange against the BillForward OAuth endpoint. Credentials travel as query
parameters on a GET request and the endpoint answers with a JSON access token. */

package authenticationhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
	"github.com/deploymenttheory/go-api-sdk-billforward/headers/redact"
	"go.uber.org/zap"
)

// OAuthTokenEndpoint is appended to the configured host to form the token URL.
const OAuthTokenEndpoint = "oauth/token"

// OAuthResponse represents the response structure when obtaining an OAuth access token.
type OAuthResponse struct {
	AccessToken  string `json:"access_token"`            // AccessToken is the token that can be used in subsequent requests for authentication.
	ExpiresIn    int64  `json:"expires_in"`              // ExpiresIn specifies the duration in seconds after which the access token expires.
	TokenType    string `json:"token_type"`              // TokenType indicates the type of token, typically "bearer".
	RefreshToken string `json:"refresh_token,omitempty"` // RefreshToken is returned by the endpoint but not used; expired tokens are re-exchanged.
	Scope        string `json:"scope,omitempty"`
}

// obtainPasswordGrantToken performs one token exchange and returns the access token and its
// expiry. It does not touch the cache.
func (h *AuthTokenHandler) obtainPasswordGrantToken(ctx context.Context) (string, time.Time, error) {
	tokenURL := h.host + OAuthTokenEndpoint

	h.logger.Debug("Attempting to obtain OAuth token",
		zap.String("URL", tokenURL),
		zap.String("Username", h.credentials.Username),
		zap.String("ClientID", h.credentials.ClientID),
	)

	resp, err := h.transport.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"username":      h.credentials.Username,
			"password":      h.credentials.Password,
			"client_id":     h.credentials.ClientID,
			"client_secret": h.credentials.ClientSecret,
			"grant_type":    "password",
		}).
		Get(tokenURL)
	if err != nil {
		h.logger.LogAuthTokenError("oauth_token_request_error", http.MethodGet, tokenURL, 0, err)
		return "", time.Time{}, fmt.Errorf("failed to request OAuth token: %w", err)
	}

	if !resp.IsSuccess() {
		err := fmt.Errorf("OAuth token request failed with status code %d: %s",
			resp.StatusCode(), bferrors.TranslateStatusCode(resp.StatusCode()))
		h.logger.LogAuthTokenError("oauth_token_request_failed", http.MethodGet, tokenURL, resp.StatusCode(), err)
		return "", time.Time{}, err
	}

	oauthResp := &OAuthResponse{}
	if err := json.Unmarshal(resp.Body(), oauthResp); err != nil {
		h.logger.LogAuthTokenError("oauth_token_decode_error", http.MethodGet, tokenURL, resp.StatusCode(), err)
		return "", time.Time{}, fmt.Errorf("failed to decode OAuth response: %w", err)
	}

	if oauthResp.AccessToken == "" {
		err := errors.New("empty access token received")
		h.logger.LogAuthTokenError("oauth_token_missing", http.MethodGet, tokenURL, resp.StatusCode(), err)
		return "", time.Time{}, err
	}

	expiresIn := time.Duration(oauthResp.ExpiresIn) * time.Second
	expirationTime := h.now().Add(expiresIn)

	redactedAccessToken := redact.RedactSensitiveHeaderData(h.options.HideSensitiveData, "AccessToken", oauthResp.AccessToken)
	h.logger.Info("OAuth token obtained successfully",
		zap.String("AccessToken", redactedAccessToken),
		zap.Duration("ExpiresIn", expiresIn),
		zap.Time("ExpirationTime", expirationTime),
	)

	return oauthResp.AccessToken, expirationTime, nil
}
