// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
	"github.com/deploymenttheory/go-api-sdk-billforward/headers/redact"
	"github.com/deploymenttheory/go-api-sdk-billforward/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// apiResponse is what doRequest knows about a call that reached the API.
type apiResponse struct {
	statusCode int
	body       []byte
	decoded    any
}

// doRequest sends one request and classifies the outcome. The returned apiResponse is nil when no
// HTTP response was received; the error is a *errors.ClientError for transport failures and the
// classified *errors.APIError / *errors.AuthorizationError for non-2xx responses.
func (c *Client) doRequest(ctx context.Context, method, path string, params map[string]string, payload any, token string) (*apiResponse, error) {
	log := c.Logger
	hide := c.config.ClientOptions.HideSensitiveData

	fullURL := composeURL(c.config.Host, path, params)
	requestID := uuid.NewString()

	req := c.http.R().SetContext(ctx)
	setRequestHeaders(req, method, token)

	if carriesPayload(method) {
		requestData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		req.SetBody(requestData)
	}

	if c.isDevelopment() {
		log.Debug("BillForward request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", redact.RedactURL(hide, fullURL)),
			zap.String("token", redact.RedactSensitiveHeaderData(hide, "token", token)),
		)
		if carriesPayload(method) && payload != nil {
			log.Debug("BillForward request payload", zap.String("request_id", requestID), zap.String("payload", response.PrettyJSON(payload)))
		}
	}

	LogHeaders(log, req.Header, hide)
	log.LogRequestStart("request_start", requestID, method, redact.RedactURL(hide, fullURL), redact.RedactHeaders(hide, req.Header))

	startTime := time.Now()
	resp, err := req.Execute(method, fullURL)
	if err != nil {
		log.LogError("request_transport_error", method, redact.RedactURL(hide, fullURL), 0, bferrors.TranslateStatusCode(0), err, "")
		return nil, c.transportError(err)
	}

	log.LogRequestEnd("request_end", requestID, method, redact.RedactURL(hide, fullURL), resp.StatusCode(), time.Since(startTime))
	CheckDeprecationHeader(resp, log)

	result := &apiResponse{
		statusCode: resp.StatusCode(),
		body:       resp.Body(),
	}

	if !resp.IsSuccess() {
		var apiErr error
		if len(bytes.TrimSpace(result.body)) == 0 {
			apiErr = unexpectedResponseError(result.statusCode)
		} else {
			apiErr = response.HandleAPIErrorResponse(result.statusCode, resp.Header().Get("Content-Type"), result.body)
		}

		log.LogError("request_error", method, redact.RedactURL(hide, fullURL), result.statusCode,
			bferrors.TranslateStatusCode(result.statusCode), apiErr, string(result.body))
		return result, apiErr
	}

	decoded, err := response.HandleAPISuccessResponse(result.body)
	if err != nil {
		return result, bferrors.NewClientError("BillForward API returned a malformed response", string(result.body), err)
	}
	result.decoded = decoded

	if c.isDevelopment() {
		log.Debug("BillForward response",
			zap.String("request_id", requestID),
			zap.Int("status_code", result.statusCode),
			zap.String("response", response.PrettyJSON(decoded)),
		)
	}

	return result, nil
}

// composeURL appends path to host verbatim. Query parameters are encoded in key order and joined
// with '&' when path already carries a query string.
func composeURL(host, path string, params map[string]string) string {
	fullURL := host + path
	if len(params) == 0 {
		return fullURL
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return fullURL + separator + values.Encode()
}
