// httpclient/headers.go
package httpclient

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-billforward/headers/redact"
	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const jsonMediaType = "application/json"

// SetAuthorizationHeader sets the Authorization header for the request. An empty token still
// produces a bearer header.
func SetAuthorizationHeader(req *resty.Request, token string) {
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	req.SetHeader("Authorization", token)
}

// SetContentType sets the Content-Type header for the request.
func SetContentType(req *resty.Request, contentType string) {
	req.SetHeader("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func SetAccept(req *resty.Request, acceptHeader string) {
	req.SetHeader("Accept", acceptHeader)
}

// setRequestHeaders applies the headers every BillForward call carries. User-Agent is set once on
// the transport.
func setRequestHeaders(req *resty.Request, method string, token string) {
	SetAuthorizationHeader(req, token)
	SetAccept(req, jsonMediaType)
	if carriesPayload(method) {
		SetContentType(req, jsonMediaType)
	}
}

func carriesPayload(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

// HeadersToString converts headers to a string for logging, one header per line in name order.
func HeadersToString(headers map[string][]string) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(headerStrings, "\n")
}

// LogHeaders logs the request headers at debug level, redacting credentials when hideSensitiveData is set.
func LogHeaders(log logger.Logger, headers http.Header, hideSensitiveData bool) {
	if log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	log.Debug("HTTP Request Headers", zap.String("Headers", HeadersToString(redact.RedactHeaders(hideSensitiveData, headers))))
}

// CheckDeprecationHeader checks the response headers for the Deprecation header and logs a warning if present.
func CheckDeprecationHeader(resp *resty.Response, log logger.Logger) {
	deprecationHeader := resp.Header().Get("Deprecation")
	if deprecationHeader != "" {
		log.Warn("API endpoint is deprecated",
			zap.String("Date", deprecationHeader),
			zap.String("Endpoint", resp.Request.URL),
		)
	}
}
