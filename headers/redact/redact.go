// headers/redact/redact.go
package redact

import (
	"net/http"
	"net/url"
	"strings"
)

const redacted = "REDACTED"

// sensitiveKeys lists header names, query parameters and log keys whose values must not be
// written to logs when sensitive data is hidden. Keys are compared case-insensitively.
var sensitiveKeys = map[string]bool{
	"accesstoken":   true,
	"access_token":  true,
	"authorization": true,
	"token":         true,
	"api_token":     true,
	"apitoken":      true,
	"password":      true,
	"client_secret": true,
	"clientsecret":  true,
}

// IsSensitiveKey reports whether values stored under key are redacted.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && IsSensitiveKey(key) {
		return redacted
	}
	return value
}

// RedactHeaders returns a copy of headers suitable for logging.
func RedactHeaders(hideSensitiveData bool, headers http.Header) map[string][]string {
	out := make(map[string][]string, len(headers))
	for name, values := range headers {
		copied := make([]string, len(values))
		for i, value := range values {
			copied[i] = RedactSensitiveHeaderData(hideSensitiveData, name, value)
		}
		out[name] = copied
	}
	return out
}

// RedactURL replaces sensitive query parameter values in rawURL. Unparseable URLs are
// returned unchanged.
func RedactURL(hideSensitiveData bool, rawURL string) string {
	if !hideSensitiveData {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	for key := range query {
		if IsSensitiveKey(key) {
			query.Set(key, redacted)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
