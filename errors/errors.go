// errors/errors.go
// Package errors defines the error taxonomy surfaced by the BillForward client: construction
// failures, transport and wrapped API failures, missing tokens, and classified API errors.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrEmptyResults is returned by list helpers that need at least one result.
var ErrEmptyResults = stderrors.New("cannot get first; request returned empty list of results")

// InstantiationError reports construction options that cannot produce a client.
type InstantiationError struct {
	Message string
}

func (e *InstantiationError) Error() string {
	return e.Message
}

// ClientError represents a transport failure or an API failure wrapped by a verb.
// Response is the body decoded as JSON when possible, otherwise nil.
type ClientError struct {
	Message  string
	Body     string
	Response any
	Err      error

	causeInMessage bool
}

// NewClientError builds a ClientError, decoding body as JSON on a best-effort basis.
func NewClientError(message string, body string, cause error) *ClientError {
	clientErr := &ClientError{
		Message: message,
		Body:    body,
		Err:     cause,
	}

	if body != "" {
		var decoded any
		if err := json.Unmarshal([]byte(body), &decoded); err == nil {
			clientErr.Response = decoded
		}
	}

	return clientErr
}

// NewTransportError builds the ClientError for a request that produced no usable HTTP response.
// The cause is appended to the message as "(Network error: ...)".
func NewTransportError(message string, cause error) *ClientError {
	return &ClientError{
		Message:        fmt.Sprintf("%s\n\n(Network error: %s)", message, cause),
		Err:            cause,
		causeInMessage: true,
	}
}

func (e *ClientError) Error() string {
	if e.Err == nil || e.causeInMessage {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

// Unwrap exposes the classified cause.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// TokenError is a ClientError raised when a strict verb cannot obtain a bearer token.
type TokenError struct {
	*ClientError
}

// NewTokenError builds a TokenError with the given message.
func NewTokenError(message string) *TokenError {
	return &TokenError{ClientError: NewClientError(message, "", nil)}
}

// Unwrap returns the embedded ClientError so errors.As matches both types.
func (e *TokenError) Unwrap() error {
	return e.ClientError
}

// APIError is an error response classified by the API error pipeline. Structured errors carry
// Type, Message and Parameters; unclassified ones only carry RawResponse.
type APIError struct {
	StatusCode  int
	Type        string
	Message     string
	Parameters  []any
	RawResponse string
	Details     []string
}

// Structured reports whether the error body matched the documented JSON error shape.
func (e *APIError) Structured() bool {
	return e.Type != ""
}

func (e *APIError) Error() string {
	if !e.Structured() {
		return fmt.Sprintf("====\n%d API Error.\n Response body: %s\n====", e.StatusCode, e.RawResponse)
	}

	return fmt.Sprintf("====\n%d API Error.\nType: %s\nMessage: %s\nParameters: %s\n====",
		e.StatusCode, e.Type, e.Message, formatParameters(e.Parameters))
}

// AuthorizationError is an APIError parsed from the legacy XML OAuth error body.
type AuthorizationError struct {
	APIError
	Code        string
	Description string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("====\n%d Authorization failed.\nType: %s\nError: %s\nDescription: %s\n====",
		e.StatusCode, e.Type, e.Code, e.Description)
}

// Unwrap returns the embedded APIError so errors.As matches both types.
func (e *AuthorizationError) Unwrap() error {
	return &e.APIError
}

// IsClientError reports whether err is or wraps a ClientError.
func IsClientError(err error) bool {
	var target *ClientError
	return stderrors.As(err, &target)
}

// IsTokenError reports whether err is or wraps a TokenError.
func IsTokenError(err error) bool {
	var target *TokenError
	return stderrors.As(err, &target)
}

// IsAPIError reports whether err is or wraps an APIError, including authorization errors.
func IsAPIError(err error) bool {
	var target *APIError
	return stderrors.As(err, &target)
}

// IsAuthorizationError reports whether err is or wraps an AuthorizationError.
func IsAuthorizationError(err error) bool {
	var target *AuthorizationError
	return stderrors.As(err, &target)
}

// IsInstantiationError reports whether err is or wraps an InstantiationError.
func IsInstantiationError(err error) bool {
	var target *InstantiationError
	return stderrors.As(err, &target)
}

func formatParameters(params []any) string {
	quoted := make([]string, 0, len(params))
	for _, p := range params {
		quoted = append(quoted, fmt.Sprintf("%q", fmt.Sprint(p)))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
