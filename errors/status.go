// errors/status.go
package errors

import (
	"fmt"
	"net/http"
)

// statusMessages maps the status codes BillForward is known to return to operator friendly text.
var statusMessages = map[int]string{
	http.StatusOK:                  "Request successful.",
	http.StatusCreated:             "Request to create or update resource successful.",
	http.StatusAccepted:            "The request was accepted for processing, but the processing has not completed.",
	http.StatusNoContent:           "Request successful. No content to send for this request.",
	http.StatusBadRequest:          "Bad request. Verify the syntax of the request.",
	http.StatusUnauthorized:        "Authentication failed. Verify the credentials being used for the request.",
	http.StatusPaymentRequired:     "Payment required. Access to the requested resource requires payment.",
	http.StatusForbidden:           "Invalid permissions. Verify the account has the proper permissions for the resource.",
	http.StatusNotFound:            "Resource not found. Verify the URL path is correct.",
	http.StatusMethodNotAllowed:    "Method not allowed. The method specified is not allowed for the resource.",
	http.StatusNotAcceptable:       "Not acceptable. The server cannot produce a response matching the list of acceptable values.",
	http.StatusRequestTimeout:      "Request timeout. The server timed out waiting for the request.",
	http.StatusConflict:            "Conflict. The request could not be processed because of conflict in the request.",
	http.StatusGone:                "Gone. The resource requested is no longer available and will not be available again.",
	http.StatusUnprocessableEntity: "Unprocessable entity. The server understands the content type and syntax of the request but was unable to process the contained instructions.",
	http.StatusTooManyRequests:     "Too many requests. The user has sent too many requests in a given amount of time.",
	http.StatusInternalServerError: "Internal server error. The server encountered an unexpected condition that prevented it from fulfilling the request.",
	http.StatusNotImplemented:      "Not implemented. The server does not support the functionality required to fulfill the request.",
	http.StatusBadGateway:          "Bad gateway. The server received an invalid response from the upstream server while trying to fulfill the request.",
	http.StatusServiceUnavailable:  "Service unavailable. The server is currently unable to handle the request due to temporary overloading or maintenance.",
	http.StatusGatewayTimeout:      "Gateway timeout. The server did not receive a timely response from the upstream server.",
}

// TranslateStatusCode provides a human-readable message for HTTP status codes.
// A zero status code means no response was received.
func TranslateStatusCode(statusCode int) string {
	if statusCode == 0 {
		return "No status code received, possible network or connection error."
	}

	if message, exists := statusMessages[statusCode]; exists {
		return message
	}
	return fmt.Sprintf("Unknown status code: %d", statusCode)
}

// IsSuccessStatusCode reports whether statusCode is in the 2xx range.
func IsSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
