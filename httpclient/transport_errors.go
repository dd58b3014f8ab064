// httpclient/transport_errors.go
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
)

const connectionMessage = "Please check your internet connection and try again. "

// transportError maps a request that produced no HTTP response onto a ClientError naming the host.
func (c *Client) transportError(err error) *bferrors.ClientError {
	var message string
	switch {
	case isTimeout(err):
		message = fmt.Sprintf("Could not connect to BillForward (%s). %s", c.config.Host, connectionMessage)
	case isBrokenConnection(err):
		message = fmt.Sprintf("The connection to the server (%s) broke before the request completed. %s", c.config.Host, connectionMessage)
	case isDNSError(err):
		message = fmt.Sprintf("Unexpected error communicating when trying to connect to BillForward. "+
			"Please confirm that (%s) is a BillForward API URL. ", c.config.Host)
	default:
		message = "Unexpected error communicating with BillForward. "
	}

	return bferrors.NewTransportError(message, err)
}

// unexpectedResponseError handles a non-2xx response without a body, which carries nothing to classify.
func unexpectedResponseError(statusCode int) *bferrors.ClientError {
	return bferrors.NewTransportError(
		"Unexpected error communicating with BillForward. ",
		fmt.Errorf("Unexpected HTTP response code %d (%s)", statusCode, bferrors.TranslateStatusCode(statusCode)),
	)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isBrokenConnection(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
