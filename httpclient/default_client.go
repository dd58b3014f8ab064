// httpclient/default_client.go
package httpclient

import (
	"sync"

	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
)

var (
	defaultClientLock sync.RWMutex
	defaultClient     *Client
)

// SetDefaultClient installs client as the process-wide default. Passing nil resets it.
func SetDefaultClient(client *Client) {
	defaultClientLock.Lock()
	defer defaultClientLock.Unlock()
	defaultClient = client
}

// DefaultClient returns the process-wide default client, or an *errors.InstantiationError when
// none has been set.
func DefaultClient() (*Client, error) {
	defaultClientLock.RLock()
	defer defaultClientLock.RUnlock()

	if defaultClient == nil {
		return nil, &bferrors.InstantiationError{
			Message: "Failed to get default BillForward API Client; 'default_client' is nil. Please set a 'default_client' first.",
		}
	}
	return defaultClient, nil
}

// MakeDefaultClient builds a client from config, populating defaults, and installs it as the default.
func MakeDefaultClient(config ClientConfig) (*Client, error) {
	client, err := BuildClient(config, true)
	if err != nil {
		return nil, err
	}

	SetDefaultClient(client)
	return client, nil
}
