// httpclient/methods.go
package httpclient

import (
	"context"
	"net/http"

	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
	"github.com/deploymenttheory/go-api-sdk-billforward/response"
	"go.uber.org/zap"
)

const apiCallFailedMessage = "BillForward API call failed"

// Requester is the verb surface resource models call. *Client implements it.
type Requester interface {
	Get(ctx context.Context, path string, params map[string]string) (any, error)
	Retire(ctx context.Context, path string) (any, error)
	Post(ctx context.Context, path string, data any) (any, error)
	MustPost(ctx context.Context, path string, data any) (any, error)
	Put(ctx context.Context, path string, data any) (any, error)
}

var _ Requester = (*Client)(nil)

// Get fetches path with optional query parameters. When no token can be obtained the request is
// still sent with an empty bearer and the API's answer decides the outcome. Transport and API
// failures are returned as classified.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (any, error) {
	token := c.tokens.Token(ctx)

	result, err := c.doRequest(ctx, http.MethodGet, path, params, nil, token)
	if err != nil {
		return nil, err
	}
	return result.decoded, nil
}

// Retire sends DELETE to path. It returns nil, nil when no token can be obtained and a
// *errors.ClientError wrapping the classified failure otherwise.
func (c *Client) Retire(ctx context.Context, path string) (any, error) {
	token := c.tokens.Token(ctx)
	if token == "" {
		return nil, nil
	}

	return c.sendWrapped(ctx, http.MethodDelete, path, nil, token)
}

// Post sends data as JSON to path. It returns nil, nil when no token can be obtained and a
// *errors.ClientError wrapping the classified failure otherwise.
func (c *Client) Post(ctx context.Context, path string, data any) (any, error) {
	token := c.tokens.Token(ctx)
	if token == "" {
		return nil, nil
	}

	return c.sendWrapped(ctx, http.MethodPost, path, data, token)
}

// MustPost is Post that fails with a *errors.TokenError when no token can be obtained.
func (c *Client) MustPost(ctx context.Context, path string, data any) (any, error) {
	token := c.tokens.Token(ctx)
	if token == "" {
		return nil, bferrors.NewTokenError("Could not get API Token")
	}

	return c.sendWrapped(ctx, http.MethodPost, path, data, token)
}

// Put sends data as JSON to path. Every failure, including a missing token, is logged and
// reported as nil, nil.
func (c *Client) Put(ctx context.Context, path string, data any) (any, error) {
	token := c.tokens.Token(ctx)
	if token == "" {
		return nil, nil
	}

	result, err := c.doRequest(ctx, http.MethodPut, path, nil, data, token)
	if err != nil {
		c.Logger.Warn("BillForward PUT failed", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
	return result.decoded, nil
}

// sendWrapped runs a request and wraps any failure in a ClientError carrying the response body.
func (c *Client) sendWrapped(ctx context.Context, method, path string, data any, token string) (any, error) {
	result, err := c.doRequest(ctx, method, path, nil, data, token)
	if err != nil {
		var body string
		if result != nil {
			body = string(result.body)
		}
		return nil, bferrors.NewClientError(apiCallFailedMessage, body, err)
	}
	return result.decoded, nil
}

// GetResults returns the "results" array of a GET. A nil response or empty results yield an empty slice.
func (c *Client) GetResults(ctx context.Context, path string) ([]any, error) {
	payload, err := c.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return response.Results(payload), nil
}

// GetFirst returns the first result of a GET, or errors.ErrEmptyResults when there is none.
func (c *Client) GetFirst(ctx context.Context, path string) (any, error) {
	payload, err := c.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	first, ok := response.FirstResult(payload)
	if !ok {
		return nil, bferrors.ErrEmptyResults
	}
	return first, nil
}

// RetireFirst returns the first result of a Retire, or nil when there is none.
func (c *Client) RetireFirst(ctx context.Context, path string) (any, error) {
	return firstOf(c.Retire(ctx, path))
}

// PutFirst returns the first result of a Put, or nil when there is none.
func (c *Client) PutFirst(ctx context.Context, path string, data any) (any, error) {
	return firstOf(c.Put(ctx, path, data))
}

// PostFirst returns the first result of a Post, or nil when there is none.
func (c *Client) PostFirst(ctx context.Context, path string, data any) (any, error) {
	return firstOf(c.Post(ctx, path, data))
}

// MustPostFirst returns the first result of a MustPost, or nil when there is none.
func (c *Client) MustPostFirst(ctx context.Context, path string, data any) (any, error) {
	return firstOf(c.MustPost(ctx, path, data))
}

func firstOf(payload any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	first, _ := response.FirstResult(payload)
	return first, nil
}
