// Package redirecthandler decides which redirects the BillForward transport follows.
package redirecthandler

import (
	"fmt"
	"net/http"

	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultMaxRedirects is used when no positive limit is configured.
const DefaultMaxRedirects = 10

// RedirectHandler contains configurations for handling HTTP redirects.
type RedirectHandler struct {
	Logger           logger.Logger
	MaxRedirects     int      // Maximum allowed redirects to prevent infinite loops.
	SensitiveHeaders []string // Headers to be removed on cross-domain redirects.
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if maxRedirects < 1 {
		maxRedirects = DefaultMaxRedirects
	}

	return &RedirectHandler{
		Logger:           log,
		MaxRedirects:     maxRedirects,
		SensitiveHeaders: []string{"Authorization", "Cookie"},
	}
}

// AddSensitiveHeader allows adding configurable sensitive headers.
func (r *RedirectHandler) AddSensitiveHeader(header string) {
	r.SensitiveHeaders = append(r.SensitiveHeaders, header)
}

// Policy adapts the handler to a resty redirect policy.
func (r *RedirectHandler) Policy() resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(r.checkRedirect)
}

// checkRedirect follows redirects for GET and HEAD only. Any other method gets the 3xx response
// itself, which the client then reports as a failed call. The method is taken from the first
// request in the chain: on 301, 302 and 303 net/http has already rewritten req to a GET.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	method := req.Method
	if len(via) > 0 {
		method = via[0].Method
	}
	if method != http.MethodGet && method != http.MethodHead {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", method))
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("maxRedirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	for _, previous := range via {
		if previous.URL.String() == req.URL.String() {
			r.Logger.Error("Redirect loop detected", zap.String("url", req.URL.String()))
			return &RedirectLoopError{URL: req.URL.String()}
		}
	}

	if len(via) > 0 && via[0].URL.Host != req.URL.Host {
		r.secureRequest(req)
	}

	r.Logger.Debug("Redirecting request", zap.String("newURL", req.URL.String()), zap.Int("redirectCount", len(via)))
	return nil
}

// secureRequest removes sensitive headers from the request if the new destination is a different domain.
func (r *RedirectHandler) secureRequest(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		req.Header.Del(header)
	}
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}
