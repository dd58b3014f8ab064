// authenticationhandler/auth_token_management.go
package authenticationhandler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Token returns a bearer token for the next request. Password grant failures are logged and
// reported as the empty string; callers that need the cause use ObtainToken.
func (h *AuthTokenHandler) Token(ctx context.Context) string {
	token, err := h.ObtainToken(ctx)
	if err != nil {
		h.logger.Warn("No authentication token available", zap.Error(err))
		return ""
	}
	return token
}

// DefaultTokenExchangeTimeout bounds a shared exchange when the transport has no timeout.
const DefaultTokenExchangeTimeout = 30 * time.Second

// ObtainToken returns the cached token while it is valid and otherwise performs a single
// password grant exchange, shared by all callers waiting on it. The exchange is detached from
// the cancellation of whichever caller started it; each caller stops waiting when its own ctx
// is done.
func (h *AuthTokenHandler) ObtainToken(ctx context.Context) (string, error) {
	if h.authMethod == AuthMethodStaticToken {
		return h.token, nil
	}

	if token, ok := h.cachedToken(); ok {
		return token, nil
	}

	flight := h.refresh.DoChan(string(AuthMethodPasswordGrant), func() (any, error) {
		// A caller that lost the race may find the token already refreshed.
		if token, ok := h.cachedToken(); ok {
			return token, nil
		}

		h.logger.Debug("Token found to be invalid or close to expiry, obtaining a new one")

		exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.exchangeTimeout())
		defer cancel()

		token, expires, err := h.obtainPasswordGrantToken(exchangeCtx)
		if err != nil {
			return "", err
		}

		h.tokenLock.Lock()
		h.token = token
		h.expires = expires
		h.tokenLock.Unlock()

		return token, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return "", result.Err
		}
		if result.Shared {
			h.logger.Debug("Token refresh shared with concurrent callers")
		}
		return result.Val.(string), nil
	}
}

// exchangeTimeout is the transport timeout, or DefaultTokenExchangeTimeout when none is set.
func (h *AuthTokenHandler) exchangeTimeout() time.Duration {
	if timeout := h.transport.GetClient().Timeout; timeout > 0 {
		return timeout
	}
	return DefaultTokenExchangeTimeout
}

// Invalidate drops the cached access token so the next call performs a fresh exchange.
// Static tokens are unaffected.
func (h *AuthTokenHandler) Invalidate() {
	if h.authMethod == AuthMethodStaticToken {
		return
	}

	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()
	h.token = ""
	h.expires = time.Time{}
}

func (h *AuthTokenHandler) cachedToken() (string, bool) {
	h.tokenLock.RLock()
	defer h.tokenLock.RUnlock()
	return h.token, h.isTokenValid()
}

// isTokenValid checks if the current token is non-empty and not about to expire. The caller
// holds tokenLock.
func (h *AuthTokenHandler) isTokenValid() bool {
	return h.token != "" && h.now().Add(h.options.TokenRefreshBufferPeriod).Before(h.expires)
}
