// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestStart logs the initiation of an HTTP request, including the HTTP method, URL, and headers.
// Headers must already be redacted by the caller.
func (d *defaultLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	if d.logLevel <= LogLevelDebug {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", url),
			zap.Any("headers", headers),
		}
		d.logger.Debug("HTTP request started", fields...)
	}
}

// LogRequestEnd logs the completion of an HTTP request, including the status code and duration.
func (d *defaultLogger) LogRequestEnd(event string, requestID string, method string, url string, statusCode int, duration time.Duration) {
	if d.logLevel <= LogLevelDebug {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		}
		d.logger.Debug("HTTP request completed", fields...)
	}
}

// LogError logs an error that occurs during the processing of an HTTP request.
func (d *defaultLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	if d.logLevel <= LogLevelError {
		errorMessage := ""
		if err != nil {
			errorMessage = err.Error()
		}

		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.String("status_message", serverStatusMessage),
			zap.String("error_message", errorMessage),
			zap.String("raw_response", rawResponse),
		}
		d.logger.Error("Error during HTTP request", fields...)
	}
}

// LogAuthTokenError logs a failed token acquisition.
func (d *defaultLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	if d.logLevel <= LogLevelError {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		}
		d.logger.Error("Error obtaining authentication token", fields...)
	}
}
