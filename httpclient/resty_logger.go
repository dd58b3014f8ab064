// httpclient/resty_logger.go
package httpclient

import (
	"fmt"

	"github.com/deploymenttheory/go-api-sdk-billforward/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// restyLogger routes the transport's own diagnostics into the client logger.
type restyLogger struct {
	log logger.Logger
}

var _ resty.Logger = (*restyLogger)(nil)

func newRestyLogger(log logger.Logger) *restyLogger {
	return &restyLogger{log: log.With(zap.String("component", "transport"))}
}

func (l *restyLogger) Errorf(format string, v ...any) {
	_ = l.log.Error(fmt.Sprintf(format, v...))
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
