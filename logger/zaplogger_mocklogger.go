// zaplogger_mocklogger.go
package logger

import (
	"errors"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zapcore"
)

// MockLogger is a testify mock implementing Logger. Every call is recorded, so tests must
// register expectations (mock.Anything is usually enough for field slices).
type MockLogger struct {
	mock.Mock
	logLevel LogLevel
}

// NewMockLogger creates a new instance of MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

var _ Logger = (*MockLogger)(nil)

func (m *MockLogger) GetLogLevel() LogLevel {
	return m.logLevel
}

func (m *MockLogger) SetLevel(level LogLevel) {
	m.logLevel = level
}

// With returns the same mock so expectations keep applying to derived loggers.
func (m *MockLogger) With(fields ...zapcore.Field) Logger {
	return m
}

func (m *MockLogger) Debug(msg string, fields ...zapcore.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields ...zapcore.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...zapcore.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...zapcore.Field) error {
	m.Called(msg, fields)
	return errors.New(msg)
}

func (m *MockLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	m.Called(event, requestID, method, url, headers)
}

func (m *MockLogger) LogRequestEnd(event string, requestID string, method string, url string, statusCode int, duration time.Duration) {
	m.Called(event, requestID, method, url, statusCode, duration)
}

func (m *MockLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	m.Called(event, method, url, statusCode, serverStatusMessage, err, rawResponse)
}

func (m *MockLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	m.Called(event, method, url, statusCode, err)
}
