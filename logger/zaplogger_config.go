// zaplogger_config.go
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogOutputJSON    = "json"
	LogOutputConsole = "console"
)

// BuildLogger creates and returns a new zap backed Logger.
// Encoding is either "json" or "console"; the separator only applies to console output.
// The function panics if zap cannot build the logger, which only happens for invalid output paths.
func BuildLogger(logLevel LogLevel, encoding string, logConsoleSeparator string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()

	// Time settings
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"
	encoderCfg.NameKey = "logger"
	encoderCfg.StacktraceKey = "stacktrace"
	encoderCfg.LineEnding = zapcore.DefaultLineEnding
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder
	encoderCfg.EncodeName = zapcore.FullNameEncoder

	if encoding != LogOutputConsole {
		encoding = LogOutputJSON
	}

	if encoding == LogOutputConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if logConsoleSeparator != "" {
			encoderCfg.ConsoleSeparator = logConsoleSeparator
		}
	}

	level := zap.NewAtomicLevelAt(convertToZapLevel(logLevel))

	config := zap.Config{
		Level:             level,
		Development:       false,
		Encoding:          encoding,
		DisableCaller:     true,
		DisableStacktrace: true,
		Sampling:          nil,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger := zap.Must(config.Build())

	return &defaultLogger{
		logger:   logger,
		logLevel: logLevel,
		zapLevel: &level,
	}
}

// convertToZapLevel converts the custom LogLevel to a zapcore.Level
func convertToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zap.DebugLevel
	case LogLevelInfo:
		return zap.InfoLevel
	case LogLevelWarn:
		return zap.WarnLevel
	case LogLevelError:
		return zap.ErrorLevel
	case LogLevelDPanic:
		return zap.DPanicLevel
	case LogLevelPanic:
		return zap.PanicLevel
	case LogLevelFatal, LogLevelNone:
		return zap.FatalLevel
	default:
		return zap.InfoLevel // Default to InfoLevel
	}
}
