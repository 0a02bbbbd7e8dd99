package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/ncruces/go-strftime"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// -----------------------------------------------------------------------------

// Logger provides named, printf-style logging on top of zap.
type Logger struct {
	name   string
	logger *zap.SugaredLogger
	level  zap.AtomicLevel
}

// -----------------------------------------------------------------------------

// NewLogger creates a Logger writing to stderr. cfg may be nil, in which case
// the Logger domain defaults apply.
func NewLogger(cfg *models.MLogger, name string) *Logger {
	return NewLoggerTo(os.Stderr, cfg, name)
}

// NewLoggerTo creates a Logger writing to w.
func NewLoggerTo(w io.Writer, cfg *models.MLogger, name string) *Logger {
	settings := models.DefaultLogger()
	if cfg != nil {
		settings = *cfg
	}

	level := zap.NewAtomicLevelAt(ParseLevel(settings.StdoutLevel))

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = timeEncoder(settings.TimestampFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeCaller = nil
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return &Logger{
		name:   name,
		logger: zap.New(core).Named(name).Sugar(),
		level:  level,
	}
}

// -----------------------------------------------------------------------------

// ParseLevel maps the level names used in config files onto zap levels.
// Unknown names fall back to info.
func ParseLevel(text string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "trace", "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "critical", "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// timeEncoder accepts either a strftime pattern ("%Y-%m-%d %H:%M:%S") or a Go
// reference layout. Empty means ISO8601.
func timeEncoder(format string) zapcore.TimeEncoder {
	switch {
	case format == "":
		return zapcore.ISO8601TimeEncoder
	case strings.Contains(format, "%"):
		return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strftime.Format(format, t))
		}
	default:
		return zapcore.TimeEncoderOfLayout(format)
	}
}

// -----------------------------------------------------------------------------

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(text string) {
	l.level.SetLevel(ParseLevel(text))
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.logger.Errorf("CRITICAL: %s", fmt.Sprintf(format, args...))
	_ = l.logger.Sync()
	os.Exit(1)
}
