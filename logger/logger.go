// Package logger is the process wide leveled logger. It is backed by zap and
// understands the severities of cfg.LogSeverity, including TRACE and OFF.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go-prime/cfg"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// TraceLevel sits below zap's debug level.
	TraceLevel = zapcore.DebugLevel - 1

	// offLevel is above every level a message can be written at.
	offLevel = zapcore.FatalLevel + 1
)

var defaultLogger atomic.Pointer[zap.SugaredLogger]

func init() {
	defaultLogger.Store(New(os.Stderr, cfg.LoggingConfig{
		Format:   cfg.TextLogFormat,
		Severity: cfg.InfoLogSeverity,
	}))
}

// Init replaces the default logger with one built from c. Logs go to
// c.FilePath through a rotating writer, or to stderr when no path is set.
func Init(c cfg.LoggingConfig) error {
	if c.FilePath == "" {
		defaultLogger.Store(New(os.Stderr, c))
		return nil
	}
	f, err := os.OpenFile(c.FilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("error while opening log file: %w", err)
	}
	// lumberjack reopens the file itself; the probe above only surfaces
	// permission problems early.
	f.Close()

	defaultLogger.Store(New(&lumberjack.Logger{
		Filename:   c.FilePath,
		MaxSize:    c.LogRotate.MaxFileSizeMb,
		MaxBackups: c.LogRotate.BackupFileCount,
		Compress:   c.LogRotate.Compress,
	}, c))
	return nil
}

// New builds a logger writing to w with the format and severity of c.
func New(w io.Writer, c cfg.LoggingConfig) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = encodeLevel
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "severity"

	var encoder zapcore.Encoder
	if c.Format == cfg.JSONLogFormat {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level(c.Severity)))
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

func level(severity cfg.LogSeverity) zapcore.Level {
	switch severity {
	case cfg.TraceLogSeverity:
		return TraceLevel
	case cfg.DebugLogSeverity:
		return zapcore.DebugLevel
	case cfg.WarningLogSeverity:
		return zapcore.WarnLevel
	case cfg.ErrorLogSeverity:
		return zapcore.ErrorLevel
	case cfg.OffLogSeverity:
		return offLevel
	default:
		return zapcore.InfoLevel
	}
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case TraceLevel:
		enc.AppendString("TRACE")
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	default:
		enc.AppendString(l.CapitalString())
	}
}

// Tracef prints the message with TRACE severity in the specified format.
func Tracef(format string, v ...interface{}) {
	defaultLogger.Load().Logf(TraceLevel, format, v...)
}

// Debugf prints the message with DEBUG severity in the specified format.
func Debugf(format string, v ...interface{}) {
	defaultLogger.Load().Debugf(format, v...)
}

// Infof prints the message with INFO severity in the specified format.
func Infof(format string, v ...interface{}) {
	defaultLogger.Load().Infof(format, v...)
}

// Warnf prints the message with WARNING severity in the specified format.
func Warnf(format string, v ...interface{}) {
	defaultLogger.Load().Warnf(format, v...)
}

// Errorf prints the message with ERROR severity in the specified format.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Load().Errorf(format, v...)
}

// Sync flushes any buffered log entries.
func Sync() error {
	return defaultLogger.Load().Sync()
}
