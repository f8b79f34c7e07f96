package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger   *zap.Logger
	logLevel = zap.NewAtomicLevel()
)

// NewLogger builds the shared zap logger: JSON file output with rotation
// plus a console tee for local runs.
func NewLogger(serviceName string) *zap.Logger {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		panic(err)
	}

	logFile := filepath.Join(logDir, serviceName+".log")

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.LevelKey = "level"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	var writer io.Writer
	writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    500, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	fileCore := zapcore.NewCore(jsonEncoder, zapcore.AddSync(writer), logLevel)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(os.Stdout), zap.InfoLevel)

	core := zapcore.NewTee(fileCore, consoleCore)

	logger = zap.New(core, zap.AddCaller())
	return logger
}

func SetLogLevel(level string) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	logLevel.SetLevel(zapLevel)
	logger.Info("Log level set to", zap.String("level", level))
}

// WithTrace decorates the logger with the trace/span ids of the current span.
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()

	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
