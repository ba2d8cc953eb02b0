// Package logger builds the zap logger handed to the collision registry.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/collision/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the log file written in LoggerConfig.Dir
const FileName = "collision.log"

// New creates a JSON logger writing to stdout and, when cfg.Dir is set, to a file.
// With cfg.Rotation the file is rotated by lumberjack.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core
	if cfg.Stdout {
		cores = append(cores, newJSONCore(zapcore.Lock(os.Stdout), level))
	}

	if cfg.Dir != "" {
		output, err := newFileOutput(cfg)
		if err != nil {
			return nil, err
		}
		cores = append(cores, newJSONCore(output, level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller()}
	return zap.New(zapcore.NewTee(cores...), options...), nil
}

// NewWithWriter creates a JSON logger writing to w, for tests and embedding
func NewWithWriter(w io.Writer, level string) (*zap.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	return zap.New(newJSONCore(zapcore.AddSync(w), zapLevel)), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger level %q invalid, must be one of: debug, info, warn or error", level)
	}
}

func newFileOutput(cfg config.LoggerConfig) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	fileName := filepath.Join(cfg.Dir, FileName)

	if cfg.Rotation {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   fileName,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   cfg.Compress,
		}), nil
	}

	output, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return zapcore.Lock(output), nil
}

func newJSONCore(output zapcore.WriteSyncer, level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(newJSONEncoder(), output, level)
}

func newJSONEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}
