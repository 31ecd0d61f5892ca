// Package logging builds the zap logger. The terminal belongs to the UI, so
// log output goes to a size-rotated file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions are all options supported by the rotating file sink.
type FileOptions struct {
	// Filename is the active log file; rotated files sit next to it.
	Filename string
	// MaxSize is in megabytes.
	MaxSize int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
	// Level is a zap level name: debug, info, warn, error.
	Level string
}

// New returns a JSON logger writing to a rotated file.
func New(opts FileOptions) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.Filename), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		SyncerWithRotation(opts),
		level,
	)
	return zap.New(core, zap.AddCaller()), nil
}

// SyncerWithRotation wraps a lumberjack logger as a zap WriteSyncer.
func SyncerWithRotation(opts FileOptions) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
	})
}
