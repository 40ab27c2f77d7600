package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates the application logger. The TUI owns the terminal, so logs go
// to a rotated file under the state dir instead of stdout.
func New(debug bool) (*zap.Logger, error) {
	path, err := DefaultLogPath()
	if err != nil {
		return nil, err
	}
	return NewAt(path, debug)
}

// NewAt creates a file logger writing to the given path.
func NewAt(path string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 2,
		MaxAge:     14, // days
	})

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)

	return zap.New(core), nil
}

// DefaultLogPath resolves the log file path:
// $XDG_STATE_HOME/quizforge/quizforge.log or ~/.local/state/quizforge/quizforge.log.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "quizforge", "quizforge.log"), nil
}
