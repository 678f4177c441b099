package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger builds the CLI logger: human-readable console output at Info
// and a JSON log file at Debug. env names the run environment and prefixes
// the log file; dir is where log files land, defaulting to "logs".
func InitLogger(env, dir string) (*zap.Logger, error) {
	if env == "" {
		env = "dev"
	}
	if dir == "" {
		dir = "logs"
	}

	logFile, err := openLogFile(env, dir)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewTee(
		consoleCore(),
		fileCore(logFile),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("env", env)),
	)
	return logger, nil
}

// openLogFile creates dir if needed and opens a timestamped log file in it
func openLogFile(env, dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	name := filepath.Join(dir, fmt.Sprintf("%s_scheduler_%s.log", env, timestamp))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logFile, nil
}

// consoleCore writes colored, short-timestamp lines to stdout at Info
func consoleCore() zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stdout), zapcore.InfoLevel)
}

// fileCore writes full JSON records to the log file at Debug
func fileCore(logFile *os.File) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(logFile), zapcore.DebugLevel)
}
