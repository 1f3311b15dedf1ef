package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MikeBiancalana/datepick/internal/config"
)

// LogFileName is the file written in TUI mode when no file is configured
const LogFileName = "datepick.log"

// Config controls logger initialization
type Config struct {
	Level   string // DEBUG, INFO, WARN, ERROR
	Format  string // text or json
	File    string // explicit log file; empty means stderr, or the default file in TUI mode
	TUIMode bool   // the terminal is owned by bubbletea, so never write to stderr
}

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	output    io.WriteCloser
)

func init() {
	Initialize()
}

// ConfigFromEnv reads LOG_LEVEL, DATEPICK_DEBUG and LOG_FORMAT
func ConfigFromEnv() Config {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("DATEPICK_DEBUG")
		if levelStr == "1" || levelStr == "true" {
			levelStr = "DEBUG"
		} else {
			levelStr = "INFO"
		}
	}

	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "text"
	}

	return Config{Level: levelStr, Format: format}
}

// Initialize sets up the logger from the environment
func Initialize() {
	_ = InitializeWithConfig(ConfigFromEnv())
}

// InitializeWithConfig (re)builds the global logger. Outside TUI mode a log
// file that cannot be opened falls back to stderr. In TUI mode stderr belongs
// to the terminal UI, so the failure is returned and output is discarded.
func InitializeWithConfig(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	closeOutputLocked()

	logLevel = parseLevel(cfg.Level)
	logFormat = strings.ToLower(cfg.Format)
	if logFormat != "json" {
		logFormat = "text"
	}
	tuiMode = cfg.TUIMode
	logFile = cfg.File

	if logFile == "" && tuiMode {
		if dir, err := config.LogDir(); err == nil {
			logFile = filepath.Join(dir, LogFileName)
		}
	}

	var (
		w      io.Writer = os.Stderr
		result error
	)
	if logFile != "" {
		f, err := openLogFile(logFile)
		switch {
		case err == nil:
			output = f
			w = f
		case tuiMode:
			result = fmt.Errorf("TUI mode requires file-based logging: %w", err)
			w = io.Discard
		default:
			fmt.Fprintf(os.Stderr, "logger: %v; logging to stderr\n", err)
		}
	} else if tuiMode {
		result = fmt.Errorf("TUI mode requires file-based logging: no log directory")
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if logFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	return result
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func closeOutputLocked() error {
	if output == nil {
		return nil
	}
	err := output.Close()
	output = nil
	return err
}

// Close releases the log file, if any. Safe to call more than once.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeOutputLocked()
}

func GetLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func GetLogFile() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFile
}

func IsTUIMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tuiMode
}

// OrDefault returns l, or the global logger when l is nil
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return GetLogger()
	}
	return l
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
