// Package logger is the process-wide structured logger. Nothing is written
// before Init, and Init never creates the config directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habyt/internal/constants"
)

// Logger is the global logger instance; nil until Init.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr defaults to os.Stderr
	Stderr io.Writer
}

// Init (re)configures Logger. If ConfigDir exists, entries go to the rotated
// <ConfigDir>/logs/habyt.log and debug mode echoes them to stderr. If it does
// not exist yet, entries go to stderr only. Calling Init again after the
// directory has been created switches to the file.
func Init(cfg Config) error {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	file, err := openLogFile(cfg.ConfigDir)
	if err != nil {
		return err
	}

	var writer io.Writer
	switch {
	case file == nil:
		writer = stderr
	case cfg.Debug:
		writer = io.MultiWriter(stderr, file)
	default:
		writer = file
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// openLogFile returns nil when configDir is missing.
func openLogFile(configDir string) (io.Writer, error) {
	info, err := os.Stat(configDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", configDir)
	}

	logDir := filepath.Join(configDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}, nil
}

// With returns a child of Logger that adds keyvals to every entry, or a
// discarding logger before Init.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.With(keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
