/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Structured logging for the FIS toolkit. Wraps logrus with a validated
configuration, optional timestamped log files with retention, and event helpers for parsing,
compilation, and evaluation.
*/

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

const filePrefix = "fis_"

// LoggerConfig holds the configuration for the logger.
// An empty OutputDir logs to the console only.
type LoggerConfig struct {
	Level     LogLevel  `json:"level" mapstructure:"level"`
	Format    LogFormat `json:"format" mapstructure:"format"`
	OutputDir string    `json:"output_dir" mapstructure:"output_dir"`
	MaxFiles  int       `json:"max_files" mapstructure:"max_files"`
	Timestamp bool      `json:"timestamp" mapstructure:"timestamp"`
	Caller    bool      `json:"caller" mapstructure:"caller"`
	Colors    bool      `json:"colors" mapstructure:"colors"`
}

// DefaultConfig returns console-only text logging at info level
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatCustom,
		MaxFiles:  10,
		Timestamp: true,
		Colors:    true,
	}
}

// Validate checks the LoggerConfig for invalid values
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" && c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive when output_dir is set")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger provides structured logging for FIS commands
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	logPath    string
	startTime  time.Time
}

// NewLogger creates a logger writing to console (nil means stderr) and the optional log file
func NewLogger(config *LoggerConfig, console io.Writer) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}
	if console == nil {
		console = os.Stderr
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
	}

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(config.Caller)
	l.setFormatter()

	out := console
	if config.OutputDir != "" {
		file, err := l.openLogFile()
		if err != nil {
			return nil, fmt.Errorf("failed to setup logger: %w", err)
		}
		out = io.MultiWriter(console, file)
	}
	l.logger.SetOutput(out)

	return l, nil
}

func (l *Logger) setFormatter() {
	prettyCaller := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyCaller,
		})
	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: prettyCaller,
		})
	default:
		l.logger.SetFormatter(&CustomFormatter{
			Timestamp: l.config.Timestamp,
			Caller:    l.config.Caller,
			Colors:    l.config.Colors,
		})
	}
}

// openLogFile creates a timestamped log file under OutputDir
func (l *Logger) openLogFile() (*os.File, error) {
	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("%s%s.log", filePrefix, l.startTime.Format("2006-01-02_15-04-05.000000"))
	path := filepath.Join(l.config.OutputDir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l.fileHandle = file
	l.logPath = path
	return file, nil
}

// LogPath returns the active log file, or "" when logging to the console only
func (l *Logger) LogPath() string {
	return l.logPath
}

// cleanup removes the oldest log files beyond MaxFiles
func (l *Logger) cleanup() error {
	if l.config.OutputDir == "" {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(l.config.OutputDir, filePrefix+"*.log"))
	if err != nil {
		return err
	}
	if len(files) <= l.config.MaxFiles {
		return nil
	}

	// file names embed their creation time
	sort.Strings(files)
	for _, f := range files[:len(files)-l.config.MaxFiles] {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}

// LogParse records the outcome of parsing a .fis file
func (l *Logger) LogParse(path string, duration time.Duration, err error, fields logrus.Fields) {
	entry := l.logger.WithFields(fields).WithFields(logrus.Fields{
		"file":     path,
		"duration": duration,
	})
	if err != nil {
		entry.WithError(err).Error("Parse failed")
		return
	}
	entry.Info("Parse completed")
}

// LogCompile records the outcome of compiling a system
func (l *Logger) LogCompile(system string, rules int, err error) {
	entry := l.logger.WithFields(logrus.Fields{
		"system": system,
		"rules":  rules,
	})
	if err != nil {
		entry.WithError(err).Error("Compile failed")
		return
	}
	entry.Debug("Compile completed")
}

// LogEvaluation records one crisp evaluation
func (l *Logger) LogEvaluation(runID string, inputs map[string]float64, output float64, err error) {
	entry := l.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"inputs": inputs,
	})
	if err != nil {
		entry.WithError(err).Warn("Evaluation failed")
		return
	}
	entry.WithField("output", output).Info("Evaluation completed")
}

// LogBatch records a finished batch run
func (l *Logger) LogBatch(runID string, total, failed int, duration time.Duration) {
	l.logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"vectors":  total,
		"failed":   failed,
		"duration": duration,
	}).Info("Batch completed")
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// Close closes the log file and applies retention
func (l *Logger) Close() error {
	var errs []error
	if l.fileHandle != nil {
		if err := l.fileHandle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
		l.fileHandle = nil
	}
	if err := l.cleanup(); err != nil {
		errs = append(errs, fmt.Errorf("failed to cleanup log files: %w", err))
	}
	return errors.Join(errs...)
}
