package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mwantia/gofile/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerService interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Fatal(msg string, args ...any)

	Named(name string) LoggerService
}

type Logger struct {
	cfg    config.LogConfig
	name   string
	level  LogLevel
	writer io.Writer
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Scope     string `json:"scope,omitempty"`
	Message   string `json:"message"`
}

// NewLoggerService creates a leveled logger writing to stdout and, when
// configured, a rotated log file.
func NewLoggerService(name string, cfg config.LogConfig) LoggerService {
	l := &Logger{
		cfg:   cfg,
		name:  name,
		level: Parse(cfg.Level),
	}

	l.writer = buildWriter(cfg)
	return l
}

func buildWriter(cfg config.LogConfig) io.Writer {
	var writers []io.Writer

	if !cfg.NoTerminal {
		writers = append(writers, os.Stdout)
	}

	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		})
	}

	if len(writers) == 0 {
		return os.Stdout
	}
	return io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}

	timestamp := time.Now().Format(l.cfg.TimeFormat)
	formatted := fmt.Sprintf(msg, args...)

	if l.cfg.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Scope:     l.name,
			Message:   formatted,
		}

		data, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", data)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.name)
		}

		if !l.cfg.NoTerminal && !l.cfg.NoColor {
			fmt.Fprintf(l.writer, "%s%s %s\033[0m\n", Color(level), prefix, formatted)
		} else {
			fmt.Fprintf(l.writer, "%s %s\n", prefix, formatted)
		}
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

func (l *Logger) Named(name string) LoggerService {
	scope := name
	if l.name != "" {
		scope = fmt.Sprintf("%s/%s", l.name, name)
	}

	return &Logger{
		cfg:    l.cfg,
		name:   scope,
		level:  l.level,
		writer: l.writer, // Share the same writer
	}
}
