package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Config struct {
	Level  string
	Format string
	Output io.Writer
}

type field struct {
	key string
	val any
}

// Logger is a small leveled logger writing text or JSON lines. Output
// goes to stderr by default so the report on stdout stays parseable.
// With derives a logger that stamps a key/value pair on every line.
type Logger struct {
	mu     *sync.Mutex
	level  Level
	out    io.Writer
	json   bool
	fields []field
}

func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		mu:    &sync.Mutex{},
		level: parseLevel(cfg.Level),
		out:   out,
		json:  strings.EqualFold(strings.TrimSpace(cfg.Format), "json"),
	}
}

// With returns a derived logger carrying an extra field. The derived
// logger shares the parent's output and lock.
func (l *Logger) With(key string, value any) *Logger {
	derived := *l
	derived.fields = append(append([]field(nil), l.fields...), field{key, value})
	return &derived
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, "DEBUG", format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logf(LevelInfo, "INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, "WARN", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logf(LevelError, "ERROR", format, args...)
}

func (l *Logger) logf(level Level, label string, format string, args ...any) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	now := time.Now().Format(time.RFC3339)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.json {
		line := map[string]any{
			"time":  now,
			"level": label,
			"msg":   msg,
		}
		for _, f := range l.fields {
			line[f.key] = f.val
		}
		if enc, err := json.Marshal(line); err == nil {
			fmt.Fprintf(l.out, "%s\n", enc)
			return
		}
	}
	var suffix strings.Builder
	for _, f := range l.fields {
		fmt.Fprintf(&suffix, " %s=%v", f.key, f.val)
	}
	fmt.Fprintf(l.out, "%s [%s] %s%s\n", now, label, msg, suffix.String())
}

func parseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
