// Package logging provides the leveled console logger used by every command,
// built on zerolog. Console output is human-readable (or JSON), ERROR lines
// go to stderr, and an optional log file always receives JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/vp9batch/internal/config"
	"github.com/backmassage/vp9batch/internal/term"
)

const consoleTimeFormat = "2006-01-02 15:04:05"

// Logger wraps a zerolog.Logger with printf-style level helpers. Child
// loggers created by With share the parent's sinks; only the root owns the
// log file.
type Logger struct {
	z    zerolog.Logger
	file *fileSink
}

type fileSink struct {
	mu sync.Mutex
	f  *os.File
}

// NewLogger builds the process logger from cfg. Call Close when done if
// cfg.Log.File was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg *config.Config, stdout, stderr io.Writer) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out, errOut io.Writer = stdout, stderr
	if cfg.Log.Format != config.LogFormatJSON {
		color := false
		if f, ok := stdout.(*os.File); ok {
			color = term.ColorEnabled(cfg.Log.Color, f)
		} else {
			color = cfg.Log.Color == config.ColorAlways
		}
		out = consoleWriter(stdout, color)
		errOut = consoleWriter(stderr, color)
	}

	writers := []io.Writer{splitWriter{out: out, err: errOut}}

	l := &Logger{}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = &fileSink{f: f}
		writers = append(writers, l.file)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	l.z = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return l, nil
}

// New returns a JSON logger at debug level writing to w. Intended for
// tests and embedding, where console formatting gets in the way.
func New(w io.Writer) *Logger {
	return &Logger{z: zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zerolog.Nop()}
}

func consoleWriter(w io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: consoleTimeFormat,
	}
}

// splitWriter routes ERROR and above to err, everything else to out.
type splitWriter struct {
	out io.Writer
	err io.Writer
}

func (s splitWriter) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s splitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel && level != zerolog.NoLevel {
		return s.err.Write(p)
	}
	return s.out.Write(p)
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return len(p), nil
	}
	return s.f.Write(p)
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.file.mu.Lock()
	defer l.file.mu.Unlock()
	if l.file.f != nil {
		err := l.file.f.Close()
		l.file.f = nil
		return err
	}
	return nil
}

// With returns a child logger carrying an extra structured field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{z: l.z.With().Interface(key, value).Logger(), file: l.file}
}

// Zerolog exposes the underlying logger for structured call sites.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.z
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.z.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs at INFO level tagged status=success.
func (l *Logger) Success(format string, args ...interface{}) {
	l.z.Info().Str("status", "success").Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.z.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (stderr on the console).
func (l *Logger) Error(format string, args ...interface{}) {
	l.z.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the logger level allows it.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.z.Debug().Msg(fmt.Sprintf(format, args...))
}
