// Package logging provides the leveled, optionally colored logger used by
// every stage of a run. Terminal lines keep the classic
// "2006-01-02 15:04:05 [LEVEL] text" shape; the optional log file receives
// logrus text lines tagged with the run id.
package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/backmassage/roisplit/internal/config"
	"github.com/backmassage/roisplit/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// tagField carries levels logrus does not have (SUCCESS).
const tagField = "tag"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
	runID string
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile for
// appending. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg *config.Config, stdout, stderr io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	base := logrus.New()
	base.SetOutput(io.Discard)
	base.SetFormatter(&lineFormatter{})
	base.SetLevel(logrus.DebugLevel)
	base.AddHook(&streamHook{
		w:      stderr,
		levels: []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel},
	})
	base.AddHook(&streamHook{
		w:      stdout,
		levels: []logrus.Level{logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel},
	})

	l := &Logger{runID: uuid.NewString()}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		base.AddHook(&streamHook{
			w:         f,
			levels:    logrus.AllLevels,
			formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true, TimestampFormat: timeLayout},
		})
	}

	l.entry = base.WithField("run", l.runID)
	return l, nil
}

// RunID identifies this process in the log file.
func (l *Logger) RunID() string { return l.runID }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Success logs at SUCCESS level (green). It is an INFO entry tagged "SUCCESS".
func (l *Logger) Success(format string, args ...interface{}) {
	l.entry.WithField(tagField, "SUCCESS").Infof(format, args...)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.entry.Debugf(format, args...)
}

// lineFormatter renders "<ts> [LEVEL] text" with the level tag colored.
type lineFormatter struct{}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	level, color := levelTag(e)
	var b bytes.Buffer
	b.WriteString(e.Time.Format(timeLayout))
	b.WriteByte(' ')
	b.WriteString(term.Paint(color, "["+level+"]"))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(e *logrus.Entry) (string, string) {
	if tag, ok := e.Data[tagField].(string); ok && tag == "SUCCESS" {
		return tag, term.Green
	}
	switch e.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR", term.Red
	case logrus.WarnLevel:
		return "WARN", term.Yellow
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", term.Cyan
	default:
		return "INFO", term.Blue
	}
}

// streamHook writes entries of the given levels to w, formatted by formatter
// or, when nil, by the logger's own formatter.
type streamHook struct {
	mu        sync.Mutex
	w         io.Writer
	levels    []logrus.Level
	formatter logrus.Formatter
}

func (h *streamHook) Levels() []logrus.Level { return h.levels }

func (h *streamHook) Fire(e *logrus.Entry) error {
	var (
		line []byte
		err  error
	)
	if h.formatter != nil {
		line, err = h.formatter.Format(e)
	} else {
		line, err = e.Bytes()
	}
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(line)
	return err
}
