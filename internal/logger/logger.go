package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger wraps zerolog to provide a simplified API for the application.
// A nil *Logger discards everything, so components may be built without one.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// ForComponent tags every entry with the component name and a fresh
// correlation id, so the entries of one command run can be grouped.
func (l *Logger) ForComponent(component string) *Logger {
	return l.WithFields(map[string]any{
		"component":      component,
		"correlation_id": uuid.NewString(),
	})
}

// With returns a derived logger carrying the key/value pairs.
func (l *Logger) With(keyvals ...any) *Logger {
	if l == nil {
		return nil
	}
	derived := Logger{base: l.base.With().Fields(pairs(keyvals)).Logger()}
	return &derived
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.base.Info().Fields(pairs(keyvals)).Msg(msg)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.base.Debug().Fields(pairs(keyvals)).Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.base.Warn().Fields(pairs(keyvals)).Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string, keyvals ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Fields(pairs(keyvals)).Msg(msg)
}

// pairs drops a trailing key without value and any non-string key.
func pairs(keyvals []any) map[string]any {
	fields := make(map[string]any, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok || key == "" {
			continue
		}
		fields[key] = keyvals[i+1]
	}
	return fields
}
