package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Logger splits user-facing output from diagnostics.
// Info goes to stdout as plain text; debug, warnings and errors go to stderr through zerolog.
type Logger struct {
	out  io.Writer
	diag zerolog.Logger
}

// New returns a Logger writing info to out and diagnostics to errOut.
func New(out, errOut io.Writer, verbose bool) *Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:          errOut,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return &Logger{
		out:  out,
		diag: zerolog.New(console).Level(level),
	}
}

// Debug prints a formatted message to stderr only if verbose is set.
// Consider these messages useful for developers of the CLI.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.diag.Debug().Msgf(format, args...)
}

// Infoln prints all args to stdout followed by a newline.
func (l *Logger) Infoln(args ...interface{}) {
	fmt.Fprintln(l.out, args...)
}

// Debugf, Warnf and Errorf let the HTTP client log through this Logger.

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.diag.Warn().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.diag.Error().Msgf(format, args...)
}
