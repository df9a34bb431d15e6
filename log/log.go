// Package log is a thin wrapper around zerolog offering printf style and
// structured key/value helpers.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

var (
	log   zerolog.Logger
	level = LogLevelError

	// logTestWriter is the output used when Init is called with
	// logTestWriterName, so tests and benchmarks can capture or discard logs.
	logTestWriter     io.Writer
	logTestWriterName = "log_test_writer"

	panicOnInvalidChars = os.Getenv("LOG_PANIC_ON_INVALIDCHARS") == "true"
)

func init() {
	// LOG_LEVEL overrides the default so it also applies when running tests.
	l := LogLevelError
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		l = s
	}
	Init(l, "stderr", nil)
}

// invalidCharChecker panics on log lines carrying the unicode replacement
// character, which zerolog emits for invalid UTF-8 input.
type invalidCharChecker struct{}

func (*invalidCharChecker) Write(buf []byte) (int, error) {
	if bytes.Contains(buf, []byte(`\ufffd`)) {
		panic(fmt.Sprintf("log line contains invalid chars: %q", buf))
	}
	return len(buf), nil
}

// errorLevelWriter only forwards warnings and errors.
type errorLevelWriter struct {
	io.Writer
}

func (w *errorLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < zerolog.WarnLevel {
		return len(p), nil
	}
	return w.Write(p)
}

// Init configures the global logger. Output is "stdout", "stderr" or a file
// path. If errorOutput is not nil, warnings and errors are copied to it.
func Init(logLevel, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(filepath.Clean(output), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			panic(fmt.Sprintf("cannot create log output: %v", err))
		}
		out = f
	}
	outputs := []io.Writer{zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339Nano}}
	if errorOutput != nil {
		outputs = append(outputs, &errorLevelWriter{zerolog.ConsoleWriter{
			Out:        errorOutput,
			TimeFormat: time.RFC3339Nano,
			NoColor:    true,
		}})
	}
	if panicOnInvalidChars {
		outputs = append(outputs, &invalidCharChecker{})
	}

	l, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		panic(fmt.Sprintf("invalid log level: %q", logLevel))
	}
	level = logLevel
	log = zerolog.New(zerolog.MultiLevelWriter(outputs...)).
		Level(l).With().Timestamp().Caller().Logger()
	// callers of this package are one frame above the wrappers
	zerolog.CallerSkipFrameCount = 3
}

// Level returns the current log level.
func Level() string {
	return level
}

// Logger returns the underlying zerolog logger.
func Logger() *zerolog.Logger {
	return &log
}

func Debug(args ...any) {
	log.Debug().Msg(fmt.Sprint(args...))
}

func Info(args ...any) {
	log.Info().Msg(fmt.Sprint(args...))
}

func Warn(args ...any) {
	log.Warn().Msg(fmt.Sprint(args...))
}

func Error(args ...any) {
	log.Error().Msg(fmt.Sprint(args...))
}

func Fatal(args ...any) {
	log.Fatal().Msg(fmt.Sprint(args...))
}

func Debugf(template string, args ...any) {
	log.Debug().Msgf(template, args...)
}

func Infof(template string, args ...any) {
	log.Info().Msgf(template, args...)
}

func Warnf(template string, args ...any) {
	log.Warn().Msgf(template, args...)
}

func Errorf(template string, args ...any) {
	log.Error().Msgf(template, args...)
}

func Fatalf(template string, args ...any) {
	log.Fatal().Msgf(template, args...)
}

// Debugw logs msg with the given key/value pairs at debug level.
func Debugw(msg string, keyvalues ...any) {
	log.Debug().Fields(keyvalues).Msg(msg)
}

// Infow logs msg with the given key/value pairs at info level.
func Infow(msg string, keyvalues ...any) {
	log.Info().Fields(keyvalues).Msg(msg)
}

// Warnw logs msg with the given key/value pairs at warn level.
func Warnw(msg string, keyvalues ...any) {
	log.Warn().Fields(keyvalues).Msg(msg)
}

// Errorw logs err together with msg at error level.
func Errorw(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}
