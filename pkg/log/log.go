package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the global logger instance
	Logger zerolog.Logger
)

// Level represents log level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
	// Verbose tees INFO and above to stderr in addition to Output, for a
	// foreground run that wants per-request detail on the terminal.
	Verbose bool
}

// Init initializes the global logger
func Init(cfg Config) {
	// Set log level
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case InfoLevel:
		level = zerolog.InfoLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// Use JSON or console output
	if !cfg.JSONOutput {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	// The stderr tee decodes raw JSON events, so it wraps the formatted
	// writer rather than sitting underneath it.
	if cfg.Verbose {
		output = zerolog.MultiLevelWriter(output, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		})
	}

	Logger = zerolog.New(output).With().Timestamp().Logger()
}

// WithComponent creates a child logger with component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithUser creates a child logger tagged with a virtual user's index.
func WithUser(user int) zerolog.Logger {
	return Logger.With().Int("user", user).Logger()
}

// WithRequestName creates a child logger tagged with a request name.
func WithRequestName(name string) zerolog.Logger {
	return Logger.With().Str("request_name", name).Logger()
}

// SlowRequestWriter is where SlowRequest writes its fixed-format line. It
// is independent of Logger's JSON/console mode so the text stays
// byte-exact regardless of how structured logs are configured. Defaults
// to stdout; set it to the configured swanling-log file (and/or tee to
// stderr under --verbose) during startup.
var SlowRequestWriter io.Writer = os.Stdout

// SlowRequest writes the fixed "took abnormally long" line for a request
// whose response time exceeded the user's cadence. attackStart anchors
// the "<n>s into swanling attack" prefix.
func SlowRequest(attackStart time.Time, method, url string, status int, responseTimeMs int64, name string) {
	elapsedS := time.Since(attackStart).Seconds()
	fmt.Fprintf(SlowRequestWriter, "%s [INFO] %.0fs into swanling attack: %q [%d] took abnormally long (%d ms), task name: %q\n",
		time.Now().Format("15:04:05"), elapsedS, method+" "+url, status, responseTimeMs, name)
}

// Helper functions for common logging patterns
func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Error(msg string) {
	Logger.Error().Msg(msg)
}

func Errorf(format string, err error) {
	Logger.Error().Err(err).Msg(format)
}

func Fatal(msg string) {
	Logger.Fatal().Msg(msg)
}
