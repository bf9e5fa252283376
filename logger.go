package glitch

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggerOptions describes logger configuration.
type LoggerOptions struct {
	// Level is a zerolog level name. Empty means "info".
	Level string
	// HumanReadable selects the console writer instead of JSON lines.
	HumanReadable bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// NewLogger creates a zerolog logger. Engines default to zerolog.Nop() and
// only log when a logger is supplied in MountConfig.
func NewLogger(opts LoggerOptions) (zerolog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), err
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

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
