// Package logging builds the leveled stderr logger used across commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = "warn"

// Options configures a logger.
type Options struct {
	// Level is a level name: debug, info, warn, error. Empty means DefaultLevel.
	Level string

	// Debug forces debug level and timestamps, overriding Level.
	Debug bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	name := strings.TrimSpace(opts.Level)
	if name == "" {
		name = DefaultLevel
	}
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", opts.Level)
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.Debug,
		Prefix:          "taskman",
	}), nil
}
