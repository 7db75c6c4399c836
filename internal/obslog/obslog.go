// Package obslog wires zerolog the way ollamamax's cmd/ollamacron does:
// a global console/JSON writer configured once at startup, component
// loggers derived from it with With().Str("component", ...).
package obslog

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure sets the global log level and output format. format is
// "console" (human-readable, for local runs) or anything else for the
// default JSON writer.
func Configure(level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	return nil
}

// Component returns a logger tagged with a "component" field, the pattern
// every hub/clock/api subsystem uses to identify its log lines.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
