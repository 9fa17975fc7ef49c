// Package logger provides a global logger for the application
package logger

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	debug = flag.Bool("debug", false, "sets log level to debug")
	trace = flag.Bool("trace", false, "sets log level to trace")
	info  = flag.Bool("info", false, "sets log level to info (default)")
)

func initLogger() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	if !flag.Parsed() {
		flag.Parse()
	}

	zerolog.SetGlobalLevel(levelFor(os.Getenv("ENVIRONMENT"), *debug, *trace, *info))
	log.Info().Str("level", zerolog.GlobalLevel().String()).Msg("logger initialized")
}

// levelFor picks the log level from the environment name, letting the
// command line flags override it.
func levelFor(environment string, debugFlag, traceFlag, infoFlag bool) zerolog.Level {
	var logLevel zerolog.Level
	switch strings.ToLower(environment) {
	case "dev", "test":
		logLevel = zerolog.TraceLevel
	case "", "prod":
		logLevel = zerolog.InfoLevel
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
		logLevel = zerolog.InfoLevel
	}

	switch {
	case debugFlag:
		logLevel = zerolog.DebugLevel
	case traceFlag:
		logLevel = zerolog.TraceLevel
	case infoFlag:
		logLevel = zerolog.InfoLevel
	}
	return logLevel
}

// Init initializes the logger with the configuration from the environment
// and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run ./cmd/server --debug`
func Init() {
	initLogger()
}
