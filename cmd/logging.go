package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wxr_validator/internal/config"
)

const logLevelEnvKey = "WXRCHECK_LOG_LEVEL"

// newLoggerForCLI picks the level from flag, then environment, then config
// file. A bad flag is an error; a bad env or config value falls back to the
// default level with a warning.
func newLoggerForCLI(w io.Writer, flagLevel, configLevel string) (zerolog.Logger, string, error) {
	envLevel := os.Getenv(logLevelEnvKey)
	rawLevel, source := selectedLogLevel(flagLevel, envLevel, configLevel)

	level, err := parseLogLevel(rawLevel)
	if err == nil {
		return newLogger(w, level), "", nil
	}

	fallback, _ := parseLogLevel("")
	switch source {
	case "flag":
		return zerolog.Nop(), "", fmt.Errorf("invalid --log-level %q", flagLevel)
	case "env":
		return newLogger(w, fallback), fmt.Sprintf("invalid %s=%q; defaulting to %s", logLevelEnvKey, envLevel, config.DefaultLogLevel), nil
	default:
		return newLogger(w, fallback), fmt.Sprintf("invalid log_level=%q; defaulting to %s", configLevel, config.DefaultLogLevel), nil
	}
}

func selectedLogLevel(flagLevel, envLevel, configLevel string) (string, string) {
	if strings.TrimSpace(flagLevel) != "" {
		return flagLevel, "flag"
	}
	if strings.TrimSpace(envLevel) != "" {
		return envLevel, "env"
	}
	if strings.TrimSpace(configLevel) != "" {
		return configLevel, "config"
	}
	return "", "default"
}

func parseLogLevel(raw string) (zerolog.Level, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "":
		value = config.DefaultLogLevel
	case "warning":
		value = "warn"
	}

	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
