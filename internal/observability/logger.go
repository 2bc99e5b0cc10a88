// Package observability adapts the teacher repository's zerolog/gin
// logging and prometheus metrics setup (internal/observability in
// danmuck-edgectl) to this repository's domain: pipeline dispatch and
// injection, rather than HTTP/seed-proxy traffic.
package observability

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger the way the
// teacher's InitLogger does: console writer, RFC3339 timestamps, a
// base "app" field. CONDUIT_LOG_LEVEL and CONDUIT_LOG_NOCOLOR override
// the defaults, the way internal/logging/config.go drives level and
// color from the environment in the teacher repository.
func InitLogger(app string) zerolog.Logger {
	zerolog.SetGlobalLevel(levelFromEnv())

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    noColorFromEnv(),
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

func levelFromEnv() zerolog.Level {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("CONDUIT_LOG_LEVEL")))
	if raw == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func noColorFromEnv() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("CONDUIT_LOG_NOCOLOR")))
	if err != nil {
		return false
	}
	return v
}
