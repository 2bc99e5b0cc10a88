package observability

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLoggerAppliesEnvLevelOverride(t *testing.T) {
	t.Setenv("CONDUIT_LOG_LEVEL", "warn")
	t.Setenv("CONDUIT_LOG_NOCOLOR", "true")

	InitLogger("conduit-test")

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("global level = %v, want warn", zerolog.GlobalLevel())
	}
}

func TestInitLoggerDefaultsToInfoOnInvalidLevel(t *testing.T) {
	t.Setenv("CONDUIT_LOG_LEVEL", "not-a-level")

	InitLogger("conduit-test")

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("global level = %v, want info", zerolog.GlobalLevel())
	}
}

func TestNoColorFromEnvHandlesUnsetAndInvalid(t *testing.T) {
	t.Setenv("CONDUIT_LOG_NOCOLOR", "")
	if noColorFromEnv() {
		t.Fatalf("noColorFromEnv() = true for unset env var")
	}

	t.Setenv("CONDUIT_LOG_NOCOLOR", "not-a-bool")
	if noColorFromEnv() {
		t.Fatalf("noColorFromEnv() = true for invalid env var")
	}

	t.Setenv("CONDUIT_LOG_NOCOLOR", "true")
	if !noColorFromEnv() {
		t.Fatalf("noColorFromEnv() = false for \"true\"")
	}
}
