// Package testlog adapts the teacher's testutil/testlog.Start helper
// to this repository's zerolog-based logging (internal/observability),
// since the teacher's own version configures the unavailable smplog
// facade directly.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/conduit/internal/observability"
)

// Start configures the global logger for a debug-level, uncolored test
// run and emits one line naming the running test, the way the
// teacher's Start announces t.Name() before a test's real logging
// begins.
func Start(t *testing.T) {
	t.Helper()
	t.Setenv("CONDUIT_LOG_LEVEL", "debug")
	t.Setenv("CONDUIT_LOG_NOCOLOR", "true")
	logger := observability.InitLogger("conduit-test")
	logger.Debug().Str("test", t.Name()).Msg("test start")
}

// Silent configures a disabled logger, for tests that want the
// production logging path exercised without polluting `go test`
// output.
func Silent(t *testing.T) {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
