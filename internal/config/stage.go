// Package config loads the two configuration surfaces this repository
// carries, each grounded on a distinct real teacher config loader:
// stage parameters via pelletier/go-toml/v2 (internal/config/config.go
// in the teacher), and a pipeline recipe via BurntSushi/toml (the way
// the teacher's cmd/miragectl, cmd/ghostctl and cmd/client-tm
// entrypoints load their own CLI-local config structs).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// StageConfig holds the tunable parameters for the reference stages,
// the way the teacher's GhostConfig/SeedNodeConfig hold tunables for
// its own components. TickInterval is a duration string ("5s") rather
// than a raw time.Duration field: go-toml/v2 has no built-in decoding
// for time.Duration, so it round-trips as text and is parsed
// explicitly, the way the teacher's own config structs keep every
// field a plain scalar and validate after unmarshaling.
type StageConfig struct {
	FramerMaxLen      uint32   `toml:"framer_max_len"`
	TickInterval      string   `toml:"tick_interval"`
	TickID            string   `toml:"tick_id"`
	CipherKeyHex      string   `toml:"cipher_key_hex"`
	HandshakeRequired []string `toml:"handshake_required_capabilities"`
}

// TickIntervalDuration parses TickInterval, defaulting to 5s when unset.
func (c StageConfig) TickIntervalDuration() (time.Duration, error) {
	if c.TickInterval == "" {
		return 5 * time.Second, nil
	}
	return time.ParseDuration(c.TickInterval)
}

// LoadStageConfig reads a TOML document into a StageConfig and fills
// in the same kind of name/addr defaults the teacher's LoadGhostConfig
// and LoadSeedConfig apply before validating.
func LoadStageConfig(path string) (StageConfig, error) {
	var cfg StageConfig
	if err := loadToml(path, &cfg); err != nil {
		return StageConfig{}, err
	}
	if cfg.TickID == "" {
		cfg.TickID = "clock"
	}
	if err := ValidateStageConfig(cfg); err != nil {
		return StageConfig{}, fmt.Errorf("config validation failed (%s): %w", path, err)
	}
	return cfg, nil
}

// ValidateStageConfig mirrors the teacher's Validate*Config functions:
// plain field checks, wrapped with the offending document's path by
// the caller.
func ValidateStageConfig(cfg StageConfig) error {
	if strings.TrimSpace(cfg.CipherKeyHex) == "" {
		return fmt.Errorf("stage config missing cipher_key_hex")
	}
	if len(cfg.CipherKeyHex) != 64 {
		return fmt.Errorf("stage config cipher_key_hex must be 64 hex characters (32 bytes), got %d", len(cfg.CipherKeyHex))
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
