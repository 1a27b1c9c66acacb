// Package config loads the handful of ambient knobs the wallet core needs
// to be constructed outside of a CLI: the daemon address, account creation
// time, and construction-time defaults (mixin, dust threshold, refresh
// concurrency). Flag wiring and command parsing stay out of scope; this
// package only has to understand the file format, naoina/toml.
package config

import (
	"os"
	"time"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// Config is the wallet's ambient configuration.
type Config struct {
	DaemonAddress       string        `toml:"daemon_address"`
	AccountCreationTime time.Time     `toml:"account_creation_time"`
	DefaultMixin        uint64        `toml:"default_mixin"`
	DustThreshold       uint64        `toml:"dust_threshold"`
	ScanWorkers         int           `toml:"scan_workers"`
	AutoRefreshPeriod   time.Duration `toml:"auto_refresh_period"`
}

// Default returns conservative out-of-the-box settings: a default mixin of
// 4 decoys per input, a zero dust threshold, hardware-parallelism
// scan workers (left at zero for the caller to resolve against
// runtime.NumCPU), and a 20-second idle refresh cadence.
func Default() Config {
	return Config{
		DefaultMixin:      4,
		DustThreshold:     0,
		ScanWorkers:       0,
		AutoRefreshPeriod: 20 * time.Second,
	}
}

// Load reads a TOML configuration file, applying Default() for any field
// left unset in the file.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config: open")
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "config: decode")
	}
	return cfg, nil
}
