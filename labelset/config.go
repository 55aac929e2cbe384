package labelset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/labelset/observability"
	"github.com/tailored-agentic-units/labelset/snapshot"
)

// Config holds Labelset initialization parameters.
type Config struct {
	// Observer names a registered observer ("noop", "slog", or anything
	// added via observability.RegisterObserver).
	Observer string `json:"observer,omitempty"`
	// SnapshotPath is the snapshot file target; empty disables Export.
	SnapshotPath string `json:"snapshot_path,omitempty"`
}

// DefaultConfig returns the default Labelset configuration.
func DefaultConfig() Config {
	return Config{Observer: "noop"}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.SnapshotPath != "" {
		c.SnapshotPath = source.SnapshotPath
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and
// returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// FromConfig creates a Labelset from configuration, resolving the
// observer by registry name and wiring a file-backed snapshot store when
// SnapshotPath is set. Functional options are applied last and override
// the config-created defaults.
func FromConfig(cfg *Config, opts ...Option) (*Labelset, error) {
	name := cfg.Observer
	if name == "" {
		name = "noop"
	}
	observer, err := observability.GetObserver(name)
	if err != nil {
		return nil, err
	}

	l := New(observer)
	if cfg.SnapshotPath != "" {
		l.store = snapshot.NewFileStore(cfg.SnapshotPath)
	}

	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}
