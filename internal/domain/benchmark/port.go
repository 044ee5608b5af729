package benchmark

import "context"

// Repository port for the singleton benchmark record
type Repository interface {
	// Get returns the stored config, or the defaults when none was saved yet.
	Get(ctx context.Context) (*Config, error)
	Save(ctx context.Context, c *Config) error
}
