package benchmark

import "time"

// DefaultKey — the config is a singleton record.
const DefaultKey = "default"

// DefaultValue applies to every question until an admin edits the record.
const DefaultValue = 3

// Config holds one reference value per scored question (ids 0-8), shown
// next to the respondent's own scores in the results chart.
type Config struct {
	Key       string     `json:"key"`
	Values    [9]float64 `json:"values"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Default returns the config used before the admin ever saved one.
func Default() *Config {
	c := &Config{Key: DefaultKey}
	for i := range c.Values {
		c.Values[i] = DefaultValue
	}
	return c
}
