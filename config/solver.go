package config

import "fmt"

// SolverConfig defines simplex solver parameters.
type SolverConfig struct {
	// Tolerance is the pivot tolerance passed to the simplex algorithm.
	Tolerance float64 `json:"tolerance"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = 1e-7
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("solver tolerance must be non-negative")
	}
	return nil
}
