package place

import (
	"github.com/BurntSushi/toml"

	"github.com/boardwalk-eda/boardwalk/pkg/errors"
)

// Config holds the tunable simulation parameters for a placement run.
// The optimizer treats it as read-only once a run begins.
type Config struct {
	// ChargeDensity controls the strength of all repulsive forces
	// (boundary, keepout, and inter-component).
	ChargeDensity float64 `toml:"charge_density" json:"charge_density"`

	// MinDistance clamps distances in the repulsion model to avoid
	// singularities when geometry degenerates.
	MinDistance float64 `toml:"min_distance" json:"min_distance"`

	// SpringStiffness is the default stiffness for springs derived from
	// shared nets.
	SpringStiffness float64 `toml:"spring_stiffness" json:"spring_stiffness"`

	// Damping scales velocities each step; values below 1 drain energy.
	Damping float64 `toml:"damping" json:"damping"`

	// MaxVelocity caps each component's linear speed per step.
	MaxVelocity float64 `toml:"max_velocity" json:"max_velocity"`

	// EnergyThreshold and VelocityThreshold together define convergence:
	// the run stops once total energy and the maximum component speed both
	// fall below them.
	EnergyThreshold   float64 `toml:"energy_threshold" json:"energy_threshold"`
	VelocityThreshold float64 `toml:"velocity_threshold" json:"velocity_threshold"`

	// RotationStiffness scales the rotational stability potential that
	// biases components toward axis-aligned orientations.
	RotationStiffness float64 `toml:"rotation_stiffness" json:"rotation_stiffness"`
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		ChargeDensity:     100.0,
		MinDistance:       0.5,
		SpringStiffness:   10.0,
		Damping:           0.95,
		MaxVelocity:       10.0,
		EnergyThreshold:   0.01,
		VelocityThreshold: 0.01,
		RotationStiffness: 1.0,
	}
}

// Validate checks the caller contract on the configuration.
// Invalid configuration fails fast with an INVALID_CONFIG error rather than
// producing silently wrong physics.
func (c Config) Validate() error {
	if c.ChargeDensity <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "charge_density must be positive, got %v", c.ChargeDensity)
	}
	if c.MinDistance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_distance must be positive, got %v", c.MinDistance)
	}
	if c.SpringStiffness < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spring_stiffness cannot be negative, got %v", c.SpringStiffness)
	}
	if c.Damping < 0 || c.Damping > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "damping must be in [0, 1], got %v", c.Damping)
	}
	if c.MaxVelocity <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_velocity must be positive, got %v", c.MaxVelocity)
	}
	if c.EnergyThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "energy_threshold cannot be negative, got %v", c.EnergyThreshold)
	}
	if c.VelocityThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "velocity_threshold cannot be negative, got %v", c.VelocityThreshold)
	}
	if c.RotationStiffness < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "rotation_stiffness cannot be negative, got %v", c.RotationStiffness)
	}
	return nil
}

// LoadConfig reads a TOML tuning file and overlays it on the defaults, so a
// file only needs to name the parameters it changes:
//
//	charge_density = 250.0
//	damping        = 0.90
//
// The merged configuration is validated before being returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
