package round

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid round config")

// Policy names accepted in configuration
const (
	PolicyFixed      = "fixed"
	PolicyLateWindow = "late-window"
	PolicyFullWindow = "full-window"
)

const (
	fixedTickInterval     = time.Second
	perTargetTickInterval = 100 * time.Millisecond
)

// Config holds board geometry and timing policy settings
type Config struct {
	BoardSize  float64
	TargetSize float64
	Policy     string

	// TickInterval is the countdown resolution. Zero picks the policy default:
	// one second for fixed rounds, 100ms for per-target policies.
	TickInterval time.Duration

	// RoundDuration is the whole-round budget of the fixed policy
	RoundDuration time.Duration

	// TargetLifetime is the per-target budget of the full-window policy
	TargetLifetime time.Duration

	// MinLifetime, MaxLifetime and LateWindow drive the late-window policy
	MinLifetime time.Duration
	MaxLifetime time.Duration
	LateWindow  time.Duration
}

// DefaultConfig returns the classic 400x400 board with a 30 second fixed round
func DefaultConfig() Config {
	return Config{
		BoardSize:      400,
		TargetSize:     40,
		Policy:         PolicyFixed,
		RoundDuration:  30 * time.Second,
		TargetLifetime: 2 * time.Second,
		MinLifetime:    2 * time.Second,
		MaxLifetime:    4 * time.Second,
		LateWindow:     time.Second,
	}
}

// Interval returns the effective tick interval
func (c Config) Interval() time.Duration {
	if c.TickInterval > 0 {
		return c.TickInterval
	}
	if c.Policy == PolicyFixed || c.Policy == "" {
		return fixedTickInterval
	}
	return perTargetTickInterval
}

// Validate checks geometry and the settings of the selected policy
func (c Config) Validate() error {
	if c.BoardSize <= 0 {
		return fmt.Errorf("%w: board size must be positive, got %v", ErrInvalidConfig, c.BoardSize)
	}
	if c.TargetSize <= 0 || c.TargetSize > c.BoardSize {
		return fmt.Errorf("%w: target size must be in (0, %v], got %v", ErrInvalidConfig, c.BoardSize, c.TargetSize)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("%w: tick interval must not be negative", ErrInvalidConfig)
	}

	switch c.Policy {
	case PolicyFixed, "":
		if c.RoundDuration <= 0 {
			return fmt.Errorf("%w: round duration must be positive", ErrInvalidConfig)
		}
	case PolicyFullWindow:
		if c.TargetLifetime <= 0 {
			return fmt.Errorf("%w: target lifetime must be positive", ErrInvalidConfig)
		}
	case PolicyLateWindow:
		if c.MinLifetime <= 0 || c.MaxLifetime < c.MinLifetime {
			return fmt.Errorf("%w: lifetime range [%s, %s] is empty", ErrInvalidConfig, c.MinLifetime, c.MaxLifetime)
		}
		if c.LateWindow <= 0 || c.LateWindow > c.MinLifetime {
			return fmt.Errorf("%w: late window must be in (0, %s], got %s", ErrInvalidConfig, c.MinLifetime, c.LateWindow)
		}
	default:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
	}
	return nil
}

// NewPolicy builds the timing policy selected by the config
func (c Config) NewPolicy() (Policy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Policy {
	case PolicyFullWindow:
		return NewFullWindowPolicy(c.TargetLifetime), nil
	case PolicyLateWindow:
		return NewLateWindowPolicy(c.MinLifetime, c.MaxLifetime, c.LateWindow), nil
	default:
		return NewFixedRoundPolicy(c.RoundDuration), nil
	}
}
