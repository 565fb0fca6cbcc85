package round

import (
	"math/rand/v2"
	"time"
)

// Policy decides how the countdown is armed and whether a click scores.
// A controller runs exactly one policy for its whole lifetime.
type Policy interface {
	Name() string
	// Arm returns the countdown for a new round, or for the next target when ResetsOnHit is true
	Arm(rng *rand.Rand) time.Duration
	// Accept reports whether a click with remaining time left scores, with a reason when it does not
	Accept(remaining time.Duration) (bool, string)
	// ResetsOnHit reports whether an accepted click re-arms the countdown
	ResetsOnHit() bool
}

// FixedRoundPolicy runs one countdown for the whole round. Every click scores.
type FixedRoundPolicy struct {
	duration time.Duration
}

// NewFixedRoundPolicy creates a fixed-round policy
func NewFixedRoundPolicy(duration time.Duration) *FixedRoundPolicy {
	return &FixedRoundPolicy{duration: duration}
}

func (p *FixedRoundPolicy) Name() string { return PolicyFixed }

func (p *FixedRoundPolicy) Arm(rng *rand.Rand) time.Duration { return p.duration }

func (p *FixedRoundPolicy) Accept(remaining time.Duration) (bool, string) { return true, "" }

func (p *FixedRoundPolicy) ResetsOnHit() bool { return false }

// LateWindowPolicy gives each target a random lifetime in [min, max].
// A click only scores during the final window of that lifetime.
type LateWindowPolicy struct {
	minLifetime time.Duration
	maxLifetime time.Duration
	window      time.Duration
}

// NewLateWindowPolicy creates a late-window policy
func NewLateWindowPolicy(minLifetime, maxLifetime, window time.Duration) *LateWindowPolicy {
	return &LateWindowPolicy{minLifetime: minLifetime, maxLifetime: maxLifetime, window: window}
}

func (p *LateWindowPolicy) Name() string { return PolicyLateWindow }

// Arm draws a lifetime uniformly from [min, max]
func (p *LateWindowPolicy) Arm(rng *rand.Rand) time.Duration {
	span := int64(p.maxLifetime - p.minLifetime)
	if span <= 0 {
		return p.minLifetime
	}
	return p.minLifetime + time.Duration(rng.Int64N(span+1))
}

func (p *LateWindowPolicy) Accept(remaining time.Duration) (bool, string) {
	if remaining > p.window {
		return false, "outside late window"
	}
	if remaining <= 0 {
		return false, "target expired"
	}
	return true, ""
}

func (p *LateWindowPolicy) ResetsOnHit() bool { return true }

// FullWindowPolicy gives each target the same lifetime; any click before expiry scores
// and restarts the lifetime for the next target.
type FullWindowPolicy struct {
	lifetime time.Duration
}

// NewFullWindowPolicy creates a full-window policy
func NewFullWindowPolicy(lifetime time.Duration) *FullWindowPolicy {
	return &FullWindowPolicy{lifetime: lifetime}
}

func (p *FullWindowPolicy) Name() string { return PolicyFullWindow }

func (p *FullWindowPolicy) Arm(rng *rand.Rand) time.Duration { return p.lifetime }

func (p *FullWindowPolicy) Accept(remaining time.Duration) (bool, string) { return true, "" }

func (p *FullWindowPolicy) ResetsOnHit() bool { return true }
