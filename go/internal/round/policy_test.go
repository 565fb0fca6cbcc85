package round

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

func TestPlacerStaysInBounds(t *testing.T) {
	tests := []struct {
		name       string
		boardSize  float64
		targetSize float64
	}{
		{"classic board", 400, 40},
		{"tiny target", 400, 1},
		{"target fills board", 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placer := NewPlacer(tt.boardSize, tt.targetSize, rand.New(rand.NewPCG(7, 11)))
			limit := tt.boardSize - tt.targetSize

			for i := 0; i < 10000; i++ {
				p := placer.Next()
				if p.X < 0 || p.X > limit || p.Y < 0 || p.Y > limit {
					t.Fatalf("draw %d out of bounds [0, %v]: %+v", i, limit, p)
				}
			}
		})
	}
}

func TestLateWindowAccept(t *testing.T) {
	policy := NewLateWindowPolicy(2*time.Second, 4*time.Second, time.Second)

	tests := []struct {
		remaining time.Duration
		want      bool
	}{
		{3 * time.Second, false},
		{1500 * time.Millisecond, false},
		{1001 * time.Millisecond, false},
		{time.Second, true},
		{800 * time.Millisecond, true},
		{time.Millisecond, true},
		{0, false},
	}

	for _, tt := range tests {
		got, reason := policy.Accept(tt.remaining)
		if got != tt.want {
			t.Errorf("Accept(%s) = %v, want %v", tt.remaining, got, tt.want)
		}
		if !got && reason == "" {
			t.Errorf("Accept(%s) rejected without a reason", tt.remaining)
		}
	}
}

func TestLateWindowArmRange(t *testing.T) {
	policy := NewLateWindowPolicy(2*time.Second, 4*time.Second, time.Second)
	rng := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 5000; i++ {
		d := policy.Arm(rng)
		if d < 2*time.Second || d > 4*time.Second {
			t.Fatalf("lifetime %s outside [2s, 4s]", d)
		}
	}

	fixed := NewLateWindowPolicy(3*time.Second, 3*time.Second, time.Second)
	if d := fixed.Arm(rng); d != 3*time.Second {
		t.Errorf("expected exact 3s lifetime for an empty range, got %s", d)
	}
}

func TestPolicyResetBehaviour(t *testing.T) {
	if NewFixedRoundPolicy(30 * time.Second).ResetsOnHit() {
		t.Error("fixed round must not reset on hit")
	}
	if !NewFullWindowPolicy(2 * time.Second).ResetsOnHit() {
		t.Error("full window must reset on hit")
	}
	if !NewLateWindowPolicy(2*time.Second, 4*time.Second, time.Second).ResetsOnHit() {
		t.Error("late window must reset on hit")
	}
	if ok, _ := NewFullWindowPolicy(2 * time.Second).Accept(time.Millisecond); !ok {
		t.Error("full window should accept any click while running")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty policy means fixed", func(c *Config) { c.Policy = "" }, true},
		{"zero board", func(c *Config) { c.BoardSize = 0 }, false},
		{"target larger than board", func(c *Config) { c.TargetSize = 401 }, false},
		{"negative tick", func(c *Config) { c.TickInterval = -time.Second }, false},
		{"zero round", func(c *Config) { c.RoundDuration = 0 }, false},
		{"unknown policy", func(c *Config) { c.Policy = "endless" }, false},
		{"full window zero lifetime", func(c *Config) {
			c.Policy = PolicyFullWindow
			c.TargetLifetime = 0
		}, false},
		{"late window inverted range", func(c *Config) {
			c.Policy = PolicyLateWindow
			c.MinLifetime = 4 * time.Second
			c.MaxLifetime = 2 * time.Second
		}, false},
		{"late window wider than lifetime", func(c *Config) {
			c.Policy = PolicyLateWindow
			c.LateWindow = 3 * time.Second
		}, false},
		{"late window defaults", func(c *Config) { c.Policy = PolicyLateWindow }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Interval(); got != time.Second {
		t.Errorf("fixed policy default tick: expected 1s, got %s", got)
	}

	cfg.Policy = PolicyLateWindow
	if got := cfg.Interval(); got != 100*time.Millisecond {
		t.Errorf("per-target default tick: expected 100ms, got %s", got)
	}

	cfg.TickInterval = 250 * time.Millisecond
	if got := cfg.Interval(); got != 250*time.Millisecond {
		t.Errorf("explicit tick: expected 250ms, got %s", got)
	}
}

func TestSnapshotHit(t *testing.T) {
	s := Snapshot{
		Phase:      PhaseRunning,
		Target:     Point{X: 100, Y: 200},
		TargetSize: 40,
	}

	if !s.Hit(Point{X: 100, Y: 200}) {
		t.Error("top-left corner should hit")
	}
	if !s.Hit(Point{X: 139.9, Y: 239.9}) {
		t.Error("inside bottom-right should hit")
	}
	if s.Hit(Point{X: 140, Y: 210}) {
		t.Error("right edge is outside the target")
	}
	if s.Hit(Point{X: 99, Y: 210}) {
		t.Error("left of target should miss")
	}

	s.Phase = PhaseFinished
	if s.Hit(Point{X: 110, Y: 210}) {
		t.Error("no hits outside a running round")
	}
}
