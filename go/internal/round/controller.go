package round

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/clicker/go/internal/events"
	"github.com/rs/zerolog/log"
)

// Leaderboard is what the controller needs from the score store
type Leaderboard interface {
	Load(ctx context.Context) []int
	Record(ctx context.Context, score int) ([]int, error)
}

// Controller owns the live round. Every mutation goes through Start, Click,
// onTick or Close, all serialized by mu.
type Controller struct {
	cfg      Config
	policy   Policy
	interval time.Duration
	rng      *rand.Rand
	placer   *Placer
	board    Leaderboard
	sink     events.Sink
	clock    Clock

	mu          sync.Mutex
	round       state
	leaderboard []int
	ticks       *tickHandle
	closed      bool

	wg sync.WaitGroup
}

// NewController creates an idle controller using the real clock and a time-seeded random source.
// The leaderboard is loaded once here.
func NewController(ctx context.Context, cfg Config, board Leaderboard, sink events.Sink) (*Controller, error) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	return NewControllerWithClock(ctx, cfg, board, sink, clockwork.NewRealClock(), rng)
}

// NewControllerWithClock creates an idle controller with an explicit clock and random source
func NewControllerWithClock(ctx context.Context, cfg Config, board Leaderboard, sink events.Sink, clock Clock, rng *rand.Rand) (*Controller, error) {
	policy, err := cfg.NewPolicy()
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, fmt.Errorf("%w: leaderboard is required", ErrInvalidConfig)
	}

	c := &Controller{
		cfg:      cfg,
		policy:   policy,
		interval: cfg.Interval(),
		rng:      rng,
		placer:   NewPlacer(cfg.BoardSize, cfg.TargetSize, rng),
		board:    board,
		sink:     sink,
		clock:    clock,
		round:    state{phase: PhaseIdle},
	}
	c.leaderboard = board.Load(ctx)

	log.Info().
		Str("policy", policy.Name()).
		Dur("tick_interval", c.interval).
		Float64("board_size", cfg.BoardSize).
		Float64("target_size", cfg.TargetSize).
		Ints("leaderboard", c.leaderboard).
		Msg("round controller ready")

	return c, nil
}

// Start begins a new round from Idle or Finished. It is a no-op while a round is running.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.closed || c.round.phase == PhaseRunning {
		c.mu.Unlock()
		return
	}

	now := c.clock.Now()
	budget := c.policy.Arm(c.rng)
	c.round = state{
		id:        uuid.New(),
		phase:     PhaseRunning,
		score:     0,
		remaining: budget,
		lifetime:  budget,
		target:    c.placer.Next(),
		startedAt: now,
	}
	c.startTicker()

	r := c.round
	c.mu.Unlock()

	log.Info().
		Str("round_id", r.id.String()).
		Str("policy", c.policy.Name()).
		Dur("time_remaining", r.remaining).
		Msg("round started")

	c.emit(events.EventTypeRoundStarted, r.id, now, events.RoundStartedPayload{
		RoundID:         r.id.String(),
		Policy:          c.policy.Name(),
		StartedAt:       now,
		TimeRemainingMs: r.remaining.Milliseconds(),
		Target:          position(r.target),
	})
}

// Click attempts to score against the current target and reports whether it did.
// Clicks outside a running round change nothing.
func (c *Controller) Click() bool {
	c.mu.Lock()
	if c.closed || c.round.phase != PhaseRunning {
		c.mu.Unlock()
		return false
	}

	now := c.clock.Now()
	ok, reason := c.policy.Accept(c.round.remaining)
	if !ok {
		r := c.round
		c.mu.Unlock()

		log.Debug().
			Str("round_id", r.id.String()).
			Str("reason", reason).
			Dur("time_remaining", r.remaining).
			Msg("click rejected")

		c.emit(events.EventTypeClickRejected, r.id, now, events.ClickRejectedPayload{
			Reason:          reason,
			TimeRemainingMs: r.remaining.Milliseconds(),
			RejectedAt:      now,
		})
		return false
	}

	c.round.score++
	c.round.target = c.placer.Next()
	if c.policy.ResetsOnHit() {
		budget := c.policy.Arm(c.rng)
		c.round.remaining = budget
		c.round.lifetime = budget
		// The next tick should take a full interval off the fresh budget
		c.startTicker()
	}
	r := c.round
	c.mu.Unlock()

	c.emit(events.EventTypeTargetHit, r.id, now, events.TargetHitPayload{
		Score:           r.score,
		Target:          position(r.target),
		TimeRemainingMs: r.remaining.Milliseconds(),
		HitAt:           now,
	})
	return true
}

// onTick takes one interval off the countdown and finishes the round on expiry
func (c *Controller) onTick(h *tickHandle) {
	c.mu.Lock()
	if c.ticks != h || c.round.phase != PhaseRunning {
		c.mu.Unlock()
		log.Debug().Msg("ignoring stale tick")
		return
	}

	c.round.remaining -= c.interval
	if c.round.remaining > 0 {
		c.mu.Unlock()
		return
	}

	c.round.remaining = 0
	c.round.phase = PhaseFinished
	c.stopTicker()

	now := c.clock.Now()
	r := c.round

	top, err := c.board.Record(context.Background(), r.score)
	if err != nil {
		log.Error().Err(err).Str("round_id", r.id.String()).Msg("failed to record score")
	}
	c.leaderboard = top
	c.mu.Unlock()

	log.Info().
		Str("round_id", r.id.String()).
		Int("score", r.score).
		Ints("leaderboard", top).
		Msg("round finished")

	c.emit(events.EventTypeRoundFinished, r.id, now, events.RoundFinishedPayload{
		Score:       r.score,
		FinishedAt:  now,
		Duration:    now.Sub(r.startedAt).String(),
		Leaderboard: append([]int(nil), top...),
	})
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		RoundID:       c.round.id,
		Phase:         c.round.phase,
		Policy:        c.policy.Name(),
		Score:         c.round.score,
		TimeRemaining: c.round.remaining,
		Lifetime:      c.round.lifetime,
		Target:        c.round.target,
		BoardSize:     c.cfg.BoardSize,
		TargetSize:    c.cfg.TargetSize,
		Leaderboard:   append([]int{}, c.leaderboard...),
	}
}

// Close stops the countdown and waits for the ticker goroutine to exit.
// Commands after Close are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopTicker()
	c.mu.Unlock()

	c.wg.Wait()
	log.Debug().Msg("round controller closed")
}

func (c *Controller) emit(eventType events.EventType, roundID uuid.UUID, at time.Time, payload interface{}) {
	if c.sink == nil {
		return
	}
	env, err := events.NewEnvelope(eventType, roundID, at, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build event")
		return
	}
	if err := c.sink.Emit(context.Background(), env); err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to emit event")
	}
}

func position(p Point) events.Position {
	return events.Position{X: p.X, Y: p.Y}
}
