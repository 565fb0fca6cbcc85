package round

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) clockwork.Ticker
}

// tickHandle identifies one running countdown. A tick delivered for a handle
// that is no longer current belongs to a superseded round and is ignored.
type tickHandle struct {
	ticker clockwork.Ticker
	stop   chan struct{}
}

// startTicker replaces any existing countdown with a new one. Caller holds c.mu.
func (c *Controller) startTicker() {
	c.stopTicker()

	h := &tickHandle{
		ticker: c.clock.NewTicker(c.interval),
		stop:   make(chan struct{}),
	}
	c.ticks = h

	c.wg.Add(1)
	go c.runTicker(h)

	log.Debug().
		Str("round_id", c.round.id.String()).
		Dur("interval", c.interval).
		Msg("started round ticker")
}

// stopTicker cancels the current countdown, if any. Caller holds c.mu.
// It does not wait for the goroutine; a tick it is about to deliver fails the handle check.
func (c *Controller) stopTicker() {
	if c.ticks == nil {
		return
	}
	stopAndDrainTicker(c.ticks.ticker)
	close(c.ticks.stop)
	c.ticks = nil

	log.Debug().Str("round_id", c.round.id.String()).Msg("stopped round ticker")
}

func (c *Controller) runTicker(h *tickHandle) {
	defer c.wg.Done()

	for {
		select {
		case <-h.stop:
			return
		case <-h.ticker.Chan():
			c.onTick(h)
		}
	}
}

// stopAndDrainTicker stops a ticker and discards a tick that was already buffered
func stopAndDrainTicker(t clockwork.Ticker) {
	t.Stop()
	select {
	case <-t.Chan():
	default:
	}
}
