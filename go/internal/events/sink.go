package events

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Sink receives round events
type Sink interface {
	Emit(ctx context.Context, env Envelope) error
}

// LogSink writes every event to the global logger
type LogSink struct{}

// Emit implements Sink.Emit
func (LogSink) Emit(ctx context.Context, env Envelope) error {
	log.Info().
		Str("event_id", env.EventID.String()).
		Str("event_type", string(env.EventType)).
		Str("round_id", env.RoundID.String()).
		RawJSON("payload", env.Payload).
		Msg("round event")
	return nil
}

// ChanSink forwards events to a buffered channel without blocking the emitter
type ChanSink struct {
	ch chan Envelope
}

// NewChanSink creates a channel sink with the given buffer size
func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan Envelope, buffer)}
}

// Events returns the receive side of the sink
func (s *ChanSink) Events() <-chan Envelope {
	return s.ch
}

// Emit implements Sink.Emit. Events are dropped when the buffer is full.
func (s *ChanSink) Emit(ctx context.Context, env Envelope) error {
	select {
	case s.ch <- env:
	default:
		log.Warn().
			Str("event_type", string(env.EventType)).
			Str("round_id", env.RoundID.String()).
			Msg("event channel full, dropping event")
	}
	return nil
}

// Fanout delivers each event to every sink in order
type Fanout []Sink

// Emit implements Sink.Emit, joining the errors of all sinks
func (f Fanout) Emit(ctx context.Context, env Envelope) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Emit(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
