package round

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the state of the round state machine
type Phase int

const (
	// PhaseIdle means no round has been started yet
	PhaseIdle Phase = iota
	// PhaseRunning means the countdown is active and the target is clickable
	PhaseRunning
	// PhaseFinished means the round is over and its score has been recorded
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Point is a position on the board in board units
type Point struct {
	X float64
	Y float64
}

// Snapshot is a read-only copy of the controller state for presentation
type Snapshot struct {
	RoundID       uuid.UUID
	Phase         Phase
	Policy        string
	Score         int
	TimeRemaining time.Duration
	Lifetime      time.Duration
	Target        Point
	BoardSize     float64
	TargetSize    float64
	Leaderboard   []int
}

// Hit reports whether p lands on the current target. Always false unless running.
func (s Snapshot) Hit(p Point) bool {
	if s.Phase != PhaseRunning {
		return false
	}
	return p.X >= s.Target.X && p.X < s.Target.X+s.TargetSize &&
		p.Y >= s.Target.Y && p.Y < s.Target.Y+s.TargetSize
}

// state is the live round; only the controller mutates it
type state struct {
	id        uuid.UUID
	phase     Phase
	score     int
	remaining time.Duration
	lifetime  time.Duration
	target    Point
	startedAt time.Time
}
