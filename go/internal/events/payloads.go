package events

import (
	"time"
)

// Event payload types emitted by the round controller

// Position is a target's top-left corner in board units
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RoundStartedPayload is the payload for a RoundStarted event
type RoundStartedPayload struct {
	RoundID         string    `json:"round_id"`
	Policy          string    `json:"policy"`
	StartedAt       time.Time `json:"started_at"`
	TimeRemainingMs int64     `json:"time_remaining_ms"`
	Target          Position  `json:"target"`
}

// TargetHitPayload is the payload for a TargetHit event
type TargetHitPayload struct {
	Score           int       `json:"score"`
	Target          Position  `json:"target"`
	TimeRemainingMs int64     `json:"time_remaining_ms"`
	HitAt           time.Time `json:"hit_at"`
}

// ClickRejectedPayload is the payload for a ClickRejected event
type ClickRejectedPayload struct {
	Reason          string    `json:"reason"`
	TimeRemainingMs int64     `json:"time_remaining_ms"`
	RejectedAt      time.Time `json:"rejected_at"`
}

// RoundFinishedPayload is the payload for a RoundFinished event
type RoundFinishedPayload struct {
	Score       int       `json:"score"`
	FinishedAt  time.Time `json:"finished_at"`
	Duration    string    `json:"duration"`
	Leaderboard []int     `json:"leaderboard"`
}
