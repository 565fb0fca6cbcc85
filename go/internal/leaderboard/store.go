package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/mcdev12/clicker/go/internal/kvstore"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultKey is the storage slot holding the persisted scores
	DefaultKey = "osu_clicker_scores"
	// DefaultSize is how many scores the leaderboard keeps
	DefaultSize = 5
)

// Store records the best round scores in a single key-value slot.
// The slot holds a JSON array of integers sorted descending.
type Store struct {
	kv   kvstore.Store
	key  string
	size int
}

// New creates a leaderboard over kv. Empty key and non-positive size fall back to defaults.
func New(kv kvstore.Store, key string, size int) *Store {
	if key == "" {
		key = DefaultKey
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{
		kv:   kv,
		key:  key,
		size: size,
	}
}

// Size returns the maximum number of scores kept
func (s *Store) Size() int {
	return s.size
}

// Load returns the persisted scores. A missing, unreadable or malformed slot yields an empty list.
func (s *Store) Load(ctx context.Context) []int {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.Warn().Err(err).Str("key", s.key).Msg("failed to read leaderboard, using empty list")
		}
		return []int{}
	}

	var scores []int
	if err := json.Unmarshal(data, &scores); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("malformed leaderboard, using empty list")
		return []int{}
	}
	if scores == nil {
		return []int{}
	}

	return s.normalize(scores)
}

// Record merges score into the persisted list, keeps the best entries and writes them back.
// The updated list is returned even when persisting fails.
func (s *Store) Record(ctx context.Context, score int) ([]int, error) {
	scores := append(s.Load(ctx), score)
	top := s.normalize(scores)

	data, err := json.Marshal(top)
	if err != nil {
		return top, fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return top, fmt.Errorf("failed to persist leaderboard: %w", err)
	}

	log.Debug().
		Str("key", s.key).
		Int("score", score).
		Ints("leaderboard", top).
		Msg("recorded score")

	return top, nil
}

// normalize sorts descending and truncates. The sort is stable: an equal score that
// arrived later stays behind the earlier one and is the first dropped at the boundary.
func (s *Store) normalize(scores []int) []int {
	sorted := append([]int(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i] > sorted[j]
	})
	if len(sorted) > s.size {
		sorted = sorted[:s.size]
	}
	return sorted
}
