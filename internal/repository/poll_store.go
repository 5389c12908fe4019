package repository

import (
	"context"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	"ArgPulse/pkg/cache"
)

const pollPrefix = "poll"

// CachePollStore counts votes with cache counters. A voter lock is taken
// before the increment so a repeat voter never moves the counts.
type CachePollStore struct {
	c       cache.Service
	voteTTL time.Duration
}

var _ domrepo.PollStore = (*CachePollStore)(nil)

func NewCachePollStore(c cache.Service, voteTTL time.Duration) *CachePollStore {
	if voteTTL <= 0 {
		voteTTL = 7 * 24 * time.Hour
	}
	return &CachePollStore{c: c, voteTTL: voteTTL}
}

func countKey(option string) string { return cache.GenerateKeyWithParams(pollPrefix, "count", option) }

// Counts returns seed plus recorded votes for every option.
func (s *CachePollStore) Counts(ctx context.Context) (map[string]int64, error) {
	keys := make([]string, len(models.PollOptions))
	for i, opt := range models.PollOptions {
		keys[i] = countKey(opt)
	}
	raw, err := cache.MGetTyped[int64](ctx, s.c, keys...)
	if err != nil {
		return nil, fmt.Errorf("poll counts: %w", err)
	}
	out := make(map[string]int64, len(models.PollOptions))
	for _, opt := range models.PollOptions {
		out[opt] = models.PollSeed[opt] + raw[countKey(opt)]
	}
	return out, nil
}

func (s *CachePollStore) Vote(ctx context.Context, option, voterID string) error {
	if _, ok := models.PollSeed[option]; !ok {
		return domrepo.ErrInvalidVote
	}
	lock := cache.GenerateKeyWithParams(pollPrefix, "voter", cache.HashKey(voterID))
	ok, err := s.c.TryLock(ctx, lock, s.voteTTL)
	if err != nil {
		return fmt.Errorf("poll voter lock: %w", err)
	}
	if !ok {
		return domrepo.ErrAlreadyVoted
	}
	if _, err := s.c.Increment(ctx, countKey(option)); err != nil {
		_ = s.c.Unlock(ctx, lock)
		return fmt.Errorf("poll increment: %w", err)
	}
	return nil
}
