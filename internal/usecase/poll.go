package usecase

import (
	"context"
	"fmt"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
)

type PollUseCase struct {
	store domrepo.PollStore
}

func NewPollUseCase(store domrepo.PollStore) *PollUseCase {
	return &PollUseCase{store: store}
}

func (uc *PollUseCase) Results(ctx context.Context) (*models.PollResult, error) {
	counts, err := uc.store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("poll results: %w", err)
	}
	res := &models.PollResult{Counts: counts}
	for _, n := range counts {
		res.Total += n
	}
	return res, nil
}

// Vote records one vote per voter and returns the updated results.
func (uc *PollUseCase) Vote(ctx context.Context, option, voterID string) (*models.PollResult, error) {
	if err := uc.store.Vote(ctx, option, voterID); err != nil {
		return nil, err
	}
	return uc.Results(ctx)
}
