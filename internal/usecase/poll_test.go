package usecase

import (
	"context"
	"testing"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	"ArgPulse/internal/repository"
	"ArgPulse/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollUseCase(t *testing.T) {
	uc := NewPollUseCase(repository.NewCachePollStore(cache.NewMemoryCache(), time.Hour))
	ctx := context.Background()

	res, err := uc.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Total)

	res, err = uc.Vote(ctx, models.PollStable, "voter-a")
	require.NoError(t, err)
	assert.Equal(t, int64(101), res.Total)
	assert.Equal(t, int64(39), res.Counts[models.PollStable])

	_, err = uc.Vote(ctx, models.PollStable, "voter-a")
	assert.ErrorIs(t, err, domrepo.ErrAlreadyVoted)
}
