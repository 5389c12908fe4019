package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ArgPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiver_AppendsWithoutPublisher(t *testing.T) {
	hist := &memHistory{}
	m := &countingMetrics{}
	a := NewArchiver(newDashboard(&fakeSource{snapshot: fullSnapshot()}, hist, m), hist, nil, nil)

	post, err := a.Archive(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-14", post.ID)

	_, err = a.Archive(context.Background(), asOf)
	require.NoError(t, err)
	assert.Len(t, hist.posts, 1)
	assert.Len(t, m.posts, 2)
}

func TestArchiver_PublishesWhenConfigured(t *testing.T) {
	hist := &memHistory{}
	pub := &recordingPublisher{}
	a := NewArchiver(newDashboard(&fakeSource{snapshot: fullSnapshot()}, hist, &countingMetrics{}), hist, pub, nil)

	_, err := a.Archive(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, pub.posts, 1)
	assert.Empty(t, hist.posts)
}

func TestArchiver_StartRejectsBadSchedule(t *testing.T) {
	hist := &memHistory{}
	a := NewArchiver(newDashboard(&fakeSource{}, hist, &countingMetrics{}), hist, nil, nil)
	assert.Error(t, a.Start("not a schedule"))

	require.NoError(t, a.Start(""))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	a.Stop(ctx)
}

func TestPostEventsHandler(t *testing.T) {
	hist := &memHistory{}
	m := &countingMetrics{}
	h := NewPostEventsHandler("argpulse.analysis", hist, m)
	assert.Equal(t, "argpulse.analysis", h.Topic())

	b, err := json.Marshal(models.PostEvent{ID: "2026-02-14", Post: day("2026-02-14"), PublishedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), b))
	require.NoError(t, h.Handle(context.Background(), b))
	assert.Len(t, hist.posts, 1)

	assert.Error(t, h.Handle(context.Background(), []byte("{")))
	assert.Error(t, h.Handle(context.Background(), []byte(`{"id":"x","post":{}}`)))
	assert.Equal(t, []string{"post_event_unmarshal", "post_event_invalid"}, m.errors)
}
