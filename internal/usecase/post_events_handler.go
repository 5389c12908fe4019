package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	pkgkafka "ArgPulse/pkg/kafka"
)

// PostEventsHandler appends published posts to the history store.
// Redelivered events are harmless because Append is idempotent.
type PostEventsHandler struct {
	topic   string
	history domrepo.HistoryStore
	metrics domrepo.Metrics
}

var _ pkgkafka.MessageHandler = (*PostEventsHandler)(nil)

func NewPostEventsHandler(topic string, history domrepo.HistoryStore, metrics domrepo.Metrics) *PostEventsHandler {
	return &PostEventsHandler{topic: topic, history: history, metrics: metrics}
}

func (h *PostEventsHandler) Topic() string { return h.topic }

func (h *PostEventsHandler) Handle(ctx context.Context, b []byte) error {
	var evt models.PostEvent
	if err := json.Unmarshal(b, &evt); err != nil {
		h.metrics.RecordError("post_event_unmarshal")
		return fmt.Errorf("decode post event: %w", err)
	}
	if evt.Post.ID == "" {
		h.metrics.RecordError("post_event_invalid")
		return fmt.Errorf("post event %q has no post id", evt.ID)
	}
	if !evt.PublishedAt.IsZero() {
		h.metrics.RecordLatency("post_event_lag", time.Since(evt.PublishedAt).Seconds())
	}

	start := time.Now()
	err := h.history.Append(ctx, evt.Post)
	h.metrics.RecordLatency("history_append", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("history_append")
		return err
	}
	return nil
}
