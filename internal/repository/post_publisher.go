package repository

import (
	"context"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	pkgkafka "ArgPulse/pkg/kafka"

	"github.com/google/uuid"
)

// publisher is the slice of the Kafka producer this package needs.
type publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}, headers ...pkgkafka.Header) error
	Close() error
}

// KafkaPostPublisher emits a PostEvent keyed by post ID.
type KafkaPostPublisher struct {
	producer publisher
	topic    string
	now      func() time.Time
}

var _ domrepo.PostPublisher = (*KafkaPostPublisher)(nil)

func NewKafkaPostPublisher(p *pkgkafka.Producer, topic string) *KafkaPostPublisher {
	return &KafkaPostPublisher{producer: p, topic: topic, now: time.Now}
}

func (k *KafkaPostPublisher) PublishPost(ctx context.Context, post models.DailyAnalysisPost) error {
	evt := models.PostEvent{ID: post.ID, Post: post, PublishedAt: k.now().UTC()}
	err := k.producer.Publish(ctx, k.topic, []byte(post.ID), evt,
		pkgkafka.Header{Key: "event_id", Value: uuid.NewString()},
		pkgkafka.Header{Key: "sentiment", Value: string(post.Sentiment)},
	)
	if err != nil {
		return fmt.Errorf("publish post %s: %w", post.ID, err)
	}
	return nil
}

func (k *KafkaPostPublisher) Close() error { return k.producer.Close() }
