package repository

import (
	"context"

	"GreeksBoard/internal/domain/models"
	domrepo "GreeksBoard/internal/domain/repository"
)

type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher sends dashboard events as JSON, keyed by date.
type KafkaPublisher struct {
	p     producer
	topic string
}

func NewKafkaPublisher(p producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{p: p, topic: topic}
}

func (k *KafkaPublisher) Publish(ctx context.Context, ev models.DashboardEvent) error {
	var key []byte
	if ev.Date != "" {
		key = []byte(ev.Date)
	}
	return k.p.Publish(ctx, k.topic, key, ev)
}

func (k *KafkaPublisher) Close() error { return k.p.Close() }

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.DashboardEvent) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }

var (
	_ domrepo.EventPublisher = (*KafkaPublisher)(nil)
	_ domrepo.EventPublisher = NoopPublisher{}
)
