package repository

import (
	"context"

	"EconPull/internal/domain/models"
	"EconPull/internal/domain/repository"
	pkgkafka "EconPull/pkg/kafka"
)

// KafkaPublisher ships aligned records to the evaluator topic, keyed by pair
// so one pair's records stay in order on a single partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishAligned(ctx context.Context, records []models.AlignedRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(records))
	for i, rec := range records {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(rec.Pair),
			Value: rec,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
