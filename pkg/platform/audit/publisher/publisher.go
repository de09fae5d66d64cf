// Package publisher ships audit events to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"edupath/pkg/platform/audit"
)

// Kafka publishes audit events to a single topic, keyed by session ID so one
// session's events stay ordered within a partition.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka builds a Kafka publisher. Returns nil when no brokers are
// configured so callers can treat audit publishing as optional.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &Kafka{client: client, topic: topic}, nil
}

// Emit produces one event synchronously. The orchestrator treats failures as
// log-and-continue.
func (k *Kafka) Emit(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(event.SessionID.String()),
		Value: payload,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and releases the Kafka client.
func (k *Kafka) Close() {
	if k != nil && k.client != nil {
		k.client.Close()
	}
}
