// Package broadcaster drains the event journal onto a Kafka topic.
// Delivery is at-least-once: entries are marked SENT before the publish
// attempt and ACKED only after the broker confirms.
package broadcaster

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"mako/infra/journal"
)

type Broadcaster struct {
	jnl      *journal.Journal
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

func New(jnl *journal.Journal, brokers []string, topic string, log *zap.Logger) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		jnl:      jnl,
		producer: producer,
		topic:    topic,
		log:      log,
	}, nil
}

// Run publishes pending journal entries on every tick until ctx ends.
func (b *Broadcaster) Run(ctx context.Context, interval time.Duration) {
	b.log.Info("broadcaster started", zap.String("topic", b.topic))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.publishOnce()
		}
	}
}

func (b *Broadcaster) publishOnce() {
	err := b.jnl.ScanPending(func(seq uint64, rec journal.Record) error {
		if err := b.jnl.MarkSent(seq); err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.ByteEncoder(key),
			Value: sarama.ByteEncoder(rec.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			// Left in SENT state; the next tick retries it.
			b.log.Warn("publish failed", zap.Uint64("seq", seq), zap.Error(err))
			return nil
		}

		return b.jnl.MarkAcked(seq)
	})
	if err != nil {
		b.log.Error("journal scan failed", zap.Error(err))
		return
	}

	if removed, err := b.jnl.Compact(); err != nil {
		b.log.Warn("journal compact failed", zap.Error(err))
	} else if removed > 0 {
		b.log.Debug("journal compacted", zap.Int("removed", removed))
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
