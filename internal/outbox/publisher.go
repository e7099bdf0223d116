package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ericfaux/dockslot-app-sub001/pkg/metrics"
)

const (
	defaultInterval  = 5 * time.Second
	defaultBatchSize = 100
)

type Config struct {
	Brokers   []string
	Topic     string
	Interval  time.Duration
	BatchSize int
}

// Publisher drains outbox_events to Kafka. Delivery is at-least-once:
// a crash between WriteMessages and commit re-sends the batch.
type Publisher struct {
	repo      EventRepository
	txManager TxManager
	writer    MessageWriter
	logger    Logger
	metrics   *metrics.Metrics
	interval  time.Duration
	batchSize uint64
}

// NewKafkaWriter builds the writer used in production
func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// NewPublisher creates a publisher; zero Interval and BatchSize fall back to defaults
func NewPublisher(repo EventRepository, txManager TxManager, writer MessageWriter, logger Logger, m *metrics.Metrics, cfg Config) *Publisher {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Publisher{
		repo:      repo,
		txManager: txManager,
		writer:    writer,
		logger:    logger,
		metrics:   m,
		interval:  cfg.Interval,
		batchSize: uint64(cfg.BatchSize),
	}
}

// Run publishes on every tick until ctx is done, then closes the writer
func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("Outbox: close writer: %v", err)
		}
	}()

	p.logger.Info("Outbox: publisher started (interval=%s, batch=%d)", p.interval, p.batchSize)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox: publisher stopped")
			return
		case <-ticker.C:
			n, err := p.PublishBatch(ctx)
			if err != nil {
				p.logger.Error("Outbox: publish failed: %v", err)
				continue
			}
			if n > 0 {
				p.logger.Info("Outbox: published %d events", n)
			}
		}
	}
}

// PublishBatch sends one batch and marks it published in the same transaction
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	published := 0

	err := p.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := p.repo.FetchUnpublished(txCtx, p.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(events))
		ids := make([]uuid.UUID, 0, len(events))
		for _, e := range events {
			msgs = append(msgs, kafka.Message{
				Key:   []byte(e.AggregateID.String()),
				Value: e.Payload,
				Time:  e.CreatedAt,
				Headers: []kafka.Header{
					{Key: "event_id", Value: []byte(e.ID.String())},
					{Key: "event_type", Value: []byte(e.EventType)},
					{Key: "aggregate_type", Value: []byte(e.AggregateType)},
				},
			})
			ids = append(ids, e.ID)
		}

		if err := p.writer.WriteMessages(txCtx, msgs...); err != nil {
			return fmt.Errorf("write messages: %w", err)
		}
		if err := p.repo.MarkPublished(txCtx, ids); err != nil {
			return err
		}

		for _, e := range events {
			p.metrics.EventPublished(e.EventType)
		}
		published = len(events)
		return nil
	})

	return published, err
}
