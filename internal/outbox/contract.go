package outbox

import (
	"context"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// EventRepository reads and acknowledges pending outbox rows
type EventRepository interface {
	FetchUnpublished(ctx context.Context, limit uint64) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// TxManager runs fn in a transaction so fetched rows stay locked until marked
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MessageWriter is satisfied by *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
