package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FetchUnpublished(ctx context.Context, limit uint64) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *mockRepo) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestPublisher_PublishBatch(t *testing.T) {
	repo := new(mockRepo)
	writer := new(mockWriter)
	p := NewPublisher(repo, inlineTx{}, writer, nopLogger{}, nil, Config{BatchSize: 10})

	evt := domain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: domain.AggregateBooking,
		AggregateID:   uuid.New(),
		EventType:     domain.EventBookingCreated,
		Payload:       []byte(`{}`),
		CreatedAt:     time.Now(),
	}

	repo.On("FetchUnpublished", mock.Anything, uint64(10)).Return([]domain.OutboxEvent{evt}, nil)
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == evt.AggregateID.String()
	})).Return(nil)
	repo.On("MarkPublished", mock.Anything, []uuid.UUID{evt.ID}).Return(nil)

	n, err := p.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestPublisher_PublishBatch_WriteFailureLeavesEventsPending(t *testing.T) {
	repo := new(mockRepo)
	writer := new(mockWriter)
	p := NewPublisher(repo, inlineTx{}, writer, nopLogger{}, nil, Config{})

	repo.On("FetchUnpublished", mock.Anything, uint64(defaultBatchSize)).
		Return([]domain.OutboxEvent{{ID: uuid.New(), AggregateID: uuid.New()}}, nil)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	n, err := p.PublishBatch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	repo.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything)
}

func TestPublisher_PublishBatch_Empty(t *testing.T) {
	repo := new(mockRepo)
	writer := new(mockWriter)
	p := NewPublisher(repo, inlineTx{}, writer, nopLogger{}, nil, Config{})

	repo.On("FetchUnpublished", mock.Anything, mock.Anything).Return([]domain.OutboxEvent{}, nil)

	n, err := p.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}
