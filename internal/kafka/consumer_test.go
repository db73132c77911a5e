package kafka

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *MockReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockReader) Close() error {
	return m.Called().Error(0)
}

func TestReservationConsumer_DecodesAndCommits(t *testing.T) {
	reader := &MockReader{}
	consumer := NewConsumerWithReader(reader)
	ctx := context.Background()

	msg := kafka.Message{Offset: 7, Value: []byte(`{"event_id":"e1","type":"reservation_created","customer_name":"Alice","seats_booked":3}`)}
	reader.On("FetchMessage", ctx).Return(msg, nil).Once()
	reader.On("CommitMessages", ctx, []kafka.Message{msg}).Return(nil).Once()
	reader.On("FetchMessage", ctx).Return(kafka.Message{}, io.EOF).Once()

	var got []ReservationEvent
	err := consumer.Consume(ctx, func(_ context.Context, e ReservationEvent) error {
		got = append(got, e)
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Alice", got[0].CustomerName)
		assert.Equal(t, 3, got[0].SeatsBooked)
	}
	reader.AssertExpectations(t)
}

func TestReservationConsumer_SkipsGarbage(t *testing.T) {
	reader := &MockReader{}
	consumer := NewConsumerWithReader(reader)
	ctx := context.Background()

	msg := kafka.Message{Offset: 1, Value: []byte("not json")}
	reader.On("FetchMessage", ctx).Return(msg, nil).Once()
	reader.On("CommitMessages", ctx, []kafka.Message{msg}).Return(nil).Once()
	reader.On("FetchMessage", ctx).Return(kafka.Message{}, context.Canceled).Once()

	called := false
	err := consumer.Consume(ctx, func(context.Context, ReservationEvent) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	reader.AssertExpectations(t)
}

func TestReservationConsumer_HandlerErrorSkipsCommit(t *testing.T) {
	reader := &MockReader{}
	consumer := NewConsumerWithReader(reader)
	ctx := context.Background()

	reader.On("FetchMessage", ctx).Return(kafka.Message{Value: []byte(`{"event_id":"e2"}`)}, nil).Once()

	err := consumer.Consume(ctx, func(context.Context, ReservationEvent) error {
		return errors.New("smtp down")
	})

	assert.ErrorContains(t, err, "handle event e2: smtp down")
	reader.AssertNotCalled(t, "CommitMessages", mock.Anything, mock.Anything)
	reader.AssertExpectations(t)
}

func TestReservationConsumer_CommitError(t *testing.T) {
	reader := &MockReader{}
	consumer := NewConsumerWithReader(reader)
	ctx := context.Background()

	reader.On("FetchMessage", ctx).Return(kafka.Message{Offset: 3, Value: []byte(`{}`)}, nil).Once()
	reader.On("CommitMessages", ctx, mock.Anything).Return(errors.New("rebalance")).Once()

	err := consumer.Consume(ctx, func(context.Context, ReservationEvent) error { return nil })

	assert.ErrorContains(t, err, "commit offset 3: rebalance")
	reader.AssertExpectations(t)
}

func TestReservationConsumer_Close(t *testing.T) {
	var nilConsumer *ReservationConsumer
	assert.NoError(t, nilConsumer.Close())

	reader := &MockReader{}
	reader.On("Close").Return(nil).Once()
	assert.NoError(t, NewConsumerWithReader(reader).Close())
	reader.AssertExpectations(t)
}
