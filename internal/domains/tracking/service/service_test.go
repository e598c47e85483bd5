package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/config"
	"yujin/infras/kafka"
	kafkaMocks "yujin/infras/kafka/mocks"
	"yujin/infras/otel/mocks"
	"yujin/internal/domains/tracking/model"
	"yujin/internal/domains/tracking/service"
)

func newTracker(t *testing.T, batchSize int) (service.Tracker, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Booking.TrackingBatch = batchSize
	cfg.External.Kafka.TrackingTopic = "tracking-events"

	return service.New(mockKafka, cfg, mocks.NewOtel()), mockKafka
}

func TestTrackerService_BatchFlushAtSize(t *testing.T) {
	tracker, mockKafka := newTracker(t, 2)
	ctx := context.Background()

	var sent []kafka.Message

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "tracking-events", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent = messages

			return nil
		})

	tracker.Track(ctx, model.Event{Name: model.EventFormStep, SessionID: "BOOKING_1_a"})
	tracker.Track(ctx, model.Event{Name: model.EventBookingSubmitted, SessionID: "BOOKING_1_a"})

	assert.Len(t, sent, 2)
	assert.Equal(t, model.EventFormStep, sent[0].Key)

	first, ok := sent[0].Value.(model.Event)
	assert.True(t, ok)
	second, _ := sent[1].Value.(model.Event)

	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(2), second.Sequence)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Timestamp.IsZero())
}

func TestTrackerService_NoFlushBelowBatchSize(t *testing.T) {
	tracker, _ := newTracker(t, 5)

	// No SendMessages expectation: a single event stays buffered.
	tracker.Track(context.Background(), model.Event{Name: model.EventFormStep})
}

func TestTrackerService_ShutdownFlushesRemainder(t *testing.T) {
	tracker, mockKafka := newTracker(t, 5)
	ctx := context.Background()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "tracking-events", gomock.Any()).
		Return(nil)

	tracker.Track(ctx, model.Event{Name: model.EventFormAbandoned})

	assert.NoError(t, tracker.Shutdown(ctx))
}

func TestTrackerService_FlushEmptyBuffer(t *testing.T) {
	tracker, _ := newTracker(t, 5)

	assert.NoError(t, tracker.Flush(context.Background()))
}

func TestTrackerService_FlushErrorDropsBatch(t *testing.T) {
	tracker, mockKafka := newTracker(t, 5)
	ctx := context.Background()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "tracking-events", gomock.Any()).
		Return(errors.New("broker unreachable"))

	tracker.Track(ctx, model.Event{Name: model.EventFormStep})

	assert.Error(t, tracker.Flush(ctx))

	// The failed batch was dropped, nothing left to send.
	assert.NoError(t, tracker.Flush(ctx))
}
