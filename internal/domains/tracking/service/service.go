package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/kafka"
	"yujin/infras/otel"
	"yujin/internal/domains/tracking/model"
	"yujin/shared/constant"
	"yujin/shared/timezone"
)

const defaultBatchSize = 10

// Tracker buffers telemetry events and ships them to Kafka in batches.
// Tracking never fails a caller: a full buffer that cannot be flushed
// is logged and dropped.
type Tracker interface {
	Track(ctx context.Context, event model.Event)
	Flush(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type serviceImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel

	mu       sync.Mutex
	buffer   []model.Event
	sequence int64
}

func New(kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Tracker {
	return &serviceImpl{
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Track(ctx context.Context, event model.Event) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Track")
	defer scope.End()

	s.mu.Lock()

	s.sequence++

	if event.ID == constant.Empty {
		event.ID = uuid.NewString()
	}

	event.Sequence = s.sequence

	if event.Timestamp.IsZero() {
		event.Timestamp = timezone.Now()
	}

	s.buffer = append(s.buffer, event)
	full := len(s.buffer) >= s.batchSize()

	s.mu.Unlock()

	if full {
		if err := s.Flush(ctx); err != nil {
			log.Error().Err(err).Msg("failed to flush tracking batch")
		}
	}
}

func (s *serviceImpl) Flush(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Flush")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	batch := s.buffer
	s.buffer = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(batch))
	for i, event := range batch {
		messages[i] = kafka.Message{
			Key:   event.Name,
			Value: event,
		}
	}

	err = s.kafka.SendMessages(ctx, s.cfg.External.Kafka.TrackingTopic, messages...)
	if err != nil {
		// Telemetry is best effort, the batch is dropped.
		return fmt.Errorf("failed to send tracking batch: %w", err)
	}

	log.Debug().Int("events", len(batch)).Msg("tracking batch flushed")

	return nil
}

// Shutdown flushes whatever is still buffered. Called on server stop.
func (s *serviceImpl) Shutdown(ctx context.Context) error {
	return s.Flush(ctx)
}

func (s *serviceImpl) batchSize() int {
	if s.cfg.Booking.TrackingBatch > 0 {
		return s.cfg.Booking.TrackingBatch
	}

	return defaultBatchSize
}
