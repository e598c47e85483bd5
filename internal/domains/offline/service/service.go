package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/otel"
	availabilityService "yujin/internal/domains/availability/service"
	bookingRepo "yujin/internal/domains/booking/repository"
	"yujin/internal/domains/offline/model"
	"yujin/internal/domains/offline/store"
	"yujin/shared/constant"
)

// Offline replays bookings parked in the file store back into the
// database once it accepts writes again. The original client kept the
// fallback list forever; the reconciler closes that gap.
type Offline interface {
	List(ctx context.Context) ([]model.OfflineBooking, error)
	Reconcile(ctx context.Context) (replayed int, err error)
	StartReconciler()
	StopReconciler()
}

type serviceImpl struct {
	store        store.Store
	repo         bookingRepo.Booking
	availability availabilityService.Availability
	cfg          *config.Config
	otel         otel.Otel
	cron         *cron.Cron
}

func New(st store.Store, repo bookingRepo.Booking, availability availabilityService.Availability, cfg *config.Config, otel otel.Otel) Offline {
	return &serviceImpl{
		store:        st,
		repo:         repo,
		availability: availability,
		cfg:          cfg,
		otel:         otel,
		cron:         cron.New(),
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []model.OfflineBooking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOffline")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offline bookings: %w", err)
	}

	return res, nil
}

// Reconcile replays every parked booking. A booking that still fails to
// insert stays in the store for the next run.
func (s *serviceImpl) Reconcile(ctx context.Context) (replayed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list offline bookings: %w", err)
	}

	for _, record := range records {
		booking := record.Booking
		booking.Status = constant.BookingStatusPending

		if err := s.repo.Insert(ctx, booking); err != nil {
			log.Warn().Err(err).Str("id", record.ID).Msg("offline booking replay failed, keeping record")

			continue
		}

		if err := s.store.Remove(ctx, record.ID); err != nil {
			log.Error().Err(err).Str("id", record.ID).Msg("failed to prune replayed offline booking")

			continue
		}

		date := booking.BookingDate.Format(constant.BookingDateFmt)
		s.availability.Invalidate(ctx, date, booking.TimeSlot)

		log.Info().Str("id", record.ID).Str("booking_id", booking.ID).Msg("offline booking replayed")

		replayed++
	}

	return replayed, nil
}

func (s *serviceImpl) StartReconciler() {
	if !s.cfg.Booking.ReconcileEnable {
		log.Info().Msg("offline reconciler disabled")

		return
	}

	spec := s.cfg.Booking.ReconcileSpec
	if spec == "" {
		spec = "@every 10m"
	}

	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Reconcile(context.Background()); err != nil {
			log.Error().Err(err).Msg("offline reconcile run failed")
		}
	})
	if err != nil {
		log.Error().Err(err).Str("spec", spec).Msg("failed to schedule offline reconciler")

		return
	}

	s.cron.Start()

	log.Info().Str("spec", spec).Msg("offline reconciler started")
}

func (s *serviceImpl) StopReconciler() {
	<-s.cron.Stop().Done()
}
