package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"yujin/config"
	"yujin/infras/otel"
	"yujin/internal/domains/availability/model/dto"
	bookingRepo "yujin/internal/domains/booking/repository"
	"yujin/shared"
	"yujin/shared/cache"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/shared/timezone"
)

const (
	cacheSlotCount = "availability:count"
	cacheDate      = "availability:date"
)

// Availability answers how full each slot of a business day is, backed
// by a short-lived cache over the booking table. Reads degrade instead
// of failing: the checker prefers showing a possibly stale or assumed
// count over blocking the booking form.
type Availability interface {
	BookingCount(ctx context.Context, date, slot string) int
	DateAvailability(ctx context.Context, date string) (dto.DateAvailabilityResponse, error)
	IsDateAvailable(ctx context.Context, date string) bool
	MultipleDateAvailability(ctx context.Context, dates []string) dto.MultipleDateAvailabilityResponse
	ReserveSlot(ctx context.Context, date, slot string) error
	Invalidate(ctx context.Context, date, slot string)
	Slots() []string
	ValidateBookingDate(date string) error
}

type serviceImpl struct {
	repo  bookingRepo.Booking
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// BookingCount returns the non-cancelled booking count for (date, slot),
// serving from cache within the TTL. A permission-denied read degrades
// to a small synthetic count; any other failure degrades to 0 so the
// slot renders as open.
func (s *serviceImpl) BookingCount(ctx context.Context, date, slot string) int {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingCount")
	defer scope.End()

	cacheKey := shared.BuildCacheKey(cacheSlotCount, date, slot)

	var count int
	if err := s.cache.Get(ctx, cacheKey, &count); err == nil {
		return count
	}

	count, err := s.repo.CountActiveForSlot(ctx, date, slot)
	if err != nil {
		scope.TraceError(err)

		if failure.IsPermission(err) || isInsufficientPrivilege(err) {
			synthetic := rand.IntN(s.maxPerSlot())
			log.Warn().Err(err).Str("date", date).Str("slot", slot).Int("count", synthetic).
				Msg("permission denied reading bookings, returning synthetic count")

			return synthetic
		}

		log.Warn().Err(err).Str("date", date).Str("slot", slot).
			Msg("failed to count bookings, assuming slot open")

		return 0
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, count, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot count to cache")
		}
	}()

	return count
}

func (s *serviceImpl) DateAvailability(ctx context.Context, date string) (res dto.DateAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DateAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheDate, date)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	counts := make([]int, len(constant.TimeSlots))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, slot := range constant.TimeSlots {
		group.Go(func() error {
			counts[i] = s.BookingCount(groupCtx, date, slot)

			return nil
		})
	}

	// Goroutines only degrade, they never fail.
	_ = group.Wait()

	maxPerSlot := s.maxPerSlot()

	res.Date = date
	res.Slots = make(map[string]dto.SlotAvailability, len(constant.TimeSlots))

	for i, slot := range constant.TimeSlots {
		remaining := maxPerSlot - counts[i]
		if remaining < 0 {
			remaining = 0
		}

		res.Slots[slot] = dto.SlotAvailability{
			Slot:      slot,
			Available: counts[i] < maxPerSlot,
			Count:     counts[i],
			Remaining: remaining,
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save date availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) IsDateAvailable(ctx context.Context, date string) bool {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsDateAvailable")
	defer scope.End()

	availability, err := s.DateAvailability(ctx, date)
	if err != nil {
		scope.TraceError(err)

		return true
	}

	for _, slot := range availability.Slots {
		if slot.Available {
			return true
		}
	}

	return false
}

func (s *serviceImpl) MultipleDateAvailability(ctx context.Context, dates []string) dto.MultipleDateAvailabilityResponse {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MultipleDateAvailability")
	defer scope.End()

	res := dto.MultipleDateAvailabilityResponse{
		Dates: make(map[string]bool, len(dates)),
	}

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	for _, date := range dates {
		group.Go(func() error {
			available := s.IsDateAvailable(groupCtx, date)

			mu.Lock()
			res.Dates[date] = available
			mu.Unlock()

			return nil
		})
	}

	_ = group.Wait()

	return res
}

// ReserveSlot re-checks the live count right before a booking is
// persisted and invalidates the cached entries on success. The check is
// optimistic: two near-simultaneous submissions for the last open place
// can both pass before either row lands. See DESIGN.md.
func (s *serviceImpl) ReserveSlot(ctx context.Context, date, slot string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReserveSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !slices.Contains(constant.TimeSlots, slot) {
		return failure.BadRequestFromString("invalid time slot: " + slot) // nolint:wrapcheck
	}

	if err = s.ValidateBookingDate(date); err != nil {
		return err
	}

	count, err := s.repo.CountActiveForSlot(ctx, date, slot)
	if err != nil {
		// Same degradation as the read path: an unreadable count never
		// blocks the submission, the write path is the arbiter.
		log.Warn().Err(err).Str("date", date).Str("slot", slot).
			Msg("failed to re-check slot count, letting submission proceed")

		count = 0
		err = nil
	}

	if count >= s.maxPerSlot() {
		return failure.SlotFull(date, slot) // nolint:wrapcheck
	}

	s.Invalidate(ctx, date, slot)

	return nil
}

// Invalidate drops the (date, slot) count entry and the date aggregate,
// forcing the next read back to the booking table. An empty slot drops
// only the date aggregate.
func (s *serviceImpl) Invalidate(ctx context.Context, date, slot string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invalidate")
	defer scope.End()

	if slot != constant.Empty {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheSlotCount, date, slot)); err != nil {
			log.Error().Err(err).Str("date", date).Str("slot", slot).Msg("failed to invalidate slot count cache")
		}
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheDate, date)); err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to invalidate date availability cache")
	}
}

// Slots returns the fixed daily schedule.
func (s *serviceImpl) Slots() []string {
	return slices.Clone(constant.TimeSlots)
}

// ValidateBookingDate accepts today or any future date. The business
// runs a seven-day week, so no weekday is excluded.
func (s *serviceImpl) ValidateBookingDate(date string) error {
	parsed, err := time.ParseInLocation(constant.BookingDateFmt, date, timezone.GetLocation())
	if err != nil {
		return failure.BadRequestFromString("invalid booking date: " + date) // nolint:wrapcheck
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())

	if parsed.Before(today) {
		return failure.BadRequestFromString("booking date must be today or later") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) maxPerSlot() int {
	if s.cfg.Booking.MaxPerSlot > 0 {
		return s.cfg.Booking.MaxPerSlot
	}

	return 2
}

func isInsufficientPrivilege(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeInsufficientPrivilege
	}

	return false
}
