package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/otel"
	availabilityService "yujin/internal/domains/availability/service"
	bookingDto "yujin/internal/domains/booking/model/dto"
	bookingService "yujin/internal/domains/booking/service"
	"yujin/internal/domains/formflow/model"
	"yujin/internal/domains/formflow/model/dto"
	pricingService "yujin/internal/domains/pricing/service"
	trackingModel "yujin/internal/domains/tracking/model"
	trackingService "yujin/internal/domains/tracking/service"
	"yujin/shared"
	"yujin/shared/cache"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/shared/phone"
	"yujin/shared/timezone"
)

const (
	cacheFormSession = "formflow:session"

	sessionRandLen = 9
	base36Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	defaultSessionTTL = 1800
	defaultMaxPerSlot = 2
)

// FormFlow drives the multi-step public booking form. State lives in
// Redis under the session identifier; a session that expires mid-form
// simply starts over.
type FormFlow interface {
	Start(ctx context.Context, req dto.StartFormRequest) (dto.FormStateResponse, error)
	Next(ctx context.Context, sessionID string, input dto.StepInput) (dto.FormStateResponse, error)
	Back(ctx context.Context, sessionID string) (dto.FormStateResponse, error)
	State(ctx context.Context, sessionID string) (dto.FormStateResponse, error)
	Abandon(ctx context.Context, sessionID string) error
	Submit(ctx context.Context, sessionID, userAgent, referrer string) (bookingDto.CreateBookingResponse, error)
}

type serviceImpl struct {
	availability availabilityService.Availability
	pricing      pricingService.Pricing
	booking      bookingService.Booking
	tracker      trackingService.Tracker
	cache        cache.RedisCache
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	availability availabilityService.Availability,
	pricing pricingService.Pricing,
	booking bookingService.Booking,
	tracker trackingService.Tracker,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) FormFlow {
	return &serviceImpl{
		availability: availability,
		pricing:      pricing,
		booking:      booking,
		tracker:      tracker,
		cache:        cache,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Start(ctx context.Context, req dto.StartFormRequest) (res dto.FormStateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FormFlow.Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	state := model.FormState{
		SessionID: newSessionID(),
		Step:      model.StepService,
		Source:    req.Source,
		StartedAt: now,
		UpdatedAt: now,
	}

	if err = s.save(ctx, state); err != nil {
		return res, err
	}

	s.trackStep(ctx, state, req.Page)

	res.FromState(state)

	return res, nil
}

// Next validates what the current step requires, merges the input and
// advances. The final step carries no input of its own; reaching it
// attaches the price summary instead.
func (s *serviceImpl) Next(ctx context.Context, sessionID string, input dto.StepInput) (res dto.FormStateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FormFlow.Next")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return res, err
	}

	if state.Step >= model.StepSummary {
		return res, failure.BadRequestFromString("form is already at the final step") // nolint:wrapcheck
	}

	input.Apply(&state)

	if err = s.validateStep(ctx, state); err != nil {
		return res, err
	}

	state.Step++
	state.UpdatedAt = timezone.Now()

	if err = s.save(ctx, state); err != nil {
		return res, err
	}

	s.trackStep(ctx, state, constant.Empty)

	res.FromState(state)

	if state.Step == model.StepSummary {
		if err = s.attachSummary(ctx, state, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// Back moves one step toward the start without validation; entered
// values stay in the session.
func (s *serviceImpl) Back(ctx context.Context, sessionID string) (res dto.FormStateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FormFlow.Back")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return res, err
	}

	if state.Step > model.StepService {
		state.Step--
		state.UpdatedAt = timezone.Now()

		if err = s.save(ctx, state); err != nil {
			return res, err
		}
	}

	res.FromState(state)

	return res, nil
}

func (s *serviceImpl) State(ctx context.Context, sessionID string) (res dto.FormStateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FormFlow.State")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return res, err
	}

	res.FromState(state)

	if state.Step == model.StepSummary {
		if err = s.attachSummary(ctx, state, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (s *serviceImpl) Abandon(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FormFlow.Abandon")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	s.tracker.Track(ctx, trackingModel.Event{
		Name:      trackingModel.EventFormAbandoned,
		SessionID: state.SessionID,
		Payload: map[string]any{
			"step":    state.Step,
			"service": state.Service,
		},
	})

	if err = s.cache.Delete(ctx, s.key(sessionID)); err != nil {
		log.Error().Err(err).Msg("failed to delete abandoned form session")

		return fmt.Errorf("failed to delete abandoned form session: %w", err)
	}

	return nil
}

// Submit turns a completed session into a booking and drops the
// session. A failed submission keeps the session alive so the user can
// retry without re-entering everything.
func (s *serviceImpl) Submit(ctx context.Context, sessionID, userAgent, referrer string) (res bookingDto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FormFlow.Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return res, err
	}

	if state.Step < model.StepSummary {
		return res, failure.BadRequestFromString("form is not complete yet") // nolint:wrapcheck
	}

	res, err = s.booking.Create(ctx, bookingDto.CreateBookingRequest{
		Service:      state.Service,
		Brand:        state.Brand,
		VehicleModel: state.VehicleModel,
		Film:         state.Film,
		Addons:       state.Addons,
		Name:         state.Name,
		Phone:        state.Phone,
		Email:        state.Email,
		LineID:       state.LineID,
		BookingDate:  state.BookingDate,
		TimeSlot:     state.TimeSlot,
		Latitude:     state.Latitude,
		Longitude:    state.Longitude,
		Address:      state.Address,
		Note:         state.Note,
		SessionID:    state.SessionID,
		Source:       state.Source,
		UserAgent:    userAgent,
		Referrer:     referrer,
	})
	if err != nil {
		return res, err
	}

	if delErr := s.cache.Delete(ctx, s.key(sessionID)); delErr != nil {
		log.Error().Err(delErr).Msg("failed to delete submitted form session")
	}

	return res, nil
}

// validateStep enforces the requirements of the step the user is
// leaving, on the merged state rather than the raw input, so values
// entered on an earlier visit to the step still count.
func (s *serviceImpl) validateStep(ctx context.Context, state model.FormState) error {
	switch state.Step {
	case model.StepService:
		if state.Service == constant.Empty {
			return failure.BadRequestFromString("service selection is required") // nolint:wrapcheck
		}

		if state.Service == constant.ServiceCar && state.Brand == constant.Empty {
			return failure.BadRequestFromString("vehicle brand is required for car service") // nolint:wrapcheck
		}

	case model.StepSchedule:
		if state.BookingDate == constant.Empty || state.TimeSlot == constant.Empty {
			return failure.BadRequestFromString("booking date and time slot are required") // nolint:wrapcheck
		}

		if err := s.availability.ValidateBookingDate(state.BookingDate); err != nil {
			return err
		}

		if !slices.Contains(s.availability.Slots(), state.TimeSlot) {
			return failure.BadRequestFromString(fmt.Sprintf("unknown time slot: %s", state.TimeSlot)) // nolint:wrapcheck
		}

		if s.availability.BookingCount(ctx, state.BookingDate, state.TimeSlot) >= s.maxPerSlot() {
			return failure.SlotFull(state.BookingDate, state.TimeSlot) // nolint:wrapcheck
		}

	case model.StepContact:
		if state.Name == constant.Empty {
			return failure.BadRequestFromString("name is required") // nolint:wrapcheck
		}

		if !phone.Valid(state.Phone) {
			return failure.BadRequestFromString("a valid Thai mobile number is required") // nolint:wrapcheck
		}

		if state.Email == constant.Empty {
			return failure.BadRequestFromString("email is required") // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) attachSummary(ctx context.Context, state model.FormState, res *dto.FormStateResponse) error {
	quote, err := s.pricing.Quote(ctx, state.Film, state.Addons)
	if err != nil {
		return err
	}

	res.Summary = &quote

	return nil
}

func (s *serviceImpl) trackStep(ctx context.Context, state model.FormState, page string) {
	s.tracker.Track(ctx, trackingModel.Event{
		Name:      trackingModel.EventFormStep,
		SessionID: state.SessionID,
		Page:      page,
		Payload: map[string]any{
			"step":    state.Step,
			"service": state.Service,
		},
	})
}

func (s *serviceImpl) load(ctx context.Context, sessionID string) (model.FormState, error) {
	var state model.FormState

	if err := s.cache.Get(ctx, s.key(sessionID), &state); err != nil {
		return state, failure.NotFound("form session not found or expired") // nolint:wrapcheck
	}

	return state, nil
}

func (s *serviceImpl) save(ctx context.Context, state model.FormState) error {
	if err := s.cache.Save(ctx, s.key(state.SessionID), state, s.sessionTTL()); err != nil {
		log.Error().Err(err).Msg("failed to save form session")

		return fmt.Errorf("failed to save form session: %w", err)
	}

	return nil
}

func (s *serviceImpl) key(sessionID string) string {
	return shared.BuildCacheKey(cacheFormSession, sessionID)
}

func (s *serviceImpl) sessionTTL() int {
	if s.cfg.Booking.SessionTTL > 0 {
		return s.cfg.Booking.SessionTTL
	}

	return defaultSessionTTL
}

func (s *serviceImpl) maxPerSlot() int {
	if s.cfg.Booking.MaxPerSlot > 0 {
		return s.cfg.Booking.MaxPerSlot
	}

	return defaultMaxPerSlot
}

func newSessionID() string {
	suffix := make([]byte, sessionRandLen)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}

	return fmt.Sprintf("%s%d_%s", constant.SessionPrefix, timezone.Now().UnixMilli(), suffix)
}
