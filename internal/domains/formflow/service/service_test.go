package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"yujin/config"
	"yujin/infras/otel/mocks"
	availabilityMocks "yujin/internal/domains/availability/mocks"
	bookingMocks "yujin/internal/domains/booking/mocks"
	bookingDto "yujin/internal/domains/booking/model/dto"
	"yujin/internal/domains/formflow/model"
	"yujin/internal/domains/formflow/model/dto"
	"yujin/internal/domains/formflow/service"
	pricingService "yujin/internal/domains/pricing/service"
	trackingModel "yujin/internal/domains/tracking/model"
	trackingMocks "yujin/internal/domains/tracking/mocks"
	cacheMocks "yujin/shared/cache/mocks"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/shared/timezone"
)

type flowMockSet struct {
	availability *availabilityMocks.MockAvailability
	booking      *bookingMocks.MockBookingService
	tracker      *trackingMocks.MockTracker
	events       *[]trackingModel.Event
}

// newFlow backs the cache mock with an in-memory map so the service's
// save/load round-trips behave like the real Redis store.
func newFlow(t *testing.T) (service.FormFlow, *flowMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockBooking := bookingMocks.NewMockBookingService(ctrl)
	mockTracker := trackingMocks.NewMockTracker(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	store := map[string][]byte{}

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
			encoded, err := json.Marshal(value)
			require.NoError(t, err)
			store[key] = encoded

			return nil
		}).
		AnyTimes()

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any) error {
			encoded, ok := store[key]
			if !ok {
				return errors.New("redis: nil")
			}

			return json.Unmarshal(encoded, value)
		}).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			delete(store, key)

			return nil
		}).
		AnyTimes()

	events := &[]trackingModel.Event{}

	mockTracker.EXPECT().
		Track(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event trackingModel.Event) {
			*events = append(*events, event)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.MaxPerSlot = 2
	cfg.Booking.SessionTTL = 60

	svc := service.New(
		mockAvailability,
		pricingService.New(mocks.NewOtel()),
		mockBooking,
		mockTracker,
		mockCache,
		cfg,
		mocks.NewOtel(),
	)

	return svc, &flowMockSet{
		availability: mockAvailability,
		booking:      mockBooking,
		tracker:      mockTracker,
		events:       events,
	}
}

func futureDate(t *testing.T) string {
	t.Helper()

	return timezone.Now().AddDate(0, 0, 1).Format(constant.BookingDateFmt)
}

func expectOpenSlot(m *flowMockSet, date, slot string) {
	m.availability.EXPECT().
		ValidateBookingDate(date).
		Return(nil)

	m.availability.EXPECT().
		Slots().
		Return(constant.TimeSlots)

	m.availability.EXPECT().
		BookingCount(gomock.Any(), date, slot).
		Return(0)
}

func TestFormFlowService_Start(t *testing.T) {
	svc, m := newFlow(t)

	res, err := svc.Start(context.Background(), dto.StartFormRequest{Source: "web", Page: "/booking"})

	assert.NoError(t, err)
	assert.Equal(t, model.StepService, res.Step)
	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, "web", res.State.Source)

	require.Len(t, *m.events, 1)
	assert.Equal(t, trackingModel.EventFormStep, (*m.events)[0].Name)
	assert.Equal(t, "/booking", (*m.events)[0].Page)
}

func TestFormFlowService_FullWalkthrough(t *testing.T) {
	svc, m := newFlow(t)
	ctx := context.Background()
	date := futureDate(t)

	started, err := svc.Start(ctx, dto.StartFormRequest{Source: "web"})
	require.NoError(t, err)

	sessionID := started.SessionID

	res, err := svc.Next(ctx, sessionID, dto.StepInput{
		Service: constant.ServiceCar,
		Brand:   "Honda",
		Film:    "ceramic-70",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StepSchedule, res.Step)

	expectOpenSlot(m, date, "10:00")

	res, err = svc.Next(ctx, sessionID, dto.StepInput{
		BookingDate: date,
		TimeSlot:    "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StepContact, res.Step)

	res, err = svc.Next(ctx, sessionID, dto.StepInput{
		Name:  "Somchai",
		Phone: "081-234-5678",
		Email: "somchai@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StepSummary, res.Step)

	require.NotNil(t, res.Summary)
	assert.Equal(t, 6000, res.Summary.Total)

	m.booking.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req bookingDto.CreateBookingRequest) (bookingDto.CreateBookingResponse, error) {
			assert.Equal(t, constant.ServiceCar, req.Service)
			assert.Equal(t, "Honda", req.Brand)
			assert.Equal(t, date, req.BookingDate)
			assert.Equal(t, sessionID, req.SessionID)
			assert.Equal(t, "Mozilla/5.0", req.UserAgent)

			return bookingDto.CreateBookingResponse{BookingNumber: "BK202600042"}, nil
		})

	submitted, err := svc.Submit(ctx, sessionID, "Mozilla/5.0", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "BK202600042", submitted.BookingNumber)

	// The session is gone once the booking lands.
	_, err = svc.State(ctx, sessionID)
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestFormFlowService_Next_StepValidation(t *testing.T) {
	tests := []struct {
		name  string
		input dto.StepInput
	}{
		{
			name:  "service selection required",
			input: dto.StepInput{},
		},
		{
			name:  "car service requires a brand",
			input: dto.StepInput{Service: constant.ServiceCar},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newFlow(t)
			ctx := context.Background()

			started, err := svc.Start(ctx, dto.StartFormRequest{})
			require.NoError(t, err)

			_, err = svc.Next(ctx, started.SessionID, tt.input)
			assert.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))

			// A rejected step does not advance.
			res, err := svc.State(ctx, started.SessionID)
			require.NoError(t, err)
			assert.Equal(t, model.StepService, res.Step)
		})
	}
}

func TestFormFlowService_Next_FullSlotRejected(t *testing.T) {
	svc, m := newFlow(t)
	ctx := context.Background()
	date := futureDate(t)

	started, err := svc.Start(ctx, dto.StartFormRequest{})
	require.NoError(t, err)

	_, err = svc.Next(ctx, started.SessionID, dto.StepInput{Service: constant.ServiceBuilding})
	require.NoError(t, err)

	m.availability.EXPECT().
		ValidateBookingDate(date).
		Return(nil)

	m.availability.EXPECT().
		Slots().
		Return(constant.TimeSlots)

	m.availability.EXPECT().
		BookingCount(gomock.Any(), date, "10:00").
		Return(2)

	_, err = svc.Next(ctx, started.SessionID, dto.StepInput{BookingDate: date, TimeSlot: "10:00"})

	assert.Error(t, err)
	assert.True(t, failure.IsCapacity(err))
}

func TestFormFlowService_Back(t *testing.T) {
	svc, _ := newFlow(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, dto.StartFormRequest{})
	require.NoError(t, err)

	_, err = svc.Next(ctx, started.SessionID, dto.StepInput{Service: constant.ServiceCar, Brand: "Toyota"})
	require.NoError(t, err)

	res, err := svc.Back(ctx, started.SessionID)

	assert.NoError(t, err)
	assert.Equal(t, model.StepService, res.Step)

	// Entered values survive the step back.
	assert.Equal(t, "Toyota", res.State.Brand)

	// Back at the first step stays put.
	res, err = svc.Back(ctx, started.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, model.StepService, res.Step)
}

func TestFormFlowService_Abandon(t *testing.T) {
	svc, m := newFlow(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, dto.StartFormRequest{})
	require.NoError(t, err)

	assert.NoError(t, svc.Abandon(ctx, started.SessionID))

	last := (*m.events)[len(*m.events)-1]
	assert.Equal(t, trackingModel.EventFormAbandoned, last.Name)

	_, err = svc.State(ctx, started.SessionID)
	assert.Error(t, err)
}

func TestFormFlowService_Submit_IncompleteForm(t *testing.T) {
	svc, _ := newFlow(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, dto.StartFormRequest{})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, started.SessionID, "", "")

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestFormFlowService_UnknownSession(t *testing.T) {
	svc, _ := newFlow(t)

	_, err := svc.State(context.Background(), "BOOKING_0_missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
