package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/config"
	geocodeMocks "yujin/infras/geocode/mocks"
	"yujin/infras/otel/mocks"
	s3Mocks "yujin/infras/s3/mocks"
	sheetsMocks "yujin/infras/sheets/mocks"
	availabilityMocks "yujin/internal/domains/availability/mocks"
	bookingMocks "yujin/internal/domains/booking/mocks"
	"yujin/internal/domains/booking/model"
	"yujin/internal/domains/booking/model/dto"
	"yujin/internal/domains/booking/service"
	customerDto "yujin/internal/domains/customer/model/dto"
	customerMocks "yujin/internal/domains/customer/mocks"
	notifyMocks "yujin/internal/domains/notify/mocks"
	offlineMocks "yujin/internal/domains/offline/mocks"
	offlineModel "yujin/internal/domains/offline/model"
	pricingService "yujin/internal/domains/pricing/service"
	trackingModel "yujin/internal/domains/tracking/model"
	trackingMocks "yujin/internal/domains/tracking/mocks"
	cacheMocks "yujin/shared/cache/mocks"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/shared/timezone"
)

type bookingMockSet struct {
	repo         *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	customer     *customerMocks.MockCustomerService
	offline      *offlineMocks.MockStore
	tracker      *trackingMocks.MockTracker
	sheets       *sheetsMocks.MockSheets
	notifier     *notifyMocks.MockNotifier
	geocoder     *geocodeMocks.MockGeocoder
	s3           *s3Mocks.MockS3
	cache        *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Booking, *bookingMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &bookingMockSet{
		repo:         bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		customer:     customerMocks.NewMockCustomerService(ctrl),
		offline:      offlineMocks.NewMockStore(ctrl),
		tracker:      trackingMocks.NewMockTracker(ctrl),
		sheets:       sheetsMocks.NewMockSheets(ctrl),
		notifier:     notifyMocks.NewMockNotifier(ctrl),
		geocoder:     geocodeMocks.NewMockGeocoder(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.Booking.MaxPerSlot = 2

	svc := service.New(
		m.repo,
		m.availability,
		m.customer,
		pricingService.New(mocks.NewOtel()),
		m.offline,
		m.tracker,
		m.sheets,
		m.notifier,
		m.geocoder,
		m.s3,
		cfg,
		m.cache,
		mocks.NewOtel(),
	)

	return svc, m
}

func validRequest(t *testing.T) dto.CreateBookingRequest {
	t.Helper()

	return dto.CreateBookingRequest{
		Service:     constant.ServiceCar,
		Brand:       "Toyota",
		Film:        "ceramic-70",
		Name:        "Somchai",
		Phone:       "0812345678",
		Email:       "somchai@example.com",
		BookingDate: timezone.Now().AddDate(0, 0, 1).Format(constant.BookingDateFmt),
		TimeSlot:    "10:00",
		Address:     "123 Sukhumvit Rd",
		Source:      "web",
	}
}

// expectSideChannels wires the fire-and-forget work after a successful
// insert. The returned channel closes when the confirmation SMS call
// lands, which is the last step of the async fan-out.
func expectSideChannels(m *bookingMockSet) chan struct{} {
	done := make(chan struct{})

	m.availability.EXPECT().
		Invalidate(gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes()

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.sheets.EXPECT().
		AppendRow(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.notifier.EXPECT().
		SendBookingConfirmation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _, _ string) error {
			close(done)

			return nil
		})

	return done
}

func waitDone(t *testing.T, done chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async side channels")
	}
}

func TestBookingService_Create_Success(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()
	req := validRequest(t)

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), req.BookingDate, "10:00").
		Return(nil)

	m.customer.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(customerDto.ResolvedIdentity{CustomerID: "cust-1"}, nil)

	var inserted model.Booking

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			inserted = booking

			return nil
		})

	m.tracker.EXPECT().
		Track(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event trackingModel.Event) {
			assert.Equal(t, trackingModel.EventBookingSubmitted, event.Name)
			assert.Equal(t, "cust-1", event.UserID)
		})

	done := expectSideChannels(m)

	res, err := svc.Create(ctx, req)

	assert.NoError(t, err)
	assert.False(t, res.Offline)
	assert.Equal(t, constant.BookingStatusPending, res.Status)
	assert.Equal(t, "cust-1", res.CustomerID)
	assert.True(t, strings.HasPrefix(res.BookingNumber, constant.BookingNumberPrefix))

	// Base 3500 plus ceramic-70 at 2500.
	assert.Equal(t, 6000, res.TotalPrice)

	assert.Equal(t, "+66812345678", inserted.Phone)
	assert.Equal(t, "cust-1", inserted.CustomerID)
	assert.True(t, strings.HasPrefix(inserted.SessionID, constant.SessionPrefix))

	waitDone(t, done)
}

func TestBookingService_Create_SlotFull(t *testing.T) {
	svc, m := newService(t)
	req := validRequest(t)

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), req.BookingDate, "10:00").
		Return(failure.SlotFull(req.BookingDate, "10:00"))

	_, err := svc.Create(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, failure.IsCapacity(err))
}

func TestBookingService_Create_UnknownFilm(t *testing.T) {
	svc, m := newService(t)
	req := validRequest(t)
	req.Film = "gold-plated"

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := svc.Create(context.Background(), req)

	assert.Error(t, err)
}

func TestBookingService_Create_PermissionDeniedParksOffline(t *testing.T) {
	svc, m := newService(t)
	req := validRequest(t)

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.customer.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(customerDto.ResolvedIdentity{CustomerID: "LOCAL_170000", Fallback: true}, nil)

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(failure.Forbidden("permission denied for table bookings"))

	m.offline.EXPECT().
		Append(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking, reason string) (offlineModel.OfflineBooking, error) {
			assert.Contains(t, reason, "permission denied")

			booking.Status = constant.BookingStatusPendingOffline

			return offlineModel.OfflineBooking{ID: "LOCAL_1700000000000", Booking: booking}, nil
		})

	m.tracker.EXPECT().
		Track(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event trackingModel.Event) {
			assert.Equal(t, trackingModel.EventBookingOffline, event.Name)
		})

	res, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, constant.BookingStatusPendingOffline, res.Status)
	assert.True(t, strings.HasPrefix(res.BookingID, constant.LocalFallbackPrefix))
}

func TestBookingService_Create_OfflineStoreFailureSurfacesCause(t *testing.T) {
	svc, m := newService(t)
	req := validRequest(t)

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.customer.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(customerDto.ResolvedIdentity{CustomerID: "cust-1"}, nil)

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(failure.Forbidden("permission denied"))

	m.offline.EXPECT().
		Append(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(offlineModel.OfflineBooking{}, errors.New("disk full"))

	_, err := svc.Create(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, failure.IsPermission(err))
}

func TestBookingService_Create_InsertFailurePropagates(t *testing.T) {
	svc, m := newService(t)
	req := validRequest(t)

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.customer.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(customerDto.ResolvedIdentity{CustomerID: "cust-1"}, nil)

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	_, err := svc.Create(context.Background(), req)

	assert.Error(t, err)
	assert.False(t, failure.IsPermission(err))
}

func TestBookingService_Create_ReverseGeocodeFillsAddress(t *testing.T) {
	svc, m := newService(t)
	req := validRequest(t)
	req.Address = ""
	req.Latitude = 13.7563
	req.Longitude = 100.5018

	m.availability.EXPECT().
		ReserveSlot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.customer.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(customerDto.ResolvedIdentity{CustomerID: "cust-1"}, nil)

	m.geocoder.EXPECT().
		ReverseGeocode(gomock.Any(), 13.7563, 100.5018).
		Return("123 ถนนสุขุมวิท กรุงเทพฯ", nil)

	var inserted model.Booking

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			inserted = booking

			return nil
		})

	m.tracker.EXPECT().Track(gomock.Any(), gomock.Any())

	done := expectSideChannels(m)

	_, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "123 ถนนสุขุมวิท กรุงเทพฯ", inserted.Address)

	waitDone(t, done)
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache hit skips repository",
			setupMock: func(m *bookingMockSet) {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						value.(*dto.BookingResponse).ID = "booking-1"

						return nil
					})
			},
		},
		{
			name: "cache miss loads from repository",
			setupMock: func(m *bookingMockSet) {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", TimeSlot: "09:00"}, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "missing booking returns not found",
			setupMock: func(m *bookingMockSet) {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			res, err := svc.Get(context.Background(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-1", res.ID)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	existing := model.Booking{
		ID:          "booking-1",
		BookingDate: timezone.Now().AddDate(0, 0, 2),
		TimeSlot:    "09:00",
		Status:      constant.BookingStatusPending,
	}

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func(m *bookingMockSet)
		wantErr   bool
	}{
		{
			name:      "empty request rejected",
			req:       dto.UpdateBookingRequest{},
			setupMock: func(m *bookingMockSet) {},
			wantErr:   true,
		},
		{
			name: "status change persists",
			req:  dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed},
			setupMock: func(m *bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, constant.BookingStatusConfirmed, fields[model.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "slot move passes the capacity gate",
			req:  dto.UpdateBookingRequest{TimeSlot: "14:00"},
			setupMock: func(m *bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				m.availability.EXPECT().
					ReserveSlot(gomock.Any(), existing.BookingDate.Format(constant.BookingDateFmt), "14:00").
					Return(nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "slot move into a full slot rejected",
			req:  dto.UpdateBookingRequest{TimeSlot: "14:00"},
			setupMock: func(m *bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				m.availability.EXPECT().
					ReserveSlot(gomock.Any(), gomock.Any(), "14:00").
					Return(failure.SlotFull(existing.BookingDate.Format(constant.BookingDateFmt), "14:00"))
			},
			wantErr: true,
		},
		{
			name: "missing booking returns not found",
			req:  dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed},
			setupMock: func(m *bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			done := expectInvalidation(m)

			err := svc.Update(context.Background(), tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				waitDone(t, done)
			}
		})
	}
}

// expectInvalidation mirrors expectSideChannels for admin mutations,
// where the async fan-out ends with the listing cache sweep.
func expectInvalidation(m *bookingMockSet) chan struct{} {
	done := make(chan struct{})

	m.availability.EXPECT().
		Invalidate(gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes()

	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	var cleared int

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string) error {
			cleared++
			if cleared == 2 {
				close(done)
			}

			return nil
		}).
		AnyTimes()

	return done
}

func TestBookingService_Cancel(t *testing.T) {
	existing := model.Booking{
		ID:          "booking-1",
		BookingDate: timezone.Now().AddDate(0, 0, 2),
		TimeSlot:    "09:00",
		Status:      constant.BookingStatusPending,
	}

	tests := []struct {
		name      string
		setupMock func(m *bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "pending booking cancelled",
			setupMock: func(m *bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "already cancelled raises conflict",
			setupMock: func(m *bookingMockSet) {
				cancelled := existing
				cancelled.Status = constant.BookingStatusCancelled

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "missing booking returns not found",
			setupMock: func(m *bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			done := expectInvalidation(m)

			err := svc.Cancel(context.Background(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				waitDone(t, done)
			}
		})
	}
}
