package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/config"
	"yujin/infras/otel/mocks"
	"yujin/internal/domains/availability/service"
	bookingMocks "yujin/internal/domains/booking/mocks"
	cacheMocks "yujin/shared/cache/mocks"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/shared/timezone"
)

func newService(t *testing.T) (service.Availability, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.Booking.MaxPerSlot = 2

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func futureDate(t *testing.T) string {
	t.Helper()

	return timezone.Now().AddDate(0, 0, 1).Format(constant.BookingDateFmt)
}

func TestAvailabilityService_BookingCount(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		want      int
		wantMax   int
	}{
		{
			name: "cache hit skips repository",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*int)) = 1

						return nil
					})
			},
			want: 1,
		},
		{
			name: "cache miss counts from repository",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					CountActiveForSlot(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(2, nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			want: 2,
		},
		{
			name: "repository failure assumes slot open",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					CountActiveForSlot(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, errors.New("connection refused"))
			},
			want: 0,
		},
		{
			name: "permission denial returns synthetic count below the limit",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					CountActiveForSlot(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, failure.Forbidden("permission denied"))
			},
			want:    -1,
			wantMax: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			count := svc.BookingCount(context.Background(), futureDate(t), "09:00")

			if tt.wantMax > 0 {
				assert.GreaterOrEqual(t, count, 0)
				assert.Less(t, count, tt.wantMax)
			} else {
				assert.Equal(t, tt.want, count)
			}
		})
	}
}

func TestAvailabilityService_DateAvailability(t *testing.T) {
	svc, repo, cache := newService(t)
	date := futureDate(t)

	// Date aggregate miss, then one count cache miss per slot.
	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(len(constant.TimeSlots) + 1)

	repo.EXPECT().
		CountActiveForSlot(gomock.Any(), date, gomock.Any()).
		Return(0, nil).
		Times(len(constant.TimeSlots))

	cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.DateAvailability(context.Background(), date)

	assert.NoError(t, err)
	assert.Equal(t, date, res.Date)
	assert.Len(t, res.Slots, 9)

	slot := res.Slots["09:00"]
	assert.True(t, slot.Available)
	assert.Equal(t, 0, slot.Count)
	assert.Equal(t, 2, slot.Remaining)
}

func TestAvailabilityService_DateAvailability_FullSlot(t *testing.T) {
	svc, repo, cache := newService(t)
	date := futureDate(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(len(constant.TimeSlots) + 1)

	repo.EXPECT().
		CountActiveForSlot(gomock.Any(), date, gomock.Any()).
		Return(2, nil).
		Times(len(constant.TimeSlots))

	cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.DateAvailability(context.Background(), date)

	assert.NoError(t, err)

	for _, slot := range res.Slots {
		assert.False(t, slot.Available)
		assert.Equal(t, 0, slot.Remaining)
	}

	assert.False(t, svc.IsDateAvailable(context.Background(), date))
}

func TestAvailabilityService_ReserveSlot(t *testing.T) {
	tests := []struct {
		name      string
		slot      string
		pastDate  bool
		setupMock func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantFull  bool
	}{
		{
			name: "open slot reserves and invalidates",
			slot: "10:00",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					CountActiveForSlot(gomock.Any(), gomock.Any(), "10:00").
					Return(1, nil)

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
		},
		{
			name: "full slot raises capacity failure",
			slot: "10:00",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					CountActiveForSlot(gomock.Any(), gomock.Any(), "10:00").
					Return(2, nil)
			},
			wantErr:  true,
			wantFull: true,
		},
		{
			name:      "unknown slot label rejected",
			slot:      "08:30",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name:      "past date rejected",
			slot:      "10:00",
			pastDate:  true,
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "unreadable count lets submission proceed",
			slot: "10:00",
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					CountActiveForSlot(gomock.Any(), gomock.Any(), "10:00").
					Return(0, errors.New("connection refused"))

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			date := futureDate(t)
			if tt.pastDate {
				date = timezone.Now().AddDate(0, 0, -1).Format(constant.BookingDateFmt)
			}

			err := svc.ReserveSlot(context.Background(), date, tt.slot)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantFull, failure.IsCapacity(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityService_Invalidate(t *testing.T) {
	svc, _, cache := newService(t)

	cache.EXPECT().
		Delete(gomock.Any(), "availability:count:2026-09-15:09:00").
		Return(nil)

	cache.EXPECT().
		Delete(gomock.Any(), "availability:date:2026-09-15").
		Return(nil)

	svc.Invalidate(context.Background(), "2026-09-15", "09:00")

	// Date-only invalidation drops just the aggregate.
	cache.EXPECT().
		Delete(gomock.Any(), "availability:date:2026-09-15").
		Return(nil)

	svc.Invalidate(context.Background(), "2026-09-15", "")
}

func TestAvailabilityService_ValidateBookingDate(t *testing.T) {
	svc, _, _ := newService(t)

	assert.NoError(t, svc.ValidateBookingDate(futureDate(t)))
	assert.NoError(t, svc.ValidateBookingDate(timezone.Now().Format(constant.BookingDateFmt)))
	assert.Error(t, svc.ValidateBookingDate("not-a-date"))
	assert.Error(t, svc.ValidateBookingDate(timezone.Now().AddDate(0, 0, -1).Format(constant.BookingDateFmt)))
}

func TestAvailabilityService_Slots(t *testing.T) {
	svc, _, _ := newService(t)

	slots := svc.Slots()

	assert.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[8])
}
