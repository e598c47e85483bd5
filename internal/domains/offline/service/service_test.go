package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/config"
	"yujin/infras/otel/mocks"
	availabilityMocks "yujin/internal/domains/availability/mocks"
	bookingMocks "yujin/internal/domains/booking/mocks"
	bookingModel "yujin/internal/domains/booking/model"
	offlineMocks "yujin/internal/domains/offline/mocks"
	"yujin/internal/domains/offline/model"
	"yujin/internal/domains/offline/service"
	"yujin/shared/constant"
)

func TestOfflineService_Reconcile(t *testing.T) {
	parked := []model.OfflineBooking{
		{
			ID: "LOCAL_1700000000000",
			Booking: bookingModel.Booking{
				ID:          "booking-1",
				BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				TimeSlot:    "09:00",
				Status:      constant.BookingStatusPendingOffline,
			},
		},
		{
			ID: "LOCAL_1700000000001",
			Booking: bookingModel.Booking{
				ID:          "booking-2",
				BookingDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
				TimeSlot:    "10:00",
				Status:      constant.BookingStatusPendingOffline,
			},
		},
	}

	tests := []struct {
		name         string
		setupMock    func(st *offlineMocks.MockStore, repo *bookingMocks.MockBooking, avail *availabilityMocks.MockAvailability)
		wantReplayed int
		wantErr      bool
	}{
		{
			name: "all records replayed and pruned",
			setupMock: func(st *offlineMocks.MockStore, repo *bookingMocks.MockBooking, avail *availabilityMocks.MockAvailability) {
				st.EXPECT().List(gomock.Any()).Return(parked, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking bookingModel.Booking) error {
						assert.Equal(t, constant.BookingStatusPending, booking.Status)

						return nil
					}).
					Times(2)

				st.EXPECT().Remove(gomock.Any(), "LOCAL_1700000000000").Return(nil)
				st.EXPECT().Remove(gomock.Any(), "LOCAL_1700000000001").Return(nil)

				avail.EXPECT().Invalidate(gomock.Any(), "2026-09-15", "09:00")
				avail.EXPECT().Invalidate(gomock.Any(), "2026-09-16", "10:00")
			},
			wantReplayed: 2,
		},
		{
			name: "failed replay keeps the record",
			setupMock: func(st *offlineMocks.MockStore, repo *bookingMocks.MockBooking, avail *availabilityMocks.MockAvailability) {
				st.EXPECT().List(gomock.Any()).Return(parked[:1], nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("still down"))
			},
			wantReplayed: 0,
		},
		{
			name: "empty store is a no-op",
			setupMock: func(st *offlineMocks.MockStore, repo *bookingMocks.MockBooking, avail *availabilityMocks.MockAvailability) {
				st.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			wantReplayed: 0,
		},
		{
			name: "unreadable store surfaces the error",
			setupMock: func(st *offlineMocks.MockStore, repo *bookingMocks.MockBooking, avail *availabilityMocks.MockAvailability) {
				st.EXPECT().List(gomock.Any()).Return(nil, errors.New("corrupt file"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := offlineMocks.NewMockStore(ctrl)
			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockAvail := availabilityMocks.NewMockAvailability(ctrl)

			tt.setupMock(mockStore, mockRepo, mockAvail)

			svc := service.New(mockStore, mockRepo, mockAvail, &config.Config{}, mocks.NewOtel())

			replayed, err := svc.Reconcile(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantReplayed, replayed)
			}
		})
	}
}
