package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/config"
	"yujin/infras/otel/mocks"
	customerMocks "yujin/internal/domains/customer/mocks"
	"yujin/internal/domains/customer/model"
	"yujin/internal/domains/customer/model/dto"
	"yujin/internal/domains/customer/service"
	"yujin/shared/constant"
	"yujin/shared/timezone"
)

func TestCustomerService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockContactRepo := customerMocks.NewMockContact(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockContactRepo, cfg, mockOtel)

	req := dto.ResolveCustomerRequest{
		Name:    "Somchai",
		Phone:   "0812345678",
		Email:   "somchai@example.co.th",
		Channel: model.ChannelBooking,
	}

	tests := []struct {
		name         string
		setupMock    func()
		wantCreated  bool
		wantFallback bool
		wantExisting string
	}{
		{
			name: "existing customer found by phone",
			setupMock: func() {
				existing := model.Customer{
					ID:            "customer-1",
					Phone:         "+66812345678",
					ContactCount:  2,
					LastContactAt: timezone.Now(),
				}

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockContactRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantExisting: "customer-1",
		},
		{
			name: "new customer created on miss",
			setupMock: func() {
				// Phone miss, then email miss.
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil).
					Times(2)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockContactRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantCreated: true,
		},
		{
			name: "lookup failure degrades to local fallback id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, errors.New("permission denied"))
			},
			wantFallback: true,
		},
		{
			name: "insert failure degrades to local fallback id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil).
					Times(2)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Resolve(context.Background(), req)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCreated, res.Created)
			assert.Equal(t, tt.wantFallback, res.Fallback)

			if tt.wantExisting != "" {
				assert.Equal(t, tt.wantExisting, res.CustomerID)
			}

			if tt.wantFallback {
				assert.True(t, strings.HasPrefix(res.CustomerID, constant.LocalFallbackPrefix))
			} else {
				assert.NotEmpty(t, res.CustomerID)
			}
		})
	}
}

func TestCustomerService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockContactRepo := customerMocks.NewMockContact(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockContactRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "found",
			id:   "customer-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: "customer-1", Phone: "+66812345678", LastContactAt: timezone.Now()}, nil)
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "customer-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, res.ID)
			}
		})
	}
}
