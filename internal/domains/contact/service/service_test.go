package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/infras/otel/mocks"
	"yujin/infras/sheets"
	sheetsMocks "yujin/infras/sheets/mocks"
	"yujin/internal/domains/contact/model/dto"
	"yujin/internal/domains/contact/service"
	customerMocks "yujin/internal/domains/customer/mocks"
	customerDto "yujin/internal/domains/customer/model/dto"
	trackingModel "yujin/internal/domains/tracking/model"
	trackingMocks "yujin/internal/domains/tracking/mocks"
)

func TestContactService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockCustomer := customerMocks.NewMockCustomerService(ctrl)
	mockSheets := sheetsMocks.NewMockSheets(ctrl)
	mockTracker := trackingMocks.NewMockTracker(ctrl)

	svc := service.New(mockCustomer, mockSheets, mockTracker, mocks.NewOtel())

	mockCustomer.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req customerDto.ResolveCustomerRequest) (customerDto.ResolvedIdentity, error) {
			assert.Equal(t, "quick_contact", req.Channel)
			assert.Equal(t, "When can you install at my condo?", req.Detail)

			return customerDto.ResolvedIdentity{CustomerID: "cust-1"}, nil
		})

	mockTracker.EXPECT().
		Track(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event trackingModel.Event) {
			assert.Equal(t, trackingModel.EventQuickContact, event.Name)
			assert.Equal(t, "cust-1", event.UserID)
		})

	var (
		wg  sync.WaitGroup
		row sheets.Row
	)

	wg.Add(1)

	mockSheets.EXPECT().
		AppendRow(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r sheets.Row) error {
			row = r
			wg.Done()

			return nil
		})

	res, err := svc.Submit(context.Background(), dto.QuickContactRequest{
		Name:    "Somsri",
		Phone:   "089-999-8888",
		Message: "When can you install at my condo?",
		Source:  "landing",
	})

	assert.NoError(t, err)
	assert.Equal(t, "cust-1", res.CustomerID)
	assert.False(t, res.Fallback)

	waitGroupWithTimeout(t, &wg)

	assert.Equal(t, "contact", row.Type)
	assert.Equal(t, "+66899998888", row.Phone)
}

func waitGroupWithTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async sheet mirror")
	}
}
