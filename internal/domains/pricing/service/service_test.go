package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"yujin/infras/otel/mocks"
	"yujin/internal/domains/pricing/model"
	"yujin/internal/domains/pricing/service"
)

func TestPricingService_Quote(t *testing.T) {
	svc := service.New(mocks.NewOtel())

	tests := []struct {
		name      string
		film      string
		addons    []model.Addon
		wantErr   bool
		wantTotal int
	}{
		{
			name:      "base price only",
			film:      "",
			wantTotal: 3500,
		},
		{
			name:      "single film",
			film:      "ceramic-70",
			wantTotal: 6000,
		},
		{
			name:      "two films comma joined",
			film:      "ceramic-70,ppf-partial",
			wantTotal: 14000,
		},
		{
			name: "film with addons",
			film: "ceramic-50",
			addons: []model.Addon{
				{Name: "headlight wrap", Price: 1200},
				{Name: "windshield coat", Price: 800},
			},
			wantTotal: 8500,
		},
		{
			name:    "unknown film rejected",
			film:    "ceramic-99",
			wantErr: true,
		},
		{
			name:    "more than two selections rejected",
			film:    "ceramic-70,ceramic-50,ceramic-30",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Quote(context.Background(), tt.film, tt.addons)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 3500, res.BasePrice)
			assert.Equal(t, tt.wantTotal, res.Total)
		})
	}
}

func TestPricingService_Total(t *testing.T) {
	svc := service.New(mocks.NewOtel())

	total, err := svc.Total(context.Background(), "ceramic-70", nil)

	assert.NoError(t, err)
	assert.Equal(t, 6000, total)
}
