package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yujin/config"
	bookingModel "yujin/internal/domains/booking/model"
	"yujin/internal/domains/offline/store"
	"yujin/shared/constant"
)

func newStore(t *testing.T) store.Store {
	t.Helper()

	cfg := &config.Config{}
	cfg.Booking.OfflineDir = t.TempDir()

	st, err := store.New(cfg)
	require.NoError(t, err)

	return st
}

func TestStore_AppendAndList(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	booking := bookingModel.Booking{
		ID:       "booking-1",
		TimeSlot: "09:00",
		Name:     "Somchai",
		Status:   constant.BookingStatusPending,
	}

	record, err := st.Append(ctx, booking, "permission denied")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(record.ID, constant.LocalFallbackPrefix))
	assert.Equal(t, constant.BookingStatusPendingOffline, record.Booking.Status)

	records, err := st.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "booking-1", records[0].Booking.ID)
	assert.Equal(t, "permission denied", records[0].Reason)
}

func TestStore_ListEmpty(t *testing.T) {
	st := newStore(t)

	records, err := st.List(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_Remove(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	first, err := st.Append(ctx, bookingModel.Booking{ID: "booking-1"}, "outage")
	require.NoError(t, err)

	// Same-millisecond appends would collide on the LOCAL_ id; the
	// second record just needs a distinct one for this test.
	var second string

	for {
		record, err := st.Append(ctx, bookingModel.Booking{ID: "booking-2"}, "outage")
		require.NoError(t, err)

		if record.ID != first.ID {
			second = record.ID

			break
		}

		require.NoError(t, st.Remove(ctx, record.ID))
	}

	assert.NoError(t, st.Remove(ctx, first.ID))

	records, err := st.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, second, records[0].ID)
}

func TestStore_Clear(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Append(ctx, bookingModel.Booking{ID: "booking-1"}, "outage")
	require.NoError(t, err)

	assert.NoError(t, st.Clear(ctx))

	records, err := st.List(ctx)

	assert.NoError(t, err)
	assert.Empty(t, records)
}
