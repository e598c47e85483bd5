package model

import (
	"time"

	bookingModel "yujin/internal/domains/booking/model"
)

// OfflineBooking is a booking the remote store refused, parked in the
// local file store until the reconciler replays it. ID carries the
// LOCAL_ prefix handed back to the customer.
type OfflineBooking struct {
	ID      string               `json:"id"`
	Booking bookingModel.Booking `json:"booking"`
	Reason  string               `json:"reason"`
	SavedAt time.Time            `json:"saved_at"`
}
