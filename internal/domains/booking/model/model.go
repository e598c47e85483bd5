package model

import (
	"encoding/json"
	"time"

	pricingModel "yujin/internal/domains/pricing/model"
	"yujin/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldBookingNumber = "booking_number"
	FieldCustomerID    = "customer_id"
	FieldSessionID     = "session_id"
	FieldBookingDate   = "booking_date"
	FieldTimeSlot      = "time_slot"
	FieldService       = "service"
	FieldBrand         = "brand"
	FieldVehicleModel  = "vehicle_model"
	FieldFilm          = "film"
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldStatus        = "status"
	FieldTotalPrice    = "total_price"
	FieldImageURL      = "image_url"
)

// Booking is one slot reservation. BookingDate holds the calendar day,
// TimeSlot the fixed one-hour label ("09:00".."17:00").
type Booking struct {
	ID            string    `db:"id"`
	BookingNumber string    `db:"booking_number"`
	CustomerID    string    `db:"customer_id"`
	SessionID     string    `db:"session_id"`
	BookingDate   time.Time `db:"booking_date"`
	TimeSlot      string    `db:"time_slot"`
	Service       string    `db:"service"`
	Brand         string    `db:"brand"`
	VehicleModel  string    `db:"vehicle_model"`
	Film          string    `db:"film"`
	Addons        string    `db:"addons"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	Email         string    `db:"email"`
	LineID        string    `db:"line_id"`
	Latitude      float64   `db:"latitude"`
	Longitude     float64   `db:"longitude"`
	Address       string    `db:"address"`
	Note          string    `db:"note"`
	ImageURL      string    `db:"image_url"`
	Status        string    `db:"status"`
	TotalPrice    int       `db:"total_price"`
	Source        string    `db:"source"`
	UserAgent     string    `db:"user_agent"`
	Referrer      string    `db:"referrer"`
	model.Metadata
}

// AddonList decodes the JSON addons column.
func (b *Booking) AddonList() []pricingModel.Addon {
	if b.Addons == "" {
		return nil
	}

	var addons []pricingModel.Addon
	if err := json.Unmarshal([]byte(b.Addons), &addons); err != nil {
		return nil
	}

	return addons
}
