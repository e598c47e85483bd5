package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"yujin/internal/domains/booking/model"
	pricingModel "yujin/internal/domains/pricing/model"
	"yujin/shared"
	"yujin/shared/constant"
	gDto "yujin/shared/dto"
	gModel "yujin/shared/model"
	"yujin/shared/timezone"
)

type CreateBookingRequest struct {
	Service      string               `json:"service"       validate:"required,oneof=car building"`
	Brand        string               `json:"brand"         validate:"required_if=Service car,omitempty,max=100"`
	VehicleModel string               `json:"vehicle_model" validate:"omitempty,max=100"`
	Film         string               `json:"film"          validate:"omitempty,max=100"`
	Addons       []pricingModel.Addon `json:"addons"        validate:"omitempty,dive"`
	Name         string               `json:"name"          validate:"required,max=100"`
	Phone        string               `json:"phone"         validate:"required,thaiphone"`
	Email        string               `json:"email"         validate:"required,email,max=100"`
	LineID       string               `json:"line_id"       validate:"omitempty,max=100"`
	BookingDate  string               `json:"booking_date"  validate:"required,datetime=2006-01-02"`
	TimeSlot     string               `json:"time_slot"     validate:"required,timeslot"`
	Latitude     float64              `json:"latitude"      validate:"omitempty,latitude"`
	Longitude    float64              `json:"longitude"     validate:"omitempty,longitude"`
	Address      string               `json:"address"       validate:"omitempty,max=500"`
	Note         string               `json:"note"          validate:"omitempty,max=1000"`
	SessionID    string               `json:"session_id"    validate:"omitempty,max=100"`
	Source       string               `json:"source"        validate:"omitempty,max=100"`
	UserAgent    string               `json:"-"`
	Referrer     string               `json:"-"`
}

func (c *CreateBookingRequest) ToModel(customerID, normalizedPhone, sessionID, bookingNumber, address string, totalPrice int) (model.Booking, error) {
	bookingDate, err := time.Parse(constant.BookingDateFmt, c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	addons := "[]"
	if len(c.Addons) > 0 {
		encoded, err := json.Marshal(c.Addons)
		if err != nil {
			return model.Booking{}, err
		}

		addons = string(encoded)
	}

	now := timezone.Now()

	return model.Booking{
		ID:            uuid.NewString(),
		BookingNumber: bookingNumber,
		CustomerID:    customerID,
		SessionID:     sessionID,
		BookingDate:   bookingDate,
		TimeSlot:      c.TimeSlot,
		Service:       c.Service,
		Brand:         c.Brand,
		VehicleModel:  c.VehicleModel,
		Film:          c.Film,
		Addons:        addons,
		Name:          c.Name,
		Phone:         normalizedPhone,
		Email:         c.Email,
		LineID:        c.LineID,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		Address:       address,
		Note:          c.Note,
		Status:        constant.BookingStatusPending,
		TotalPrice:    totalPrice,
		Source:        c.Source,
		UserAgent:     c.UserAgent,
		Referrer:      c.Referrer,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}, nil
}

// CreateBookingResponse reports where the booking landed. Offline marks
// the local fallback path; its identifier carries the LOCAL_ prefix.
type CreateBookingResponse struct {
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	CustomerID    string `json:"customer_id"`
	Status        string `json:"status"`
	TotalPrice    int    `json:"total_price"`
	Offline       bool   `json:"offline"`
	Message       string `json:"message"`
}

type UpdateBookingRequest struct {
	Status   string `db:"status"    json:"status"    validate:"omitempty,oneof=pending confirmed cancelled"`
	Note     string `db:"note"      json:"note"      validate:"omitempty,max=1000"`
	TimeSlot string `db:"time_slot" json:"time_slot" validate:"omitempty,timeslot"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	BookingNumber string               `json:"booking_number"`
	CustomerID    string               `json:"customer_id"`
	SessionID     string               `json:"session_id"`
	BookingDate   string               `json:"booking_date"`
	TimeSlot      string               `json:"time_slot"`
	Service       string               `json:"service"`
	Brand         string               `json:"brand"`
	VehicleModel  string               `json:"vehicle_model"`
	Film          string               `json:"film"`
	Addons        []pricingModel.Addon `json:"addons"`
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	Email         string               `json:"email"`
	LineID        string               `json:"line_id"`
	Latitude      float64              `json:"latitude"`
	Longitude     float64              `json:"longitude"`
	Address       string               `json:"address"`
	Note          string               `json:"note"`
	ImageURL      string               `json:"image_url"`
	Status        string               `json:"status"`
	TotalPrice    int                  `json:"total_price"`
	Source        string               `json:"source"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.BookingNumber = mod.BookingNumber
	r.CustomerID = mod.CustomerID
	r.SessionID = mod.SessionID
	r.BookingDate = mod.BookingDate.Format(constant.BookingDateFmt)
	r.TimeSlot = mod.TimeSlot
	r.Service = mod.Service
	r.Brand = mod.Brand
	r.VehicleModel = mod.VehicleModel
	r.Film = mod.Film
	r.Addons = mod.AddonList()
	r.Name = mod.Name
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.LineID = mod.LineID
	r.Latitude = mod.Latitude
	r.Longitude = mod.Longitude
	r.Address = mod.Address
	r.Note = mod.Note
	r.ImageURL = mod.ImageURL
	r.Status = mod.Status
	r.TotalPrice = mod.TotalPrice
	r.Source = mod.Source
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
