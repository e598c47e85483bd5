package model

import (
	"time"

	pricingModel "yujin/internal/domains/pricing/model"
)

// The four steps of the public booking form. Steps advance one at a
// time and only forward motion is validated; going back never loses
// what was already entered.
const (
	StepService  = 1
	StepSchedule = 2
	StepContact  = 3
	StepSummary  = 4
)

// FormState is the full snapshot of an in-progress booking form, kept
// in Redis under the session identifier until submission or expiry.
type FormState struct {
	SessionID    string               `json:"session_id"`
	Step         int                  `json:"step"`
	Service      string               `json:"service,omitempty"`
	Brand        string               `json:"brand,omitempty"`
	VehicleModel string               `json:"vehicle_model,omitempty"`
	Film         string               `json:"film,omitempty"`
	Addons       []pricingModel.Addon `json:"addons,omitempty"`
	BookingDate  string               `json:"booking_date,omitempty"`
	TimeSlot     string               `json:"time_slot,omitempty"`
	Name         string               `json:"name,omitempty"`
	Phone        string               `json:"phone,omitempty"`
	Email        string               `json:"email,omitempty"`
	LineID       string               `json:"line_id,omitempty"`
	Latitude     float64              `json:"latitude,omitempty"`
	Longitude    float64              `json:"longitude,omitempty"`
	Address      string               `json:"address,omitempty"`
	Note         string               `json:"note,omitempty"`
	Source       string               `json:"source,omitempty"`
	StartedAt    time.Time            `json:"started_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}
