package dto

import (
	"yujin/internal/domains/formflow/model"
	pricingModel "yujin/internal/domains/pricing/model"
	pricingDto "yujin/internal/domains/pricing/model/dto"
)

type StartFormRequest struct {
	Source string `json:"source" validate:"omitempty,max=100"`
	Page   string `json:"page"   validate:"omitempty,max=200"`
}

// StepInput carries whatever the client filled in on the current step.
// Every field is optional at the transport level; the service enforces
// what the step actually requires before advancing.
type StepInput struct {
	Service      string               `json:"service"       validate:"omitempty,oneof=car building"`
	Brand        string               `json:"brand"         validate:"omitempty,max=100"`
	VehicleModel string               `json:"vehicle_model" validate:"omitempty,max=100"`
	Film         string               `json:"film"          validate:"omitempty,max=100"`
	Addons       []pricingModel.Addon `json:"addons"        validate:"omitempty,dive"`
	BookingDate  string               `json:"booking_date"  validate:"omitempty,datetime=2006-01-02"`
	TimeSlot     string               `json:"time_slot"     validate:"omitempty,timeslot"`
	Name         string               `json:"name"          validate:"omitempty,max=100"`
	Phone        string               `json:"phone"         validate:"omitempty,thaiphone"`
	Email        string               `json:"email"         validate:"omitempty,email,max=100"`
	LineID       string               `json:"line_id"       validate:"omitempty,max=100"`
	Latitude     float64              `json:"latitude"      validate:"omitempty,latitude"`
	Longitude    float64              `json:"longitude"     validate:"omitempty,longitude"`
	Address      string               `json:"address"       validate:"omitempty,max=500"`
	Note         string               `json:"note"          validate:"omitempty,max=1000"`
}

// Apply merges the non-zero step fields into the session state.
func (i *StepInput) Apply(state *model.FormState) {
	if i.Service != "" {
		state.Service = i.Service
	}

	if i.Brand != "" {
		state.Brand = i.Brand
	}

	if i.VehicleModel != "" {
		state.VehicleModel = i.VehicleModel
	}

	if i.Film != "" {
		state.Film = i.Film
	}

	if len(i.Addons) > 0 {
		state.Addons = i.Addons
	}

	if i.BookingDate != "" {
		state.BookingDate = i.BookingDate
	}

	if i.TimeSlot != "" {
		state.TimeSlot = i.TimeSlot
	}

	if i.Name != "" {
		state.Name = i.Name
	}

	if i.Phone != "" {
		state.Phone = i.Phone
	}

	if i.Email != "" {
		state.Email = i.Email
	}

	if i.LineID != "" {
		state.LineID = i.LineID
	}

	if i.Latitude != 0 || i.Longitude != 0 {
		state.Latitude = i.Latitude
		state.Longitude = i.Longitude
	}

	if i.Address != "" {
		state.Address = i.Address
	}

	if i.Note != "" {
		state.Note = i.Note
	}
}

// FormStateResponse echoes the session after a transition. Summary is
// only present once the form reaches the final step.
type FormStateResponse struct {
	SessionID string                    `json:"session_id"`
	Step      int                       `json:"step"`
	State     model.FormState           `json:"state"`
	Summary   *pricingDto.QuoteResponse `json:"summary,omitempty"`
}

func (r *FormStateResponse) FromState(state model.FormState) {
	r.SessionID = state.SessionID
	r.Step = state.Step
	r.State = state
}
