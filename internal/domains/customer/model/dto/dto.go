package dto

import (
	"yujin/internal/domains/customer/model"
)

type ResolveCustomerRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Phone   string `json:"phone"   validate:"required,thaiphone"`
	Email   string `json:"email"   validate:"omitempty,email,max=100"`
	Channel string `json:"channel" validate:"required,oneof=booking quick_contact"`
	Detail  string `json:"detail"  validate:"omitempty,max=500"`
}

// ResolvedIdentity is the outcome of identity resolution. Fallback marks
// a locally generated identifier without durable backend linkage.
type ResolvedIdentity struct {
	CustomerID string `json:"customer_id"`
	Created    bool   `json:"created"`
	Fallback   bool   `json:"fallback"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactCount  int    `json:"contact_count"`
	LastContactAt string `json:"last_contact_at"`
	LastChannel   string `json:"last_channel"`
}

func (r *CustomerResponse) FromModel(mod model.Customer) {
	r.ID = mod.ID
	r.Phone = mod.Phone
	r.Name = mod.Name
	r.Email = mod.Email
	r.ContactCount = mod.ContactCount
	r.LastContactAt = mod.LastContactAt.Format("2006-01-02 15:04:05")
	r.LastChannel = mod.LastChannel
}
