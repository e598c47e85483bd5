package dto

type QuickContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Phone   string `json:"phone"   validate:"required,thaiphone"`
	Email   string `json:"email"   validate:"omitempty,email,max=100"`
	Message string `json:"message" validate:"required,max=1000"`
	Source  string `json:"source"  validate:"omitempty,max=100"`
}

type QuickContactResponse struct {
	CustomerID string `json:"customer_id"`
	Fallback   bool   `json:"fallback"`
	Message    string `json:"message"`
}
