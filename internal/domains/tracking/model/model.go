package model

import (
	"time"
)

const (
	EventBookingSubmitted = "booking_submitted"
	EventBookingOffline   = "booking_offline"
	EventFormStep         = "form_step"
	EventFormAbandoned    = "form_abandoned"
	EventQuickContact     = "quick_contact"
)

// Event is one telemetry record. Sequence orders events within the
// producing process; the timestamp orders them across restarts.
type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	UserID    string         `json:"user_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Page      string         `json:"page,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Sequence  int64          `json:"sequence"`
	Timestamp time.Time      `json:"timestamp"`
}
