package dto

// SlotAvailability is one slot's live picture for a date.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
	Count     int    `json:"count"`
	Remaining int    `json:"remaining"`
}

type DateAvailabilityResponse struct {
	Date  string                      `json:"date"`
	Slots map[string]SlotAvailability `json:"slots"`
}

type MultipleDateAvailabilityResponse struct {
	Dates map[string]bool `json:"dates"`
}
