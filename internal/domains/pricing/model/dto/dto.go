package dto

import (
	"yujin/internal/domains/pricing/model"
)

type QuoteRequest struct {
	Film   string        `json:"film"   validate:"omitempty,max=100"`
	Addons []model.Addon `json:"addons" validate:"omitempty,dive"`
}

type FilmLine struct {
	Code  string `json:"code"`
	Price int    `json:"price"`
}

type QuoteResponse struct {
	BasePrice int           `json:"base_price"`
	Films     []FilmLine    `json:"films"`
	Addons    []model.Addon `json:"addons"`
	Total     int           `json:"total"`
}
