package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"yujin/infras/otel"
	"yujin/internal/domains/pricing/model"
	"yujin/internal/domains/pricing/model/dto"
	"yujin/shared/constant"
	"yujin/shared/failure"
)

// Pricing computes booking totals. Film selections arrive comma-joined
// from the form, capped at two picks.
type Pricing interface {
	Quote(ctx context.Context, film string, addons []model.Addon) (dto.QuoteResponse, error)
	Total(ctx context.Context, film string, addons []model.Addon) (int, error)
}

type serviceImpl struct {
	otel otel.Otel
}

func New(otel otel.Otel) Pricing {
	return &serviceImpl{
		otel: otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, film string, addons []model.Addon) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	films, err := parseFilms(film)
	if err != nil {
		return res, err
	}

	res.BasePrice = model.BasePrice
	res.Total = model.BasePrice

	for _, code := range films {
		price := model.FilmPrices[code]
		res.Films = append(res.Films, dto.FilmLine{Code: code, Price: price})
		res.Total += price
	}

	res.Addons = addons
	for _, addon := range addons {
		res.Total += addon.Price
	}

	return res, nil
}

func (s *serviceImpl) Total(ctx context.Context, film string, addons []model.Addon) (int, error) {
	quote, err := s.Quote(ctx, film, addons)
	if err != nil {
		return 0, err
	}

	return quote.Total, nil
}

func parseFilms(film string) ([]string, error) {
	if film == "" {
		return nil, nil
	}

	parts := strings.Split(film, ",")

	films := make([]string, 0, len(parts))

	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}

		if _, ok := model.FilmPrices[code]; !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("unknown film selection: %s", code)) // nolint:wrapcheck
		}

		films = append(films, code)
	}

	if len(films) > model.MaxFilmSelections {
		return nil, failure.BadRequestFromString(fmt.Sprintf("at most %d film selections are allowed", model.MaxFilmSelections)) // nolint:wrapcheck
	}

	return films, nil
}
