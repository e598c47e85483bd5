package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"yujin/infras/otel"
	"yujin/infras/sheets"
	"yujin/internal/domains/contact/model/dto"
	customerModel "yujin/internal/domains/customer/model"
	customerDto "yujin/internal/domains/customer/model/dto"
	customerService "yujin/internal/domains/customer/service"
	trackingModel "yujin/internal/domains/tracking/model"
	trackingService "yujin/internal/domains/tracking/service"
	"yujin/shared/constant"
	"yujin/shared/phone"
	"yujin/shared/timezone"
)

// Contact takes the quick-contact form on the landing page: no slot, no
// price, just an identity touch and a row in the sheet for follow-up.
type Contact interface {
	Submit(ctx context.Context, req dto.QuickContactRequest) (dto.QuickContactResponse, error)
}

type serviceImpl struct {
	customer customerService.Customer
	sheets   sheets.Sheets
	tracker  trackingService.Tracker
	otel     otel.Otel
}

func New(customer customerService.Customer, sheetsClient sheets.Sheets, tracker trackingService.Tracker, otel otel.Otel) Contact {
	return &serviceImpl{
		customer: customer,
		sheets:   sheetsClient,
		tracker:  tracker,
		otel:     otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.QuickContactRequest) (res dto.QuickContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	identity, err := s.customer.Resolve(ctx, customerDto.ResolveCustomerRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Channel: customerModel.ChannelQuickContact,
		Detail:  req.Message,
	})
	if err != nil {
		return res, err
	}

	s.tracker.Track(ctx, trackingModel.Event{
		Name:   trackingModel.EventQuickContact,
		UserID: identity.CustomerID,
		Payload: map[string]any{
			"source":   req.Source,
			"fallback": identity.Fallback,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.sheets.AppendRow(c, sheets.Row{
			Type:      "contact",
			Timestamp: timezone.Now().Format(constant.DateFormat),
			Name:      req.Name,
			Phone:     phone.Normalize(phone.Clean(req.Phone)),
			Email:     req.Email,
			Detail:    req.Message,
			Source:    req.Source,
		}); err != nil {
			log.Error().Err(err).Msg("failed to mirror quick contact to sheet")
		}
	}()

	res.CustomerID = identity.CustomerID
	res.Fallback = identity.Fallback
	res.Message = "Thank you, we will get back to you shortly"

	return res, nil
}
