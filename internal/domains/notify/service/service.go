package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"yujin/config"
	"yujin/infras/otel"
	"yujin/shared/constant"
)

// Notifier sends the booking-confirmation SMS. Disabled deployments get
// a no-op that only logs, so the booking pipeline never branches on it.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, phone, bookingNumber, date, slot string) error
}

type twilioNotifier struct {
	client *twilio.RestClient
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Notifier {
	if !cfg.External.Twilio.Enable {
		return &noopNotifier{}
	}

	return &twilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.External.Twilio.AccountSID,
			Password: cfg.External.Twilio.AuthToken,
		}),
		cfg:  cfg,
		otel: otel,
	}
}

func (n *twilioNotifier) SendBookingConfirmation(ctx context.Context, phone, bookingNumber, date, slot string) (err error) {
	_, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Notifier.SendBookingConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := fmt.Sprintf("YuJin Film: booking %s confirmed for %s at %s. See you then!", bookingNumber, date, slot)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(n.cfg.External.Twilio.FromNumber)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Str("booking_number", bookingNumber).Msg("failed to send confirmation SMS")

		return fmt.Errorf("failed to send confirmation SMS: %w", err)
	}

	if resp.Sid != nil {
		log.Info().Str("sid", *resp.Sid).Str("booking_number", bookingNumber).Msg("confirmation SMS sent")
	}

	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) SendBookingConfirmation(_ context.Context, _, bookingNumber, _, _ string) error {
	log.Debug().Str("booking_number", bookingNumber).Msg("SMS notifications disabled, skipping confirmation")

	return nil
}
