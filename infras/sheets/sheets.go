package sheets

//go:generate go run go.uber.org/mock/mockgen -source=./sheets.go -destination=./mocks/sheets_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/otel"
	"yujin/shared/constant"
)

// Row is one spreadsheet line. The back office reads bookings and
// quick-contact requests out of the same sheet, keyed by Type.
type Row struct {
	Type          string `json:"type"`
	Timestamp     string `json:"timestamp"`
	BookingNumber string `json:"bookingNumber,omitempty"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Service       string `json:"service,omitempty"`
	Date          string `json:"date,omitempty"`
	TimeSlot      string `json:"timeSlot,omitempty"`
	Detail        string `json:"detail,omitempty"`
	TotalPrice    int    `json:"totalPrice,omitempty"`
	Status        string `json:"status,omitempty"`
	Source        string `json:"source,omitempty"`
}

// Sheets mirrors records into the back-office spreadsheet through an
// Apps Script web endpoint. The endpoint answers with a JSON envelope
// carrying a result field.
type Sheets interface {
	AppendRow(ctx context.Context, row Row) error
}

type scriptResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

type sheetsImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(config *config.Config, otl otel.Otel) Sheets {
	return &sheetsImpl{
		config: config,
		client: &http.Client{
			Timeout: time.Duration(config.External.Sheets.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (s *sheetsImpl) AppendRow(ctx context.Context, row Row) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Sheets.AppendRow")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("row_type", row.Type)

	if s.config.External.Sheets.ScriptURL == "" {
		log.Debug().Msg("Sheets script URL not configured, skipping append")

		return nil
	}

	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.External.Sheets.ScriptURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sheet request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("type", row.Type).Msg("Failed to append row to sheet")

		return fmt.Errorf("failed to append row to sheet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read sheet response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sheet endpoint returned status %d", resp.StatusCode)
	}

	var scriptResp scriptResponse
	if err = json.Unmarshal(body, &scriptResp); err != nil {
		// Apps Script occasionally answers with an HTML redirect page
		// on success, treat a 2xx with an unparseable body as accepted.
		log.Warn().Str("type", row.Type).Msg("Sheet endpoint returned non-JSON body")

		return nil
	}

	if scriptResp.Error != "" {
		return fmt.Errorf("sheet endpoint rejected row: %s", scriptResp.Error)
	}

	log.Info().Str("type", row.Type).Msg("Appended row to sheet")

	return nil
}
