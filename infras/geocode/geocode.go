package geocode

//go:generate go run go.uber.org/mock/mockgen -source=./geocode.go -destination=./mocks/geocode_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/otel"
	"yujin/shared/constant"
)

// Geocoder resolves map pin coordinates picked on the booking form into
// a human readable address for the installation crew.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (address string, err error)
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

type geocoderImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(config *config.Config, otl otel.Otel) Geocoder {
	return &geocoderImpl{
		config: config,
		client: &http.Client{
			Timeout: time.Duration(config.External.Geocode.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (g *geocoderImpl) ReverseGeocode(ctx context.Context, lat, lng float64) (address string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Geocoder.ReverseGeocode")
	defer scope.End()
	defer scope.TraceIfError(err)

	if g.config.External.Geocode.Endpoint == "" {
		return constant.Empty, nil
	}

	query := url.Values{}
	query.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	query.Set("key", g.config.External.Geocode.APIKey)
	query.Set("language", "th")

	endpoint := fmt.Sprintf("%s?%s", g.config.External.Geocode.Endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to call geocode endpoint")

		return constant.Empty, fmt.Errorf("failed to call geocode endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return constant.Empty, fmt.Errorf("geocode endpoint returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return constant.Empty, fmt.Errorf("geocode lookup failed with status %s", decoded.Status)
	}

	return decoded.Results[0].FormattedAddress, nil
}
