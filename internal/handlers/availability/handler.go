package availability

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yujin/infras/otel"
	"yujin/internal/domains/availability/service"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/transport/http/response"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Get("/dates", handler.GetMultipleDates)
		routerGroup.Get("/{date}", handler.GetDateAvailability)
	})
}

// GetDateAvailability returns the per-slot availability of one date.
func (handler *Handler) GetDateAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDateAvailability")
	defer scope.End()

	date := chi.URLParam(request, "date")

	if err := handler.service.ValidateBookingDate(date); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.DateAvailability(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get date availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMultipleDates answers the calendar view: one open/closed flag per
// requested date, comma-separated in the dates query parameter.
func (handler *Handler) GetMultipleDates(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMultipleDates")
	defer scope.End()

	raw := request.URL.Query().Get("dates")
	if raw == constant.Empty {
		err := failure.BadRequestFromString("dates query parameter is required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	dates := []string{}

	for _, date := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(date); trimmed != constant.Empty {
			dates = append(dates, trimmed)
		}
	}

	res := handler.service.MultipleDateAvailability(ctx, dates)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSlots lists the fixed daily time slots.
func (handler *Handler) GetSlots(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.Slots())
}
