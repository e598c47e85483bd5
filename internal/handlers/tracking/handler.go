package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"yujin/infras/otel"
	"yujin/internal/domains/tracking/model"
	"yujin/internal/domains/tracking/service"
	"yujin/shared/constant"
	"yujin/shared/failure"
	"yujin/shared/validator"
	"yujin/transport/http/response"
)

type Handler struct {
	service service.Tracker
	otel    otel.Otel
}

func New(service service.Tracker, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/events", handler.TrackEvent)
}

// TrackEvent buffers a client-side telemetry event. Accepted means
// queued, not delivered; the tracker flushes batches in the background.
func (handler *Handler) TrackEvent(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TrackEvent")
	defer scope.End()

	event := model.Event{}

	if err := validator.Validate(request.Body, &event); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	if event.Name == constant.Empty {
		err := failure.BadRequestFromString("event name is required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	handler.service.Track(ctx, event)

	response.WithMessage(writer, http.StatusAccepted, "Event accepted")
}
