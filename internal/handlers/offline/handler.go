package offline

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yujin/infras/otel"
	"yujin/internal/domains/offline/service"
	"yujin/shared/constant"
	"yujin/transport/http/response"
)

type Handler struct {
	service service.Offline
	otel    otel.Otel
}

func New(service service.Offline, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/offline-bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOfflineBookings)
		routerGroup.Post("/reconcile", handler.Reconcile)
	})
}

func (handler *Handler) GetOfflineBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfflineBookings")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list offline bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Reconcile triggers an immediate replay instead of waiting for the
// scheduled run.
func (handler *Handler) Reconcile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reconcile")
	defer scope.End()

	replayed, err := handler.service.Reconcile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile offline bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, map[string]int{"replayed": replayed})
}
