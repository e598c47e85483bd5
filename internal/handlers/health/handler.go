package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"yujin/infras/postgres"
	"yujin/transport/http/response"
)

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
	ready func() bool
}

func New(db *postgres.Connection, redis *goRedis.Client) Handler {
	return Handler{
		db:    db,
		redis: redis,
	}
}

// SetReadyProbe lets the server wire its shutdown state in after
// construction. Without a probe the handler reports ready.
func (handler *Handler) SetReadyProbe(probe func() bool) {
	handler.ready = probe
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/health", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Health)
		routerGroup.Get("/ready", handler.Ready)
	})
}

// Health reports whether the process can still reach its backends.
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if err := handler.db.Read.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("database health check failed")

		response.WithUnhealthy(writer)

		return
	}

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("redis health check failed")

		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}

// Ready additionally reports the server lifecycle, so load balancers
// stop routing traffic during the shutdown grace period.
func (handler *Handler) Ready(writer http.ResponseWriter, request *http.Request) {
	if handler.ready != nil && !handler.ready() {
		response.WithPreparingShutdown(writer)

		return
	}

	handler.Health(writer, request)
}
