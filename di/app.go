package di

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	offlineService "yujin/internal/domains/offline/service"
	trackingService "yujin/internal/domains/tracking/service"
	transport "yujin/transport/http"
)

// App ties the HTTP server to the background workers that share its
// lifecycle: the offline reconciler and the tracking flusher.
type App struct {
	HTTP    *transport.HTTP
	Offline offlineService.Offline
	Tracker trackingService.Tracker
}

func NewApp(httpServer *transport.HTTP, offline offlineService.Offline, tracker trackingService.Tracker) *App {
	return &App{
		HTTP:    httpServer,
		Offline: offline,
		Tracker: tracker,
	}
}

func (a *App) Serve() {
	a.Offline.StartReconciler()

	a.HTTP.OnShutdown(func() {
		a.Offline.StopReconciler()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.Tracker.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to flush tracking buffer on shutdown")
		}
	})

	a.HTTP.Serve()
}

// Handler exposes the mux without starting background workers, for
// serverless deployments where nothing outlives the request.
func (a *App) Handler() http.Handler {
	return a.HTTP.Handler()
}
