package handler

import (
	"net/http"

	"yujin/config"
	"yujin/di"
	"yujin/shared/logger"
	"yujin/transport/http/response"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app, err := di.InitializeService()
	if err != nil {
		response.WithError(w, err)

		return
	}

	app.Handler().ServeHTTP(w, r)
}
