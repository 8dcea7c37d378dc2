package handler

import (
	"net/http"
	"roomform/config"
	"roomform/di"
	"roomform/shared/logger"
	"sync"
)

var (
	service     http.HandlerFunc
	serviceOnce sync.Once
)

// Handler serves the API from a serverless function. Form sessions live in
// memory, so they only survive while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	serviceOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		service = di.InitializeService().Adaptor()
	})

	service(w, r)
}
