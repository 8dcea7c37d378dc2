//go:build wireinject
// +build wireinject

package di

import (
	"roomform/config"
	"roomform/infras/metrics"
	"roomform/infras/otel"
	"roomform/infras/redis"
	"roomform/shared/cache"
	"roomform/transport/http"
	"roomform/transport/http/middleware"
	"roomform/transport/http/router"

	reservationService "roomform/internal/domains/reservation/service"
	"roomform/internal/domains/reservation/submission"

	"github.com/google/wire"

	locationHandler "roomform/internal/handlers/location"
	reservationHandler "roomform/internal/handlers/reservation"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var reservationDomain = wire.NewSet(
	submission.NewLogSubmitter,
	reservationService.New,
)

var domains = wire.NewSet(
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	locationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
