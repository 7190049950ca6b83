//go:build wireinject
// +build wireinject

package di

import (
	"helm/config"
	"helm/infras/otel"
	"helm/infras/postgres"
	"helm/infras/redis"
	availabilityHandler "helm/internal/handlers/availability"
	bookingHandler "helm/internal/handlers/booking"
	yachtHandler "helm/internal/handlers/yacht"
	"helm/shared/cache"
	"helm/transport/http"
	"helm/transport/http/middleware"
	"helm/transport/http/router"

	availabilityService "helm/internal/domains/availability/service"
	bookingRepository "helm/internal/domains/booking/repository"
	bookingService "helm/internal/domains/booking/service"
	yachtRepository "helm/internal/domains/yacht/repository"
	yachtService "helm/internal/domains/yacht/service"
	"helm/internal/integrations/botcheck"
	"helm/internal/integrations/scheduler"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var integrations = wire.NewSet(
	scheduler.New,
	botcheck.New,
)

var yachtDomain = wire.NewSet(
	yachtRepository.New,
	yachtService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	yachtDomain,
	availabilityDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	yachtHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		integrations,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
