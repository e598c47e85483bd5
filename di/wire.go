//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"yujin/config"
	"yujin/infras/geocode"
	"yujin/infras/jwt"
	"yujin/infras/kafka"
	"yujin/infras/otel"
	"yujin/infras/postgres"
	"yujin/infras/redis"
	"yujin/infras/s3"
	"yujin/infras/sheets"
	"yujin/permissions"
	"yujin/shared/cache"
	"yujin/transport/http"
	"yujin/transport/http/middleware"
	"yujin/transport/http/router"

	authService "yujin/internal/domains/auth/service"
	availabilityService "yujin/internal/domains/availability/service"
	bookingRepository "yujin/internal/domains/booking/repository"
	bookingService "yujin/internal/domains/booking/service"
	contactService "yujin/internal/domains/contact/service"
	customerRepository "yujin/internal/domains/customer/repository"
	customerService "yujin/internal/domains/customer/service"
	formflowService "yujin/internal/domains/formflow/service"
	notifyService "yujin/internal/domains/notify/service"
	offlineService "yujin/internal/domains/offline/service"
	offlineStore "yujin/internal/domains/offline/store"
	pricingService "yujin/internal/domains/pricing/service"
	trackingService "yujin/internal/domains/tracking/service"
	userRepository "yujin/internal/domains/user/repository"

	authHandler "yujin/internal/handlers/auth"
	availabilityHandler "yujin/internal/handlers/availability"
	bookingHandler "yujin/internal/handlers/booking"
	contactHandler "yujin/internal/handlers/contact"
	formflowHandler "yujin/internal/handlers/formflow"
	healthHandler "yujin/internal/handlers/health"
	offlineHandler "yujin/internal/handlers/offline"
	trackingHandler "yujin/internal/handlers/tracking"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	sheets.New,
	geocode.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	availabilityService.New,
	pricingService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerRepository.NewContact,
	customerService.New,
	contactService.New,
)

var formflowDomain = wire.NewSet(
	formflowService.New,
)

var offlineDomain = wire.NewSet(
	offlineStore.New,
	offlineService.New,
)

var trackingDomain = wire.NewSet(
	trackingService.New,
	notifyService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	customerDomain,
	formflowDomain,
	offlineDomain,
	trackingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	contactHandler.New,
	formflowHandler.New,
	healthHandler.New,
	offlineHandler.New,
	trackingHandler.New,
	router.New,
)

func InitializeService() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		NewApp,
	)

	return &App{}, nil
}
