//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"plek/config"
	"plek/infras/gateway"
	"plek/infras/jwt"
	"plek/infras/kafka"
	"plek/infras/otel"
	"plek/infras/postgres"
	"plek/infras/redis"
	"plek/infras/s3"
	"plek/permissions"
	"plek/shared/cache"
	"plek/transport/http"
	"plek/transport/http/middleware"
	"plek/transport/http/router"

	bookingRepository "plek/internal/domains/booking/repository"
	bookingService "plek/internal/domains/booking/service"
	"plek/internal/domains/notification"
	paymentRepository "plek/internal/domains/payment/repository"
	paymentService "plek/internal/domains/payment/service"
	propertyRepository "plek/internal/domains/property/repository"
	"plek/internal/domains/refund"
	revenueRepository "plek/internal/domains/revenue/repository"
	revenueService "plek/internal/domains/revenue/service"

	bookingHandler "plek/internal/handlers/booking"
	jobsHandler "plek/internal/handlers/jobs"
	revenueHandler "plek/internal/handlers/revenue"
	webhookHandler "plek/internal/handlers/webhook"
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
	gateway.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	propertyRepository.New,
	bookingRepository.New,
	refund.New,
	notification.NewDispatcher,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
	paymentService.NewWebhook,
)

var revenueDomain = wire.NewSet(
	revenueRepository.New,
	revenueService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	paymentDomain,
	revenueDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	webhookHandler.New,
	jobsHandler.New,
	revenueHandler.New,
	router.New,
)

// Application bundles everything main has to start: the HTTP server and the
// background notification dispatcher.
type Application struct {
	HTTP       *http.HTTP
	Dispatcher notification.Dispatcher
}

func InitializeService() *Application {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(Application), "*"),
	)

	return &Application{}
}
