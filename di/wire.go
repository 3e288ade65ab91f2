//go:build wireinject
// +build wireinject

package di

import (
	"rentopia/config"
	"rentopia/infras/jwt"
	"rentopia/infras/kafka"
	"rentopia/infras/mail"
	"rentopia/infras/otel"
	"rentopia/infras/payment"
	"rentopia/infras/postgres"
	"rentopia/infras/redis"
	"rentopia/infras/s3"
	"rentopia/permissions"
	"rentopia/shared/cache"
	"rentopia/transport/http"
	"rentopia/transport/http/middleware"
	"rentopia/transport/http/router"

	"github.com/google/wire"

	authService "rentopia/internal/domains/auth/service"
	bookingRepository "rentopia/internal/domains/booking/repository"
	bookingService "rentopia/internal/domains/booking/service"
	notificationService "rentopia/internal/domains/notification/service"
	paymentService "rentopia/internal/domains/payment/service"
	placeRepository "rentopia/internal/domains/place/repository"
	placeService "rentopia/internal/domains/place/service"
	reviewRepository "rentopia/internal/domains/review/repository"
	reviewService "rentopia/internal/domains/review/service"
	subscriptionService "rentopia/internal/domains/subscription/service"
	uploadService "rentopia/internal/domains/upload/service"
	userRepository "rentopia/internal/domains/user/repository"
	userService "rentopia/internal/domains/user/service"
	authHandler "rentopia/internal/handlers/auth"
	bookingHandler "rentopia/internal/handlers/booking"
	paymentHandler "rentopia/internal/handlers/payment"
	placeHandler "rentopia/internal/handlers/place"
	reviewHandler "rentopia/internal/handlers/review"
	subscriptionHandler "rentopia/internal/handlers/subscription"
	uploadHandler "rentopia/internal/handlers/upload"
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
	mail.New,
	payment.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.Revocations), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.NewDispatcher,
	notificationService.NewPublisher,
)

var placeDomain = wire.NewSet(
	placeRepository.New,
	placeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	notificationDomain,
	placeDomain,
	bookingDomain,
	paymentService.New,
	reviewDomain,
	subscriptionService.New,
	uploadService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	placeHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	reviewHandler.New,
	subscriptionHandler.New,
	uploadHandler.New,
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

func InitializeWorker() *notificationService.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		postgres.New,
		kafka.New,
		mail.New,
		userRepository.New,
		bookingRepository.New,
		notificationService.NewDispatcher,
		notificationService.NewConsumer,
	)

	return &notificationService.Consumer{}
}
