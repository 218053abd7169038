//go:build wireinject
// +build wireinject

package di

import (
	"petcare/config"
	"petcare/infras/jwt"
	"petcare/infras/kafka"
	"petcare/infras/otel"
	"petcare/infras/postgres"
	"petcare/infras/redis"
	"petcare/infras/s3"
	"petcare/permissions"
	"petcare/shared/cache"
	"petcare/transport/http"
	"petcare/transport/http/middleware"
	"petcare/transport/http/router"

	"github.com/google/wire"

	authService "petcare/internal/domains/auth/service"
	cageRepository "petcare/internal/domains/cage/repository"
	cageService "petcare/internal/domains/cage/service"
	orderRepository "petcare/internal/domains/order/repository"
	orderService "petcare/internal/domains/order/service"
	productRepository "petcare/internal/domains/product/repository"
	productService "petcare/internal/domains/product/service"
	reservationRepository "petcare/internal/domains/reservation/repository"
	reservationService "petcare/internal/domains/reservation/service"
	userRepository "petcare/internal/domains/user/repository"
	userService "petcare/internal/domains/user/service"
	authHandler "petcare/internal/handlers/auth"
	cageHandler "petcare/internal/handlers/cage"
	orderHandler "petcare/internal/handlers/order"
	productHandler "petcare/internal/handlers/product"
	reservationHandler "petcare/internal/handlers/reservation"
	userHandler "petcare/internal/handlers/user"
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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var cageDomain = wire.NewSet(
	cageRepository.New,
	cageService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderService.New,
)

var productDomain = wire.NewSet(
	productRepository.New,
	productService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	cageDomain,
	reservationDomain,
	orderDomain,
	productDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	cageHandler.New,
	reservationHandler.New,
	orderHandler.New,
	productHandler.New,
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
