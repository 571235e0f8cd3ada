package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	bookingshandler "hotelier/internal/bookings/handler"
	bookingsrepository "hotelier/internal/bookings/repository"
	bookingsservice "hotelier/internal/bookings/service"
	bookingsvalidator "hotelier/internal/bookings/validator"
	cataloghandler "hotelier/internal/catalog/handler"
	catalogservice "hotelier/internal/catalog/service"
	hotelshandler "hotelier/internal/hotels/handler"
	hotelsrepository "hotelier/internal/hotels/repository"
	hotelsservice "hotelier/internal/hotels/service"
	usershandler "hotelier/internal/users/handler"
	usersrepository "hotelier/internal/users/repository"
	usersservice "hotelier/internal/users/service"
	usersvalidator "hotelier/internal/users/validator"
	"hotelier/pkg/app"
	"hotelier/pkg/auth"
	"hotelier/pkg/config"
	"hotelier/pkg/kafka"
)

const ServiceName = "server"

func main() {
	// Missing .env is fine; configuration falls back to the environment.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	guard := auth.NewGuard(issuer, cfg.Log)

	producer := initProducer(cfg)

	userRepo := usersrepository.NewMongoUserRepository(cfg)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to create user indexes", "error", err)
	}
	userService := usersservice.NewUserService(userRepo, usersvalidator.NewUserValidator(), issuer, cfg)
	userHandler := usershandler.NewUserHandler(userService, cfg.Log)

	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsvalidator.NewBookingValidator(),
		eventPublisher(producer),
		cfg,
	)
	bookingHandler := bookingshandler.NewBookingHandler(bookingService, cfg.Log)

	hotelRepo := hotelsrepository.NewMongoHotelRepository(cfg)
	hotelService := hotelsservice.NewHotelService(hotelRepo, cfg)
	hotelHandler := hotelshandler.NewHotelHandler(hotelService, cfg.Log)

	catalogService := catalogservice.NewCatalogService(cfg)
	catalogHandler := cataloghandler.NewCatalogHandler(catalogService, cfg.Log)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetProducer(producer)
	serverApp.SetApp(func(router *httprouter.Router) {
		userHandler.RegisterRoutes(router, guard)
		bookingHandler.RegisterRoutes(router, guard)
		hotelHandler.RegisterRoutes(router, guard)
		catalogHandler.RegisterRoutes(router, guard)
	})
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured; booking events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaBookingTopic, "brokers", cfg.KafkaBrokers)
	return producer
}

// eventPublisher keeps the nil check in one place: a nil *kafka.Producer
// must become a nil interface, not an interface holding a nil pointer.
func eventPublisher(producer *kafka.Producer) bookingsservice.EventPublisher {
	if producer == nil {
		return nil
	}
	return producer
}
