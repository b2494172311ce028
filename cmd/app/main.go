package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airline-backoffice/api"
	"github.com/Domenick1991/airline-backoffice/config"
	"github.com/Domenick1991/airline-backoffice/internal/bootstrap"
	"github.com/Domenick1991/airline-backoffice/internal/cache"
	"github.com/Domenick1991/airline-backoffice/internal/kafka"
	"github.com/Domenick1991/airline-backoffice/internal/logging"
	"github.com/Domenick1991/airline-backoffice/internal/metrics"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
	"github.com/Domenick1991/airline-backoffice/internal/service/booking"
	"github.com/Domenick1991/airline-backoffice/internal/service/catalog"
	"github.com/Domenick1991/airline-backoffice/internal/service/flights"
	"github.com/Domenick1991/airline-backoffice/internal/service/inventory"
	"github.com/Domenick1991/airline-backoffice/internal/service/passengers"
	"github.com/Domenick1991/airline-backoffice/internal/service/tags"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatalw("connect postgres", "error", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	airlineRepo := repository.NewAirlineRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	airlineService := catalog.NewAirlineService(airlineRepo)
	airportService := catalog.NewAirportService(airportRepo)
	tagService := tags.NewTagService(tagRepo)
	passengerService := passengers.NewPassengerService(passengerRepo)
	flightService := flights.NewFlightService(flightRepo, airlineRepo, airportRepo, redisCache, logger)
	inventoryService := inventory.NewInventoryService(inventoryRepo, flightRepo, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		passengerRepo,
		inventoryService,
		producer,
		cfg.Kafka.BookingEventsTopic,
		logger,
	)

	reg := metrics.NewRegistry()
	handlers := bootstrap.Handlers{
		Airlines:    api.NewAirlineHandler(airlineService),
		Airports:    api.NewAirportHandler(airportService),
		Flights:     api.NewFlightHandler(flightService),
		Tags:        api.NewTagHandler(tagService),
		Passengers:  api.NewPassengerHandler(passengerService),
		Bookings:    api.NewBookingHandler(bookingService, reg),
		Inventories: api.NewInventoryHandler(inventoryService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers, reg); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}
