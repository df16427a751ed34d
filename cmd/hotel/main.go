package main

import (
	customershandler "innkeep/internal/customers/handler"
	customersrepo "innkeep/internal/customers/repository"
	customersservice "innkeep/internal/customers/service"
	customersvalidator "innkeep/internal/customers/validator"
	"innkeep/internal/reservations/events"
	reservationshandler "innkeep/internal/reservations/handler"
	reservationsrepo "innkeep/internal/reservations/repository"
	reservationsservice "innkeep/internal/reservations/service"
	reservationsvalidator "innkeep/internal/reservations/validator"
	roomshandler "innkeep/internal/rooms/handler"
	roomsrepo "innkeep/internal/rooms/repository"
	roomsservice "innkeep/internal/rooms/service"
	roomsvalidator "innkeep/internal/rooms/validator"
	"innkeep/pkg/app"
	"innkeep/pkg/clock"
	"innkeep/pkg/config"
	"innkeep/pkg/kafka"
	kafka_config "innkeep/pkg/kafka/config"
	kafka_middleware "innkeep/pkg/kafka/middleware"
)

const ServiceName = "hotel"

type services struct {
	rooms        roomsservice.RoomService
	customers    customersservice.CustomerService
	reservations reservationsservice.ReservationService
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Hotel service")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	svc := initServices(cfg, publisher)

	serverApp.SetApp(
		roomshandler.NewRoomHandler(svc.rooms, cfg.Log),
		customershandler.NewCustomerHandler(svc.customers, cfg.Log),
		reservationshandler.NewReservationHandler(svc.reservations, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) services {
	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg)
	lockRepo := reservationsrepo.NewReservationLockRepository(cfg)

	roomService := roomsservice.NewRoomService(
		roomsrepo.NewMongoRoomRepository(cfg),
		reservationRepo,
		roomsvalidator.NewRoomValidator(),
		cfg,
	)

	systemClock := clock.System()
	customerService := customersservice.NewCustomerService(
		customersrepo.NewMongoCustomerRepository(cfg),
		reservationRepo,
		customersvalidator.NewCustomerValidator(),
		systemClock,
		cfg,
	)

	reservationService := reservationsservice.NewReservationService(
		reservationRepo,
		lockRepo,
		roomService,
		customerService,
		reservationsvalidator.NewReservationValidator(),
		publisher,
		systemClock,
		cfg,
	)

	cfg.Log.Info("Hotel services initialized", "database", cfg.MongoDatabaseName, "timezone", cfg.HotelTimezone)
	return services{
		rooms:        roomService,
		customers:    customerService,
		reservations: reservationService,
	}
}

// initPublisher returns a Kafka backed publisher when KAFKA_ENABLED is set
// and a no-op publisher otherwise.
func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, reservation events are not published")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationEventsTopic, cfg.ReservationEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown("kafka-producer", producer)

	return events.NewKafkaPublisher(producer, ServiceName)
}
