package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotel"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
	DefaultPageSize        = 10

	DefaultHotelTimezone      = "UTC"
	DefaultPhoneRegions       = "US"
	DefaultReservationLockTTL = 10 * time.Second

	DefaultRedisDB = 0

	DefaultReservationEventsTopic    = "hotel.reservations"
	DefaultReservationEventsDLQTopic = "hotel.reservations.dlq"

	DefaultDotEnvFile = ".env"
)
