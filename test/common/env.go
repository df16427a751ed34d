package common

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"innkeep/pkg/client"
)

const (
	DefaultMongoURI           = "mongodb://localhost:27017"
	DefaultDatabaseName       = "hotel_test"
	ConnectionTimeout         = 10 * time.Second
	DefaultHealthCheckTimeout = 30 * time.Second
)

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
}

func NewTestEnv() *TestEnv {
	serverPort := getEnv("TEST_SERVER_PORT", "8080")
	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort)),
	}
}

// Clients groups the API clients used by the integration suites.
type Clients struct {
	Rooms        *client.RoomClient
	Customers    *client.CustomerClient
	Reservations *client.ReservationClient
}

// Setup waits for the server, wipes the test database and registers the
// cleanup that wipes it again.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Clients) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultHealthCheckTimeout)
	defer cancel()
	if err := client.NewHttpClient(e.ServerURL).WaitForHealthy(ctx, DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server at %s is not healthy: %v", e.ServerURL, err)
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)
	t.Cleanup(func() {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	})

	return mongo, &Clients{
		Rooms:        client.NewRoomClient(e.ServerURL),
		Customers:    client.NewCustomerClient(e.ServerURL),
		Reservations: client.NewReservationClient(e.ServerURL),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
