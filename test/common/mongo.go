package common

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	customersrepo "innkeep/internal/customers/repository"
	reservationsrepo "innkeep/internal/reservations/repository"
	roomsrepo "innkeep/internal/rooms/repository"
)

var collections = []string{
	roomsrepo.CollectionName,
	customersrepo.CollectionName,
	reservationsrepo.CollectionName,
	reservationsrepo.LockCollectionName,
}

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   mongoClient,
		Database: mongoClient.Database(dbName),
	}
}

// CleanDatabase empties the hotel collections, keeping their indexes and validators.
func (h *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	for _, name := range collections {
		if _, err := h.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to clean %s: %v", name, err)
		}
	}
}

// SetReservationStatus forces a stored status, standing in for time passing.
func (h *MongoHelper) SetReservationStatus(t *testing.T, id, status string) {
	t.Helper()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		t.Fatalf("invalid reservation id %q: %v", id, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	_, err = h.Database.Collection(reservationsrepo.CollectionName).
		UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		t.Fatalf("failed to update reservation %s: %v", id, err)
	}
}

func (h *MongoHelper) Close(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if err := h.Client.Disconnect(ctx); err != nil {
		t.Logf("failed to disconnect from MongoDB: %v", err)
	}
}
