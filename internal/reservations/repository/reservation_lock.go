package repository

import (
	"context"
	"fmt"
	reservationserrors "innkeep/internal/reservations/errors"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	"innkeep/pkg/model"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Reservation_locks"

// ReservationLockRepository manages the per-room advisory locks that
// serialize overlap checks for the same room.
type ReservationLockRepository interface {
	Acquire(ctx context.Context, roomID string, ttl time.Duration) (*model.ReservationLock, error)
	Release(ctx context.Context, lock *model.ReservationLock) error
}

type mongoReservationLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewReservationLockRepository(cfg *config.Config) ReservationLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Acquire returns ErrLockHeld when a lock document for the room already exists.
func (r *mongoReservationLockRepository) Acquire(ctx context.Context, roomID string, ttl time.Duration) (*model.ReservationLock, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := &model.ReservationLock{
		ID:        model.RoomLockID(roomID),
		Owner:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return nil, reservationserrors.ErrLockHeld
		}
		return nil, fmt.Errorf("failed to acquire reservation lock: %w", err)
	}

	return lock, nil
}

// Release deletes the lock only while it is still owned by the caller. A lock
// that expired and was taken over by another request is left alone.
func (r *mongoReservationLockRepository) Release(ctx context.Context, lock *model.ReservationLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, releaseFilter(lock)); err != nil {
		return fmt.Errorf("failed to release reservation lock: %w", err)
	}
	return nil
}

func releaseFilter(lock *model.ReservationLock) bson.M {
	return bson.M{"_id": lock.ID, "owner": lock.Owner}
}
