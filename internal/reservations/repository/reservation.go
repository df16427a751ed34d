package repository

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "innkeep/internal/reservations/errors"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	"innkeep/pkg/model"
	"time"

	"cloud.google.com/go/civil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Reservations"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error
	FindOverlapping(ctx context.Context, roomID string, statuses []model.ReservationStatus, checkin, checkout civil.Date) ([]*model.Reservation, error)
	FindByCheckinBetween(ctx context.Context, start, end civil.Date) ([]*model.Reservation, error)
	FindByStatus(ctx context.Context, status model.ReservationStatus) ([]*model.Reservation, error)
	ExistsByRoomID(ctx context.Context, roomID string) (bool, error)
	ExistsByCustomerID(ctx context.Context, customerID string) (bool, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

// reservationDocument is the stored shape; calendar dates are BSON dates at midnight UTC.
type reservationDocument struct {
	ID         primitive.ObjectID      `bson:"_id,omitempty"`
	CustomerID string                  `bson:"customer_id"`
	RoomID     string                  `bson:"room_id"`
	RoomNumber string                  `bson:"room_number"`
	Checkin    time.Time               `bson:"checkin"`
	Checkout   time.Time               `bson:"checkout"`
	Status     model.ReservationStatus `bson:"status"`
	CreatedAt  time.Time               `bson:"created_at"`
}

func toDocument(r *model.Reservation) reservationDocument {
	doc := reservationDocument{
		CustomerID: r.CustomerID,
		RoomID:     r.RoomID,
		RoomNumber: r.RoomNumber,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
	if r.Checkin != nil {
		doc.Checkin = mongotx.DateToTime(*r.Checkin)
	}
	if r.Checkout != nil {
		doc.Checkout = mongotx.DateToTime(*r.Checkout)
	}
	return doc
}

func (d reservationDocument) toModel() *model.Reservation {
	checkin := mongotx.TimeToDate(d.Checkin)
	checkout := mongotx.TimeToDate(d.Checkout)
	return &model.Reservation{
		ID:         d.ID.Hex(),
		CustomerID: d.CustomerID,
		RoomID:     d.RoomID,
		RoomNumber: d.RoomNumber,
		Checkin:    &checkin,
		Checkout:   &checkout,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, toDocument(reservation))
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := mongotx.ObjectID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	var doc reservationDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "checkin", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoReservationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := mongotx.ObjectID(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if result.MatchedCount == 0 {
		return reservationserrors.ErrNotFound
	}
	return nil
}

// FindOverlapping returns reservations for roomID in one of statuses whose
// stay shares at least one night with [checkin, checkout).
func (r *mongoReservationRepository) FindOverlapping(
	ctx context.Context,
	roomID string,
	statuses []model.ReservationStatus,
	checkin, checkout civil.Date,
) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := overlapFilter(roomID, statuses, checkin, checkout)
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "checkin", Value: 1}}))
}

// overlapFilter matches on room_id. room_number is a display copy taken at
// booking time and goes stale when a room is renumbered.
func overlapFilter(roomID string, statuses []model.ReservationStatus, checkin, checkout civil.Date) bson.M {
	return bson.M{
		"room_id":  roomID,
		"status":   bson.M{"$in": statuses},
		"checkout": bson.M{"$gt": mongotx.DateToTime(checkin)},
		"checkin":  bson.M{"$lt": mongotx.DateToTime(checkout)},
	}
}

// FindByCheckinBetween is inclusive on both ends.
func (r *mongoReservationRepository) FindByCheckinBetween(ctx context.Context, start, end civil.Date) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"checkin": bson.M{
			"$gte": mongotx.DateToTime(start),
			"$lte": mongotx.DateToTime(end),
		},
	}

	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "checkin", Value: 1}, {Key: "_id", Value: 1}}))
}

func (r *mongoReservationRepository) FindByStatus(ctx context.Context, status model.ReservationStatus) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"status": status}, options.Find().SetSort(bson.D{{Key: "checkin", Value: 1}, {Key: "_id", Value: 1}}))
}

func (r *mongoReservationRepository) ExistsByRoomID(ctx context.Context, roomID string) (bool, error) {
	return r.exists(ctx, bson.M{"room_id": roomID})
}

func (r *mongoReservationRepository) ExistsByCustomerID(ctx context.Context, customerID string) (bool, error) {
	return r.exists(ctx, bson.M{"customer_id": customerID})
}

func (r *mongoReservationRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check reservation references: %w", err)
	}
	return count > 0, nil
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Reservation, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	reservations := make([]*model.Reservation, 0, len(docs))
	for _, doc := range docs {
		reservations = append(reservations, doc.toModel())
	}
	return reservations, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
