package service

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "innkeep/internal/reservations/errors"
	"innkeep/internal/reservations/events"
	"innkeep/internal/reservations/repository"
	"innkeep/internal/reservations/validator"
	"innkeep/pkg/clock"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"sync"

	"cloud.google.com/go/civil"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationService interface {
	Open(ctx context.Context, candidate *model.Reservation) (*model.Reservation, error)
	Cancel(ctx context.Context, id string) (*model.Reservation, error)
	FindBetween(ctx context.Context, start, end civil.Date) ([]*model.Reservation, error)
	FindInUse(ctx context.Context) ([]*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
}

// RoomLookup and CustomerLookup resolve the references a reservation
// carries. Both return a NotFound AppError for unknown ids.
type RoomLookup interface {
	GetByID(ctx context.Context, id string) (*model.Room, error)
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	rooms     RoomLookup
	customers CustomerLookup
	validator *validator.ReservationValidator
	publisher events.Publisher
	clock     clock.Clock
	cfg       *config.Config
	log       *logger.Logger
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	rooms RoomLookup,
	customers CustomerLookup,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) ReservationService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if clk == nil {
		clk = clock.System()
	}
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		customers: customers,
		validator: validator,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
		log:       cfg.Log.Component("reservations.service"),
	}
}

// Open validates candidate, resolves its customer and room, and stores it
// with a derived status unless an occupying reservation already holds the
// room for any of the requested nights.
func (s *reservationService) Open(ctx context.Context, candidate *model.Reservation) (*model.Reservation, error) {
	if err := s.validator.Validate(candidate); err != nil {
		s.log.Warn("Reservation rejected", "error", err)
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, candidate.CustomerID); err != nil {
		s.log.Warn("Reservation customer lookup failed", "customer_id", candidate.CustomerID, "error", err)
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, candidate.RoomID)
	if err != nil {
		s.log.Warn("Reservation room lookup failed", "room_id", candidate.RoomID, "error", err)
		return nil, err
	}

	reservation := *candidate
	reservation.ID = ""
	reservation.RoomNumber = room.Number

	lock, err := s.acquireRoomLock(ctx, &reservation)
	if err != nil {
		return nil, err
	}
	defer s.releaseRoomLock(ctx, lock)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, &reservation); err != nil {
			return err
		}

		status, err := DeriveStatus(reservation.Status, *reservation.Checkin, *reservation.Checkout, s.today())
		if err != nil {
			return err
		}
		reservation.Status = status

		if err := s.repo.Create(sessCtx, &reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, mongotx.ErrTransactionConflict) {
			err = apperrors.RoomUnavailable(fmt.Sprintf("room %s is being booked concurrently, retry later", reservation.RoomNumber))
		} else if !apperrors.IsAppError(err) {
			err = apperrors.Internal("Failed to open reservation", err)
		}
		if apperrors.HasCode(err, apperrors.CodeInternal) {
			s.log.Error("Failed to open reservation", "room_id", reservation.RoomID, "error", err)
		} else {
			s.log.Warn("Reservation rejected", "room_id", reservation.RoomID, "error", err)
		}
		return nil, err
	}

	s.log.Info("Reservation opened",
		"id", reservation.ID,
		"room_id", reservation.RoomID,
		"room_number", reservation.RoomNumber,
		"checkin", reservation.Checkin.String(),
		"checkout", reservation.Checkout.String(),
		"status", reservation.Status,
	)
	s.publish(ctx, events.TypeOpened, &reservation)

	return &reservation, nil
}

// Cancel is idempotent for reservations that are already canceled. Any other
// status, FINISHED included, is overwritten.
func (s *reservationService) Cancel(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == model.StatusCanceled {
		s.log.Debug("Reservation already canceled", "id", id)
		return reservation, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCanceled); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		s.log.Error("Failed to cancel reservation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel reservation", err)
	}
	reservation.Status = model.StatusCanceled

	s.log.Info("Reservation canceled", "id", id, "room_number", reservation.RoomNumber)
	s.publish(ctx, events.TypeCanceled, reservation)

	return reservation, nil
}

// FindBetween returns reservations whose checkin falls in [start, end].
func (s *reservationService) FindBetween(ctx context.Context, start, end civil.Date) ([]*model.Reservation, error) {
	reservations, err := s.repo.FindByCheckinBetween(ctx, start, end)
	if err != nil {
		s.log.Error("Failed to find reservations by date range",
			"start", start.String(),
			"end", end.String(),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to find reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) FindInUse(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.repo.FindByStatus(ctx, model.StatusInUse)
	if err != nil {
		s.log.Error("Failed to find in-use reservations", "error", err)
		return nil, apperrors.Internal("Failed to find reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

// --- Helpers ---

func (s *reservationService) today() civil.Date {
	return clock.Today(s.clock, s.cfg.Location)
}

// verifyAvailability re-checks the coarse storage filter with the exact
// overlap rule before declaring the room taken.
func (s *reservationService) verifyAvailability(ctx context.Context, r *model.Reservation) error {
	existing, err := s.repo.FindOverlapping(ctx, r.RoomID, model.OccupyingStatuses, *r.Checkin, *r.Checkout)
	if err != nil {
		return apperrors.Internal("Failed to check room availability", err)
	}

	for _, other := range existing {
		if other.RoomID != r.RoomID || !other.Status.IsOccupying() || !other.Overlaps(*r.Checkin, *r.Checkout) {
			continue
		}
		return apperrors.RoomUnavailable(fmt.Sprintf(
			"Room %s is already reserved from %s to %s",
			r.RoomNumber, other.Checkin.String(), other.Checkout.String(),
		)).WithDetails(map[string]any{
			"room_id":        r.RoomID,
			"room_number":    r.RoomNumber,
			"reservation_id": other.ID,
		})
	}
	return nil
}

// acquireRoomLock locks on the room id so a renumbered room keeps the same lock.
func (s *reservationService) acquireRoomLock(ctx context.Context, r *model.Reservation) (*model.ReservationLock, error) {
	lock, err := s.lockRepo.Acquire(ctx, r.RoomID, s.cfg.ReservationLockTTL)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrLockHeld) {
			s.log.Warn("Room is being reserved by another request", "room_id", r.RoomID)
			return nil, apperrors.RoomUnavailable(fmt.Sprintf(
				"Room %s is currently being reserved by another request, please try again", r.RoomNumber,
			)).WithDetails(map[string]any{"room_id": r.RoomID, "room_number": r.RoomNumber})
		}
		s.log.Error("Failed to acquire reservation lock", "room_id", r.RoomID, "error", err)
		return nil, apperrors.Internal("Failed to acquire reservation lock", err)
	}
	return lock, nil
}

// releaseRoomLock runs even when ctx is already canceled, otherwise the room
// stays blocked until the lock TTL expires.
func (s *reservationService) releaseRoomLock(ctx context.Context, lock *model.ReservationLock) {
	if err := s.lockRepo.Release(context.WithoutCancel(ctx), lock); err != nil {
		s.log.Warn("Failed to release reservation lock", "lock_id", lock.ID, "error", err)
	}
}

func (s *reservationService) publish(ctx context.Context, eventType string, r *model.Reservation) {
	var err error
	switch eventType {
	case events.TypeOpened:
		err = s.publisher.Opened(ctx, r)
	case events.TypeCanceled:
		err = s.publisher.Canceled(ctx, r)
	}
	if err != nil {
		s.log.Warn("Failed to publish reservation event", "event_type", eventType, "id", r.ID, "error", err)
	}
}
