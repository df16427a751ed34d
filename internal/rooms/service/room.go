package service

import (
	"context"
	"errors"
	"fmt"
	roomserrors "innkeep/internal/rooms/errors"
	"innkeep/internal/rooms/repository"
	"innkeep/internal/rooms/validator"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, id string, room *model.Room) error
	Delete(ctx context.Context, id string) error
}

// ReservationReferenceChecker reports whether any reservation still points at a room.
type ReservationReferenceChecker interface {
	ExistsByRoomID(ctx context.Context, roomID string) (bool, error)
}

type roomService struct {
	repo         repository.RoomRepository
	reservations ReservationReferenceChecker
	validator    *validator.RoomValidator
	cfg          *config.Config
	log          *logger.Logger
}

func NewRoomService(
	repo repository.RoomRepository,
	reservations ReservationReferenceChecker,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:         repo,
		reservations: reservations,
		validator:    validator,
		cfg:          cfg,
		log:          cfg.Log.Component("rooms.service"),
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	s.sanitize(room)

	if err := s.validator.Validate(room); err != nil {
		s.log.Warn("Room validation failed", "error", err)
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyUniqueNumber(sessCtx, room.Number, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, room); err != nil {
			return s.translateWriteError(err, room.Number, "Failed to create room")
		}
		return nil
	})
	if err != nil {
		s.logFailure("Failed to create room", err, "number", room.Number)
		return err
	}

	s.log.Info("Room created successfully", "id", room.ID, "number", room.Number, "type", room.Type)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id, "Failed to retrieve room")
	}
	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.log.Error("Failed to list rooms", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

// Update replaces number, type and price of the room with id. The payload
// must carry the same id as the path.
func (s *roomService) Update(ctx context.Context, id string, room *model.Room) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}
	if room != nil && room.ID != id {
		return apperrors.BusinessRule("Room ID in path does not match ID in body").WithDetails(map[string]any{
			"path_id": id,
			"body_id": room.ID,
		})
	}

	s.sanitize(room)
	if err := s.validator.Validate(room); err != nil {
		s.log.Warn("Room validation failed", "id", id, "error", err)
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.repo.FindByID(sessCtx, id); err != nil {
			return s.translateLookupError(err, id, "Failed to check room existence")
		}
		if err := s.verifyUniqueNumber(sessCtx, room.Number, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, room); err != nil {
			if errors.Is(err, roomserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Room", id)
			}
			return s.translateWriteError(err, room.Number, "Failed to update room")
		}
		return nil
	})
	if err != nil {
		s.logFailure("Failed to update room", err, "id", id)
		return err
	}

	room.ID = id
	s.log.Info("Room updated successfully", "id", id, "number", room.Number)
	return nil
}

// Delete refuses to remove a room that reservations still reference.
func (s *roomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.reservations.ExistsByRoomID(ctx, id)
	if err != nil {
		s.log.Error("Failed to check room references", "id", id, "error", err)
		return apperrors.Internal("Failed to check room references", err)
	}
	if referenced {
		s.log.Warn("Refusing to delete room with reservations", "id", id)
		return apperrors.BusinessRule("Room is referenced by reservations and cannot be deleted").
			WithDetails(map[string]any{"id": id})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateLookupError(err, id, "Failed to delete room")
	}

	s.log.Info("Room deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *roomService) sanitize(room *model.Room) {
	if room == nil {
		return
	}
	room.Number = sanitizer.NormalizeRoomNumber(room.Number)
}

func (s *roomService) verifyUniqueNumber(ctx context.Context, number, excludeID string) error {
	exists, err := s.repo.ExistsByNumber(ctx, number, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check room number", err)
	}
	if exists {
		return duplicateNumber(number)
	}
	return nil
}

func (s *roomService) translateLookupError(err error, id, message string) error {
	switch {
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Room", id)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID format")
	default:
		s.log.Error(message, "id", id, "error", err)
		return apperrors.Internal(message, err)
	}
}

func (s *roomService) translateWriteError(err error, number, message string) error {
	if errors.Is(err, roomserrors.ErrDuplicateNumber) {
		return duplicateNumber(number)
	}
	return apperrors.Internal(message, err)
}

func (s *roomService) logFailure(message string, err error, args ...any) {
	args = append(args, "error", err)
	if apperrors.HasCode(err, apperrors.CodeInternal) || !apperrors.IsAppError(err) {
		s.log.Error(message, args...)
		return
	}
	s.log.Warn(message, args...)
}

func duplicateNumber(number string) error {
	return apperrors.BusinessRule(fmt.Sprintf("Room number %s already exists", number)).
		WithDetails(map[string]any{"field": "number", "number": number})
}
