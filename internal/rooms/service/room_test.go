package service

import (
	"context"
	"errors"
	"fmt"
	roomserrors "innkeep/internal/rooms/errors"
	"innkeep/internal/rooms/validator"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"io"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const roomID = "507f1f77bcf86cd799439012"

type mockRoomRepository struct {
	mu        sync.Mutex
	rooms     map[string]*model.Room
	createErr error
	countErr  error
	nextID    int
	deleted   []string
}

func newMockRoomRepository(rooms ...*model.Room) *mockRoomRepository {
	m := &mockRoomRepository{rooms: map[string]*model.Room{}}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *mockRoomRepository) Create(_ context.Context, room *model.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	room.ID = fmt.Sprintf("%024x", m.nextID)
	stored := *room
	m.rooms[room.ID] = &stored
	return nil
}

func (m *mockRoomRepository) FindByID(_ context.Context, id string) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, roomserrors.ErrInvalidID
	}
	room, ok := m.rooms[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (m *mockRoomRepository) FindAll(_ context.Context, limit int, offset int64) ([]*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Room{}
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRoomRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.rooms)), nil
}

func (m *mockRoomRepository) Update(_ context.Context, id string, room *model.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rooms[id]
	if !ok {
		return roomserrors.ErrNotFound
	}
	existing.Number, existing.Type, existing.Price = room.Number, room.Type, room.Price
	return nil
}

func (m *mockRoomRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return roomserrors.ErrNotFound
	}
	delete(m.rooms, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRoomRepository) ExistsByNumber(_ context.Context, number string, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		if r.Number == number && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockReferences struct {
	referenced bool
	err        error
}

func (m *mockReferences) ExistsByRoomID(context.Context, string) (bool, error) {
	return m.referenced, m.err
}

func newTestService(repo *mockRoomRepository, refs *mockReferences) RoomService {
	cfg := &config.Config{Log: logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})}
	return NewRoomService(repo, refs, validator.NewRoomValidator(), cfg)
}

func decimal(s string) *primitive.Decimal128 {
	d, err := primitive.ParseDecimal128(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func existingRoom() *model.Room {
	return &model.Room{ID: roomID, Number: "101", Type: model.RoomTypeDouble, Price: decimal("100")}
}

func TestCreate(t *testing.T) {
	repo := newMockRoomRepository()
	svc := newTestService(repo, &mockReferences{})

	room := &model.Room{Number: "  12 b ", Type: model.RoomTypeSuite, Price: decimal("250.00")}
	if err := svc.Create(context.Background(), room); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if room.ID == "" {
		t.Error("expected id to be assigned")
	}
	if room.Number != "12B" {
		t.Errorf("number = %q, want normalized 12B", room.Number)
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		room      *model.Room
		createErr error
		wantCode  string
	}{
		{"nil room", nil, nil, apperrors.CodeBusinessRule},
		{"missing number", &model.Room{Type: model.RoomTypeSuite, Price: decimal("1")}, nil, apperrors.CodeBusinessRule},
		{"duplicate number", &model.Room{Number: "101", Type: model.RoomTypeSuite, Price: decimal("1")}, nil, apperrors.CodeBusinessRule},
		{"duplicate key from index", &model.Room{Number: "909", Type: model.RoomTypeSuite, Price: decimal("1")}, roomserrors.ErrDuplicateNumber, apperrors.CodeBusinessRule},
		{"storage failure", &model.Room{Number: "909", Type: model.RoomTypeSuite, Price: decimal("1")}, errors.New("disk full"), apperrors.CodeInternal},
		{"negative price", &model.Room{Number: "909", Type: model.RoomTypeSuite, Price: decimal("-5")}, nil, apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRoomRepository(existingRoom())
			repo.createErr = tt.createErr
			svc := newTestService(repo, &mockReferences{})

			err := svc.Create(context.Background(), tt.room)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("Create() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	svc := newTestService(newMockRoomRepository(existingRoom()), &mockReferences{})

	room, err := svc.GetByID(context.Background(), roomID)
	if err != nil || room.Number != "101" {
		t.Fatalf("GetByID() = %v, %v", room, err)
	}

	tests := []struct {
		name     string
		id       string
		wantCode string
	}{
		{"unknown id", "507f1f77bcf86cd799439099", apperrors.CodeNotFound},
		{"malformed id", "not-an-id", apperrors.CodeInvalidInput},
		{"empty id", "", apperrors.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(context.Background(), tt.id)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("GetByID(%q) error = %v, want %s", tt.id, err, tt.wantCode)
			}
		})
	}
}

func TestGetAll(t *testing.T) {
	repo := newMockRoomRepository(existingRoom())
	svc := newTestService(repo, &mockReferences{})

	rooms, total, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if total != 1 || len(rooms) != 1 {
		t.Errorf("got %d rooms, total %d", len(rooms), total)
	}

	repo.countErr = errors.New("timeout")
	if _, _, err := svc.GetAll(context.Background(), 10, 0); !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("GetAll() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestUpdate(t *testing.T) {
	const otherID = "507f1f77bcf86cd799439013"

	tests := []struct {
		name     string
		id       string
		room     *model.Room
		wantCode string
	}{
		{"overwrites fields", roomID, &model.Room{ID: roomID, Number: "101", Type: model.RoomTypeKing, Price: decimal("180")}, ""},
		{"renames to free number", roomID, &model.Room{ID: roomID, Number: "303", Type: model.RoomTypeKing, Price: decimal("180")}, ""},
		{"id mismatch", roomID, &model.Room{ID: otherID, Number: "101", Type: model.RoomTypeKing, Price: decimal("1")}, apperrors.CodeBusinessRule},
		{"missing body id", roomID, &model.Room{Number: "101", Type: model.RoomTypeKing, Price: decimal("1")}, apperrors.CodeBusinessRule},
		{"number taken by other room", roomID, &model.Room{ID: roomID, Number: "202", Type: model.RoomTypeKing, Price: decimal("1")}, apperrors.CodeBusinessRule},
		{"unknown room", "507f1f77bcf86cd799439099", &model.Room{ID: "507f1f77bcf86cd799439099", Number: "1", Type: model.RoomTypeKing, Price: decimal("1")}, apperrors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := &model.Room{ID: otherID, Number: "202", Type: model.RoomTypeSingle, Price: decimal("50")}
			repo := newMockRoomRepository(existingRoom(), other)
			svc := newTestService(repo, &mockReferences{})

			err := svc.Update(context.Background(), tt.id, tt.room)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Update() error = %v", err)
				}
				stored := repo.rooms[roomID]
				if stored.Number != tt.room.Number || stored.Type != model.RoomTypeKing {
					t.Errorf("stored = %+v", stored)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("Update() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		refs     *mockReferences
		wantCode string
	}{
		{"deletes unreferenced room", roomID, &mockReferences{}, ""},
		{"referenced room", roomID, &mockReferences{referenced: true}, apperrors.CodeBusinessRule},
		{"unknown room", "507f1f77bcf86cd799439099", &mockReferences{}, apperrors.CodeNotFound},
		{"reference check failure", roomID, &mockReferences{err: errors.New("boom")}, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRoomRepository(existingRoom())
			svc := newTestService(repo, tt.refs)

			err := svc.Delete(context.Background(), tt.id)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Delete() error = %v", err)
				}
				if len(repo.deleted) != 1 {
					t.Error("expected the room to be deleted")
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("Delete() error = %v, want %s", err, tt.wantCode)
			}
			if len(repo.deleted) != 0 {
				t.Error("room must not be deleted on failure")
			}
		})
	}
}
