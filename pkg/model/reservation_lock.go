package model

import "time"

const reservationLockPrefix = "reservation_lock_room_"

// ReservationLock is an advisory lock document held while a reservation for
// one room is checked for overlaps and inserted. Expired locks are reaped by
// a TTL index on expires_at. Owner is a per-acquisition token; only the
// holder that wrote it can release the lock.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RoomLockID keys the lock on the room's id, which unlike its number never
// changes.
func RoomLockID(roomID string) string {
	return reservationLockPrefix + roomID
}
