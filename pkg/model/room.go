package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomType string

const (
	RoomTypeSingle       RoomType = "SINGLE"
	RoomTypeDouble       RoomType = "DOUBLE"
	RoomTypeTwin         RoomType = "TWIN"
	RoomTypeTriple       RoomType = "TRIPLE"
	RoomTypeQuad         RoomType = "QUAD"
	RoomTypeQueen        RoomType = "QUEEN"
	RoomTypeKing         RoomType = "KING"
	RoomTypeStudio       RoomType = "STUDIO"
	RoomTypeSuite        RoomType = "SUITE"
	RoomTypeJuniorSuite  RoomType = "JUNIOR_SUITE"
	RoomTypeFamily       RoomType = "FAMILY"
	RoomTypeConnecting   RoomType = "CONNECTING"
	RoomTypeAccessible   RoomType = "ACCESSIBLE"
	RoomTypeDeluxe       RoomType = "DELUXE"
	RoomTypeExecutive    RoomType = "EXECUTIVE"
	RoomTypePresidential RoomType = "PRESIDENTIAL"
)

var RoomTypes = []RoomType{
	RoomTypeSingle, RoomTypeDouble, RoomTypeTwin, RoomTypeTriple,
	RoomTypeQuad, RoomTypeQueen, RoomTypeKing, RoomTypeStudio,
	RoomTypeSuite, RoomTypeJuniorSuite, RoomTypeFamily, RoomTypeConnecting,
	RoomTypeAccessible, RoomTypeDeluxe, RoomTypeExecutive, RoomTypePresidential,
}

func (t RoomType) IsValid() bool {
	for _, known := range RoomTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Room prices travel as JSON strings ("129.90") and are stored as Decimal128.
type Room struct {
	ID        string                `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Number    string                `json:"number" bson:"number" validate:"required,max=20"`
	Type      RoomType              `json:"type" bson:"type" validate:"required,room_type"`
	Price     *primitive.Decimal128 `json:"price" bson:"price" validate:"required"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
}

// IsNonNegativeDecimal reports whether d is a finite decimal >= 0.
func IsNonNegativeDecimal(d primitive.Decimal128) bool {
	if d.IsNaN() || d.IsInf() != 0 {
		return false
	}
	coefficient, _, err := d.BigInt()
	if err != nil {
		return false
	}
	return coefficient.Sign() >= 0
}
