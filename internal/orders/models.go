package orders

import (
	"time"

	"github.com/google/uuid"
)

// Order groups the tickets bought in one purchase. Tickets are only
// ever created through the seat ledger, which enforces seat validity
// and uniqueness per flight.
type Order struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Tickets   []Ticket  `json:"tickets,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}

// Ticket claims one physical seat on one flight. The (flight_id, row,
// seat) uniqueness lives in a dedicated index created at migration
// time; it is the last line of defense against double booking.
type Ticket struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FlightID  uuid.UUID `json:"flight_id" gorm:"type:uuid;not null"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null"`
	Row       int       `json:"row" gorm:"not null"`
	Seat      int       `json:"seat" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}
