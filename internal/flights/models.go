package flights

import (
	"time"

	"github.com/google/uuid"

	"skyport/internal/crew"
)

// Flight is a scheduled trip of one airplane over one route. Tickets
// reference flights by ID; the seat grid comes from the airplane.
type Flight struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RouteID       uuid.UUID   `json:"route_id" gorm:"type:uuid;not null;index"`
	AirplaneID    uuid.UUID   `json:"airplane_id" gorm:"type:uuid;not null;index"`
	AirlineID     uuid.UUID   `json:"airline_id" gorm:"type:uuid;not null;index"`
	DepartureTime time.Time   `json:"departure_time" gorm:"not null;index"`
	ArrivalTime   time.Time   `json:"arrival_time" gorm:"not null"`
	Crew          []crew.Crew `json:"-" gorm:"many2many:flight_crew;constraint:OnDelete:CASCADE;"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Flight) TableName() string {
	return "flights"
}
