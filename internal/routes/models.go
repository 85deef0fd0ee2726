package routes

import (
	"time"

	"github.com/google/uuid"
)

// Route connects a source airport to a destination airport. The same
// pair may only exist once; the reverse direction is a separate route.
type Route struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SourceID      uuid.UUID `json:"source_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_routes_source_destination"`
	DestinationID uuid.UUID `json:"destination_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_routes_source_destination"`
	Distance      int       `json:"distance" gorm:"not null;check:distance > 0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Route) TableName() string {
	return "routes"
}
