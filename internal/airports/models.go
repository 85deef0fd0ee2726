package airports

import (
	"time"

	"github.com/google/uuid"
)

// Airport represents an airport served by the system
type Airport struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string    `json:"name" gorm:"not null;size:255"`
	ClosestBigCity string    `json:"closest_big_city" gorm:"not null;size:255"`
	Code           string    `json:"code" gorm:"uniqueIndex;not null;size:3"` // IATA code
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (a *Airport) ToResponse() AirportResponse {
	return AirportResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		ClosestBigCity: a.ClosestBigCity,
		Code:           a.Code,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
