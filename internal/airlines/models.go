package airlines

import (
	"time"

	"github.com/google/uuid"
)

// Airline represents a carrier operating flights
type Airline struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null;size:3"` // IATA code
	Country   string    `json:"country" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (a *Airline) ToResponse() AirlineResponse {
	return AirlineResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Code:      a.Code,
		Country:   a.Country,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (Airline) TableName() string {
	return "airlines"
}
