package crew

import (
	"time"

	"github.com/google/uuid"
)

// Crew represents a crew member assignable to flights
type Crew struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FirstName string    `json:"first_name" gorm:"not null;size:255"`
	LastName  string    `json:"last_name" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (m *Crew) FullName() string {
	return m.FirstName + " " + m.LastName
}

func (m *Crew) ToResponse() CrewResponse {
	return CrewResponse{
		ID:        m.ID.String(),
		FirstName: m.FirstName,
		LastName:  m.LastName,
		FullName:  m.FullName(),
		CreatedAt: m.CreatedAt,
	}
}

func (Crew) TableName() string {
	return "crew_members"
}
