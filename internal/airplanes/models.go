package airplanes

import (
	"time"

	"github.com/google/uuid"
)

// AirplaneType groups airplanes of the same model family
type AirplaneType struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (AirplaneType) TableName() string {
	return "airplane_types"
}

// Airplane represents one aircraft. Rows and SeatsInRow define the seat
// grid every flight on this airplane sells tickets against; rows and
// seats within a row are numbered starting at 1.
type Airplane struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name       string        `json:"name" gorm:"not null;size:255"`
	Rows       int           `json:"rows" gorm:"not null;check:rows > 0"`
	SeatsInRow int           `json:"seats_in_row" gorm:"not null;check:seats_in_row > 0"`
	TypeID     uuid.UUID     `json:"type_id" gorm:"type:uuid;not null;index"`
	Type       *AirplaneType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
	ImagePath  string        `json:"-" gorm:"size:512"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// Capacity returns the total number of seats on the airplane.
func (a *Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a *Airplane) ToResponse() AirplaneResponse {
	resp := AirplaneResponse{
		ID:         a.ID.String(),
		Name:       a.Name,
		Rows:       a.Rows,
		SeatsInRow: a.SeatsInRow,
		Capacity:   a.Capacity(),
		TypeID:     a.TypeID.String(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.Type != nil {
		resp.TypeName = a.Type.Name
	}
	if a.ImagePath != "" {
		resp.ImageURL = "/uploads/" + a.ImagePath
	}
	return resp
}

func (Airplane) TableName() string {
	return "airplanes"
}
