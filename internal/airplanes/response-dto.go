package airplanes

import "time"

type AirplaneTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AirplaneResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Rows       int       `json:"rows"`
	SeatsInRow int       `json:"seats_in_row"`
	Capacity   int       `json:"capacity"`
	TypeID     string    `json:"type_id"`
	TypeName   string    `json:"type_name,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PaginatedAirplanes struct {
	Airplanes  []AirplaneResponse `json:"airplanes"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
