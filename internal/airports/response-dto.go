package airports

import "time"

type AirportResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ClosestBigCity string    `json:"closest_big_city"`
	Code           string    `json:"code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PaginatedAirports struct {
	Airports   []AirportResponse `json:"airports"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
