package routes

import "time"

// RouteAirport is the slim airport view embedded in route responses.
type RouteAirport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

type RouteResponse struct {
	ID          string       `json:"id"`
	Source      RouteAirport `json:"source"`
	Destination RouteAirport `json:"destination"`
	Distance    int          `json:"distance"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type PaginatedRoutes struct {
	Routes     []RouteResponse `json:"routes"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
