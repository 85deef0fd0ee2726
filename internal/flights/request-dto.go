package flights

import "time"

type CreateFlightRequest struct {
	RouteID       string    `json:"route_id" binding:"required,uuid"`
	AirplaneID    string    `json:"airplane_id" binding:"required,uuid"`
	AirlineID     string    `json:"airline_id" binding:"required,uuid"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	CrewIDs       []string  `json:"crew_ids" binding:"omitempty,dive,uuid"`
}

type UpdateFlightRequest struct {
	RouteID       *string    `json:"route_id,omitempty" binding:"omitempty,uuid"`
	AirplaneID    *string    `json:"airplane_id,omitempty" binding:"omitempty,uuid"`
	AirlineID     *string    `json:"airline_id,omitempty" binding:"omitempty,uuid"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`
	CrewIDs       *[]string  `json:"crew_ids,omitempty" binding:"omitempty,dive,uuid"`
}

// FlightListQuery filters flights by route endpoints (airport name or
// city substring), a single departure date or a from/to range, and
// airline. Filters combine conjunctively.
type FlightListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Source        string `form:"source" binding:"omitempty,max=255"`
	Destination   string `form:"destination" binding:"omitempty,max=255"`
	DepartureDate string `form:"departure_date" binding:"omitempty,datetime=2006-01-02"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	AirlineID     string `form:"airline_id" binding:"omitempty,uuid"`
}
