package flights

import (
	"time"

	"skyport/internal/crew"
	"skyport/internal/seatledger"
)

type FlightAirport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

type FlightAirline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// FlightResponse is the list item shape. TicketsAvailable is the seat
// capacity minus sold tickets, never below zero.
type FlightResponse struct {
	ID               string        `json:"id"`
	RouteID          string        `json:"route_id"`
	Source           FlightAirport `json:"source"`
	Destination      FlightAirport `json:"destination"`
	Airline          FlightAirline `json:"airline"`
	AirplaneID       string        `json:"airplane_id"`
	AirplaneName     string        `json:"airplane_name"`
	Capacity         int           `json:"capacity"`
	TicketsAvailable int           `json:"tickets_available"`
	DepartureTime    time.Time     `json:"departure_time"`
	ArrivalTime      time.Time     `json:"arrival_time"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// FlightDetailResponse adds the crew roster and the exact taken seats.
type FlightDetailResponse struct {
	FlightResponse
	Crew       []crew.CrewResponse `json:"crew"`
	TakenSeats []seatledger.Seat   `json:"taken_seats"`
}

type PaginatedFlights struct {
	Flights    []FlightResponse `json:"flights"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}
