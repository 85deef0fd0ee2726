package orders

import "time"

// TicketFlight is the flight summary nested in ticket responses.
type TicketFlight struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	SourceCode      string    `json:"source_code"`
	Destination     string    `json:"destination"`
	DestinationCode string    `json:"destination_code"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
}

type TicketResponse struct {
	ID     string       `json:"id"`
	Row    int          `json:"row"`
	Seat   int          `json:"seat"`
	Flight TicketFlight `json:"flight"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

type PaginatedOrders struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
