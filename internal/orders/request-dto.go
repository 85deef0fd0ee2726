package orders

// TicketRequest identifies one seat on one flight. Row and seat are
// not range-checked here; the seat ledger validates them against the
// airplane layout and reports the exact offending seat.
type TicketRequest struct {
	FlightID string `json:"flight_id" binding:"required,uuid"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" binding:"omitempty,dive"`
}

type OrderListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	CreatedAt string `form:"created_at" binding:"omitempty,datetime=2006-01-02"`
}
