package airports

type CreateAirportRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=255"`
	ClosestBigCity string `json:"closest_big_city" binding:"required,min=2,max=255"`
	Code           string `json:"code" binding:"required,iata"`
}

type UpdateAirportRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=255"`
	ClosestBigCity *string `json:"closest_big_city" binding:"omitempty,min=2,max=255"`
	Code           *string `json:"code" binding:"omitempty,iata"`
}

type AirportListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Name      string `form:"name"`
	City      string `form:"city"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name code created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
