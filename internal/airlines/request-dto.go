package airlines

type CreateAirlineRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Code    string `json:"code" binding:"required,iata"`
	Country string `json:"country" binding:"omitempty,max=100"`
}

type UpdateAirlineRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Code    *string `json:"code" binding:"omitempty,iata"`
	Country *string `json:"country" binding:"omitempty,max=100"`
}

type AirlineListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Name      string `form:"name"`
	Country   string `form:"country"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name code created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
