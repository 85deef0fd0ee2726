package airplanes

type CreateAirplaneTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type UpdateAirplaneTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type CreateAirplaneRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=255"`
	Rows       int    `json:"rows" binding:"required,min=1,max=200"`
	SeatsInRow int    `json:"seats_in_row" binding:"required,min=1,max=26"`
	TypeID     string `json:"type_id" binding:"required,uuid"`
}

type UpdateAirplaneRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Rows       *int    `json:"rows,omitempty" binding:"omitempty,min=1,max=200"`
	SeatsInRow *int    `json:"seats_in_row,omitempty" binding:"omitempty,min=1,max=26"`
	TypeID     *string `json:"type_id,omitempty" binding:"omitempty,uuid"`
}

type AirplaneListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Name   string `form:"name" binding:"omitempty,max=255"`
	TypeID string `form:"type_id" binding:"omitempty,uuid"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name created_at rows"`
}
