package routes

type CreateRouteRequest struct {
	SourceID      string `json:"source_id" binding:"required,uuid"`
	DestinationID string `json:"destination_id" binding:"required,uuid"`
	Distance      int    `json:"distance" binding:"required,min=1"`
}

type UpdateRouteRequest struct {
	SourceID      *string `json:"source_id,omitempty" binding:"omitempty,uuid"`
	DestinationID *string `json:"destination_id,omitempty" binding:"omitempty,uuid"`
	Distance      *int    `json:"distance,omitempty" binding:"omitempty,min=1"`
}

type RouteListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Source      string `form:"source" binding:"omitempty,max=255"`
	Destination string `form:"destination" binding:"omitempty,max=255"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=distance created_at"`
}
