package crew

type CreateCrewRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=255"`
	LastName  string `json:"last_name" binding:"required,min=1,max=255"`
}

type UpdateCrewRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=255"`
}

type CrewListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}
