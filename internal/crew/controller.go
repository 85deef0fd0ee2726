package crew

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/shared/utils/response"
)

type Controller interface {
	CreateCrew(c *gin.Context)
	GetCrew(c *gin.Context)
	GetAllCrew(c *gin.Context)
	UpdateCrew(c *gin.Context)
	DeleteCrew(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateCrew godoc
// @Summary Create a crew member
// @Tags crew
// @Accept json
// @Produce json
// @Param request body CreateCrewRequest true "Crew payload"
// @Success 201 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /crew [post]
func (ctrl *controller) CreateCrew(c *gin.Context) {
	var req CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	member, err := ctrl.service.CreateCrew(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create crew member", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Crew member created successfully", member, nil)
}

// GetCrew godoc
// @Summary Get a crew member by ID
// @Tags crew
// @Produce json
// @Param id path string true "Crew member ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /crew/{id} [get]
func (ctrl *controller) GetCrew(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid crew member ID", nil, err.Error())
		return
	}

	member, err := ctrl.service.GetCrewByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCrewNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get crew member", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Crew member retrieved successfully", member, nil)
}

// GetAllCrew godoc
// @Summary List crew members
// @Tags crew
// @Produce json
// @Param search query string false "Search by first or last name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /crew [get]
func (ctrl *controller) GetAllCrew(c *gin.Context) {
	var query CrewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	members, err := ctrl.service.GetAllCrew(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list crew", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Crew retrieved successfully", members, nil)
}

// UpdateCrew godoc
// @Summary Update a crew member
// @Tags crew
// @Accept json
// @Produce json
// @Param id path string true "Crew member ID"
// @Param request body UpdateCrewRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /crew/{id} [put]
func (ctrl *controller) UpdateCrew(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid crew member ID", nil, err.Error())
		return
	}

	var req UpdateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	member, err := ctrl.service.UpdateCrew(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrCrewNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update crew member", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Crew member updated successfully", member, nil)
}

// DeleteCrew godoc
// @Summary Delete a crew member
// @Tags crew
// @Produce json
// @Param id path string true "Crew member ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /crew/{id} [delete]
func (ctrl *controller) DeleteCrew(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid crew member ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteCrew(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCrewNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete crew member", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Crew member deleted successfully", nil, nil)
}
