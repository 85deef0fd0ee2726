package airlines

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/shared/utils/response"
)

type Controller interface {
	CreateAirline(c *gin.Context)
	GetAirline(c *gin.Context)
	GetAllAirlines(c *gin.Context)
	UpdateAirline(c *gin.Context)
	DeleteAirline(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateAirline godoc
// @Summary Create an airline
// @Tags airlines
// @Accept json
// @Produce json
// @Param request body CreateAirlineRequest true "Airline payload"
// @Success 201 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airlines [post]
func (ctrl *controller) CreateAirline(c *gin.Context) {
	var req CreateAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	airline, err := ctrl.service.CreateAirline(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAirlineCodeExists) {
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create airline", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Airline created successfully", airline, nil)
}

// GetAirline godoc
// @Summary Get an airline by ID
// @Tags airlines
// @Produce json
// @Param id path string true "Airline ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airlines/{id} [get]
func (ctrl *controller) GetAirline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airline ID", nil, err.Error())
		return
	}

	airline, err := ctrl.service.GetAirlineByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAirlineNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get airline", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airline retrieved successfully", airline, nil)
}

// GetAllAirlines godoc
// @Summary List airlines
// @Tags airlines
// @Produce json
// @Param name query string false "Filter by name"
// @Param country query string false "Filter by country"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airlines [get]
func (ctrl *controller) GetAllAirlines(c *gin.Context) {
	var query AirlineListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	airlines, err := ctrl.service.GetAllAirlines(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list airlines", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airlines retrieved successfully", airlines, nil)
}

// UpdateAirline godoc
// @Summary Update an airline
// @Tags airlines
// @Accept json
// @Produce json
// @Param id path string true "Airline ID"
// @Param request body UpdateAirlineRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airlines/{id} [put]
func (ctrl *controller) UpdateAirline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airline ID", nil, err.Error())
		return
	}

	var req UpdateAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	airline, err := ctrl.service.UpdateAirline(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAirlineNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAirlineCodeExists):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update airline", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airline updated successfully", airline, nil)
}

// DeleteAirline godoc
// @Summary Delete an airline
// @Tags airlines
// @Produce json
// @Param id path string true "Airline ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airlines/{id} [delete]
func (ctrl *controller) DeleteAirline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airline ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteAirline(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrAirlineNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAirlineInUse):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete airline", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airline deleted successfully", nil, nil)
}
