package airports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/shared/utils/response"
)

type Controller interface {
	CreateAirport(c *gin.Context)
	GetAirport(c *gin.Context)
	GetAllAirports(c *gin.Context)
	UpdateAirport(c *gin.Context)
	DeleteAirport(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateAirport godoc
// @Summary Create an airport
// @Tags airports
// @Accept json
// @Produce json
// @Param request body CreateAirportRequest true "Airport payload"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airports [post]
func (ctrl *controller) CreateAirport(c *gin.Context) {
	var req CreateAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	airport, err := ctrl.service.CreateAirport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAirportCodeExists) {
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create airport", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Airport created successfully", airport, nil)
}

// GetAirport godoc
// @Summary Get an airport by ID
// @Tags airports
// @Produce json
// @Param id path string true "Airport ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airports/{id} [get]
func (ctrl *controller) GetAirport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airport ID", nil, err.Error())
		return
	}

	airport, err := ctrl.service.GetAirportByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAirportNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get airport", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airport retrieved successfully", airport, nil)
}

// GetAllAirports godoc
// @Summary List airports
// @Tags airports
// @Produce json
// @Param name query string false "Filter by name (case-insensitive substring)"
// @Param city query string false "Filter by closest big city (case-insensitive substring)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airports [get]
func (ctrl *controller) GetAllAirports(c *gin.Context) {
	var query AirportListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	airports, err := ctrl.service.GetAllAirports(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list airports", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airports retrieved successfully", airports, nil)
}

// UpdateAirport godoc
// @Summary Update an airport
// @Tags airports
// @Accept json
// @Produce json
// @Param id path string true "Airport ID"
// @Param request body UpdateAirportRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airports/{id} [put]
func (ctrl *controller) UpdateAirport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airport ID", nil, err.Error())
		return
	}

	var req UpdateAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	airport, err := ctrl.service.UpdateAirport(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAirportNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAirportCodeExists):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update airport", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airport updated successfully", airport, nil)
}

// DeleteAirport godoc
// @Summary Delete an airport
// @Tags airports
// @Produce json
// @Param id path string true "Airport ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airports/{id} [delete]
func (ctrl *controller) DeleteAirport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airport ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteAirport(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrAirportNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAirportInUse):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete airport", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airport deleted successfully", nil, nil)
}
