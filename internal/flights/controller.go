package flights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/shared/utils/response"
)

type Controller interface {
	CreateFlight(c *gin.Context)
	GetFlight(c *gin.Context)
	GetAllFlights(c *gin.Context)
	UpdateFlight(c *gin.Context)
	DeleteFlight(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateFlight godoc
// @Summary Schedule a flight
// @Tags flights
// @Accept json
// @Produce json
// @Param request body CreateFlightRequest true "Flight payload"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /flights [post]
func (ctrl *controller) CreateFlight(c *gin.Context) {
	var req CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flight, err := ctrl.service.CreateFlight(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimes):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrRouteNotFound),
			errors.Is(err, ErrAirplaneNotFound),
			errors.Is(err, ErrAirlineNotFound),
			errors.Is(err, ErrCrewNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create flight", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Flight created successfully", flight, nil)
}

// GetFlight godoc
// @Summary Get a flight by ID
// @Description Returns flight details including the crew roster and the taken seats.
// @Tags flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /flights/{id} [get]
func (ctrl *controller) GetFlight(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	flight, err := ctrl.service.GetFlightByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get flight", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Flight retrieved successfully", flight, nil)
}

// GetAllFlights godoc
// @Summary List flights
// @Description Lists flights with remaining seat availability per flight.
// @Tags flights
// @Produce json
// @Param source query string false "Filter by source airport name or city (case-insensitive substring)"
// @Param destination query string false "Filter by destination airport name or city (case-insensitive substring)"
// @Param departure_date query string false "Filter by departure date (YYYY-MM-DD)"
// @Param from query string false "Earliest departure date (YYYY-MM-DD)"
// @Param to query string false "Latest departure date (YYYY-MM-DD)"
// @Param airline_id query string false "Filter by airline"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /flights [get]
func (ctrl *controller) GetAllFlights(c *gin.Context) {
	var query FlightListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	flights, err := ctrl.service.GetAllFlights(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list flights", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Flights retrieved successfully", flights, nil)
}

// UpdateFlight godoc
// @Summary Update a flight
// @Tags flights
// @Accept json
// @Produce json
// @Param id path string true "Flight ID"
// @Param request body UpdateFlightRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /flights/{id} [put]
func (ctrl *controller) UpdateFlight(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	var req UpdateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flight, err := ctrl.service.UpdateFlight(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimes):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrFlightNotFound),
			errors.Is(err, ErrRouteNotFound),
			errors.Is(err, ErrAirplaneNotFound),
			errors.Is(err, ErrAirlineNotFound),
			errors.Is(err, ErrCrewNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrFlightHasTickets):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update flight", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Flight updated successfully", flight, nil)
}

// DeleteFlight godoc
// @Summary Delete a flight
// @Tags flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /flights/{id} [delete]
func (ctrl *controller) DeleteFlight(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteFlight(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrFlightNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrFlightHasTickets):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete flight", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Flight deleted successfully", nil, nil)
}
