package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/shared/utils/response"
)

type Controller interface {
	CreateRoute(c *gin.Context)
	GetRoute(c *gin.Context)
	GetAllRoutes(c *gin.Context)
	UpdateRoute(c *gin.Context)
	DeleteRoute(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateRoute godoc
// @Summary Create a route
// @Tags routes
// @Accept json
// @Produce json
// @Param request body CreateRouteRequest true "Route payload"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /routes [post]
func (ctrl *controller) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	route, err := ctrl.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAirportNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrSameAirport):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrRouteExists):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create route", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Route created successfully", route, nil)
}

// GetRoute godoc
// @Summary Get a route by ID
// @Tags routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /routes/{id} [get]
func (ctrl *controller) GetRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid route ID", nil, err.Error())
		return
	}

	route, err := ctrl.service.GetRouteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRouteNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get route", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Route retrieved successfully", route, nil)
}

// GetAllRoutes godoc
// @Summary List routes
// @Tags routes
// @Produce json
// @Param source query string false "Filter by source airport id, name or city"
// @Param destination query string false "Filter by destination airport id, name or city"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /routes [get]
func (ctrl *controller) GetAllRoutes(c *gin.Context) {
	var query RouteListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	routes, err := ctrl.service.GetAllRoutes(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list routes", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Routes retrieved successfully", routes, nil)
}

// UpdateRoute godoc
// @Summary Update a route
// @Tags routes
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param request body UpdateRouteRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /routes/{id} [put]
func (ctrl *controller) UpdateRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid route ID", nil, err.Error())
		return
	}

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	route, err := ctrl.service.UpdateRoute(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRouteNotFound), errors.Is(err, ErrAirportNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrSameAirport):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrRouteExists):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update route", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Route updated successfully", route, nil)
}

// DeleteRoute godoc
// @Summary Delete a route
// @Tags routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /routes/{id} [delete]
func (ctrl *controller) DeleteRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid route ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteRoute(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrRouteNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrRouteInUse):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete route", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Route deleted successfully", nil, nil)
}
