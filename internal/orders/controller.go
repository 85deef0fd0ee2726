package orders

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/seatledger"
	"skyport/internal/shared/utils/response"
	"skyport/internal/users"
)

type Controller interface {
	CreateOrder(c *gin.Context)
	GetOrders(c *gin.Context)
	GetOrder(c *gin.Context)
	CancelOrder(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// currentUser pulls the authenticated user's ID and role out of the
// context values set by the JWT middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool, bool) {
	idValue, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false, false
	}

	idStr, ok := idValue.(string)
	if !ok {
		return uuid.Nil, false, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false, false
	}

	roleValue, _ := c.Get("user_role")
	role, _ := roleValue.(string)

	return id, role == string(users.RoleAdmin), true
}

// CreateOrder godoc
// @Summary Book seats under a new order
// @Description Reserves every requested seat atomically. If any seat is invalid or taken, no ticket is created.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Tickets to book"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders [post]
func (ctrl *controller) CreateOrder(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	order, err := ctrl.service.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		var outOfRange *seatledger.OutOfRangeError
		var duplicate *seatledger.DuplicateInBatchError
		var taken *seatledger.SeatAlreadyTakenError
		var integrity *seatledger.CapacityIntegrityError

		switch {
		case errors.As(err, &outOfRange):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.As(err, &duplicate):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrInvalidFlightID):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, err.Error(), nil, nil)
		case errors.As(err, &taken):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, seatledger.ErrFlightNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.As(err, &integrity):
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create order", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Order created successfully", order, nil)
}

// GetOrders godoc
// @Summary List orders
// @Description Regular users see their own orders. Admins see everyone's.
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param created_at query string false "Filter by creation date (YYYY-MM-DD)"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders [get]
func (ctrl *controller) GetOrders(c *gin.Context) {
	userID, isAdmin, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	orders, err := ctrl.service.GetOrders(c.Request.Context(), userID, isAdmin, query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list orders", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Orders retrieved successfully", orders, nil)
}

// GetOrder godoc
// @Summary Get an order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (ctrl *controller) GetOrder(c *gin.Context) {
	userID, isAdmin, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	order, err := ctrl.service.GetOrderByID(c.Request.Context(), userID, isAdmin, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get order", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Order retrieved successfully", order, nil)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Deletes the order and its tickets, releasing the booked seats.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (ctrl *controller) CancelOrder(c *gin.Context) {
	userID, isAdmin, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	if err := ctrl.service.CancelOrder(c.Request.Context(), userID, isAdmin, id); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to cancel order", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Order cancelled successfully", nil, nil)
}
