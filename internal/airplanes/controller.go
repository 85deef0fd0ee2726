package airplanes

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skyport/internal/shared/config"
	"skyport/internal/shared/utils/response"
)

type Controller interface {
	CreateAirplaneType(c *gin.Context)
	GetAirplaneTypes(c *gin.Context)
	UpdateAirplaneType(c *gin.Context)
	DeleteAirplaneType(c *gin.Context)

	CreateAirplane(c *gin.Context)
	GetAirplane(c *gin.Context)
	GetAllAirplanes(c *gin.Context)
	UpdateAirplane(c *gin.Context)
	DeleteAirplane(c *gin.Context)
	UploadImage(c *gin.Context)
}

type controller struct {
	service Service
	cfg     *config.Config
}

func NewController(service Service, cfg *config.Config) Controller {
	return &controller{service: service, cfg: cfg}
}

// CreateAirplaneType godoc
// @Summary Create an airplane type
// @Tags airplanes
// @Accept json
// @Produce json
// @Param request body CreateAirplaneTypeRequest true "Airplane type payload"
// @Success 201 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplane-types [post]
func (ctrl *controller) CreateAirplaneType(c *gin.Context) {
	var req CreateAirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	t, err := ctrl.service.CreateType(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrTypeNameExists) {
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create airplane type", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Airplane type created successfully", t, nil)
}

// GetAirplaneTypes godoc
// @Summary List airplane types
// @Tags airplanes
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplane-types [get]
func (ctrl *controller) GetAirplaneTypes(c *gin.Context) {
	types, err := ctrl.service.GetTypes(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list airplane types", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane types retrieved successfully", types, nil)
}

// UpdateAirplaneType godoc
// @Summary Update an airplane type
// @Tags airplanes
// @Accept json
// @Produce json
// @Param id path string true "Airplane type ID"
// @Param request body UpdateAirplaneTypeRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplane-types/{id} [put]
func (ctrl *controller) UpdateAirplaneType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airplane type ID", nil, err.Error())
		return
	}

	var req UpdateAirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	t, err := ctrl.service.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTypeNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrTypeNameExists):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update airplane type", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane type updated successfully", t, nil)
}

// DeleteAirplaneType godoc
// @Summary Delete an airplane type
// @Tags airplanes
// @Produce json
// @Param id path string true "Airplane type ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplane-types/{id} [delete]
func (ctrl *controller) DeleteAirplaneType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airplane type ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteType(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrTypeNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrTypeInUse):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete airplane type", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane type deleted successfully", nil, nil)
}

// CreateAirplane godoc
// @Summary Create an airplane
// @Tags airplanes
// @Accept json
// @Produce json
// @Param request body CreateAirplaneRequest true "Airplane payload"
// @Success 201 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplanes [post]
func (ctrl *controller) CreateAirplane(c *gin.Context) {
	var req CreateAirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	airplane, err := ctrl.service.CreateAirplane(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrTypeNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create airplane", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Airplane created successfully", airplane, nil)
}

// GetAirplane godoc
// @Summary Get an airplane by ID
// @Tags airplanes
// @Produce json
// @Param id path string true "Airplane ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplanes/{id} [get]
func (ctrl *controller) GetAirplane(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airplane ID", nil, err.Error())
		return
	}

	airplane, err := ctrl.service.GetAirplaneByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAirplaneNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get airplane", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane retrieved successfully", airplane, nil)
}

// GetAllAirplanes godoc
// @Summary List airplanes
// @Tags airplanes
// @Produce json
// @Param name query string false "Filter by name (case-insensitive substring)"
// @Param type_id query string false "Filter by airplane type"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplanes [get]
func (ctrl *controller) GetAllAirplanes(c *gin.Context) {
	var query AirplaneListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	airplanes, err := ctrl.service.GetAllAirplanes(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to list airplanes", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplanes retrieved successfully", airplanes, nil)
}

// UpdateAirplane godoc
// @Summary Update an airplane
// @Tags airplanes
// @Accept json
// @Produce json
// @Param id path string true "Airplane ID"
// @Param request body UpdateAirplaneRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplanes/{id} [put]
func (ctrl *controller) UpdateAirplane(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airplane ID", nil, err.Error())
		return
	}

	var req UpdateAirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	airplane, err := ctrl.service.UpdateAirplane(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAirplaneNotFound), errors.Is(err, ErrTypeNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAirplaneInUse):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update airplane", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane updated successfully", airplane, nil)
}

// DeleteAirplane godoc
// @Summary Delete an airplane
// @Tags airplanes
// @Produce json
// @Param id path string true "Airplane ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplanes/{id} [delete]
func (ctrl *controller) DeleteAirplane(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airplane ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrAirplaneNotFound):
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAirplaneInUse):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete airplane", nil, nil)
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane deleted successfully", nil, nil)
}

// UploadImage godoc
// @Summary Upload an airplane image
// @Tags airplanes
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Airplane ID"
// @Param image formData file true "Image file"
// @Success 200 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Failure 413 {object} response.StandardApiResponse
// @Security BearerAuth
// @Router /airplanes/{id}/image [post]
func (ctrl *controller) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid airplane ID", nil, err.Error())
		return
	}

	if _, err := ctrl.service.GetAirplaneByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrAirplaneNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to get airplane", nil, nil)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Image file is required", nil, err.Error())
		return
	}

	if file.Size > ctrl.cfg.Upload.MaxSize {
		msg := fmt.Sprintf("Image exceeds the maximum size of %d bytes", ctrl.cfg.Upload.MaxSize)
		response.RespondJSON(c, response.StatusError, http.StatusRequestEntityTooLarge, msg, nil, nil)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !ctrl.isAllowedType(contentType) {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Unsupported image type: "+contentType, nil, nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	relPath := filepath.Join("airplanes", uuid.New().String()+ext)
	dstPath := filepath.Join(ctrl.cfg.Upload.Path, relPath)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to store image", nil, nil)
		return
	}
	if err := c.SaveUploadedFile(file, dstPath); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to store image", nil, nil)
		return
	}

	airplane, err := ctrl.service.SetImage(c.Request.Context(), id, filepath.ToSlash(relPath))
	if err != nil {
		os.Remove(dstPath)
		if errors.Is(err, ErrAirplaneNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to update airplane image", nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Airplane image uploaded successfully", airplane, nil)
}

func (ctrl *controller) isAllowedType(contentType string) bool {
	for _, allowed := range ctrl.cfg.Upload.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}
