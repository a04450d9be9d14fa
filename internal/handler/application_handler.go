package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/service"
)

// ApplicationHandler handles join application requests
type ApplicationHandler struct {
	service *service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(service *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type submitApplicationRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Motivation string `json:"motivation"`
}

// Submit accepts a join application from the public signup form
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	app, err := h.service.Submit(c.Request.Context(), req.Name, req.Email, req.Motivation)
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, app)
}

// List returns applications for the admin console
func (h *ApplicationHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result)
}

// Get returns one application
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	app, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, app)
}
