package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/service"
)

// ClaimHandler handles claim submission and admin listing
type ClaimHandler struct {
	service *service.ClaimService
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(service *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

type submitClaimRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// Submit accepts a claim from the public form
func (h *ClaimHandler) Submit(c *gin.Context) {
	var req submitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	claim, err := h.service.Submit(c.Request.Context(), req.Name, req.Email, req.Description, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, claim)
}

// List returns claims for the admin console
func (h *ClaimHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result)
}

// Get returns one claim
func (h *ClaimHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	claim, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, claim)
}
