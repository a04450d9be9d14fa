package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/middleware"
	"github.com/lumenhq/lumen-backend/internal/service"
)

// ModerationHandler exposes the status transition contract for every
// moderatable resource under /admin.
type ModerationHandler struct {
	service *service.ModerationService
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(service *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

type moderateRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// Moderate returns a handler applying actions to one entity kind.
// PUT /admin/<resource>/:id/moderate {action, reason?}
func (h *ModerationHandler) Moderate(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var req moderateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.ErrorResponse(c, 400, "Invalid request body", err)
			return
		}

		row, err := h.service.Transition(c.Request.Context(), entity, id,
			domain.Action(req.Action), req.Reason, middleware.GetUsername(c))
		if err != nil {
			middleware.CountModerationAction(entity, req.Action, "error")
			respondError(c, err)
			return
		}

		middleware.CountModerationAction(entity, req.Action, "ok")
		common.SuccessResponse(c, row)
	}
}

type deleteRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DeletePost hard-deletes a post with a mandatory reason.
// DELETE /admin/posts/:id {reason}
func (h *ModerationHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Reason is required", err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id, req.Reason, middleware.GetUsername(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(204)
}

type bulkClaimsRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// BulkClaims applies approve/reject to a batch of claims.
// POST /admin/claims/bulk {ids, action, reason?}
func (h *ModerationHandler) BulkClaims(c *gin.Context) {
	var req bulkClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	affected, err := h.service.BulkClaims(c.Request.Context(), req.IDs,
		domain.Action(req.Action), req.Reason, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"updated": affected})
}
