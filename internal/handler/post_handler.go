package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/middleware"
	"github.com/lumenhq/lumen-backend/internal/service"
)

// PostHandler handles community post requests
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Create stores a new post (pending until approved)
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.Create(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetUsername(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, post)
}

// ListPublic returns approved posts for the public site
func (h *PostHandler) ListPublic(c *gin.Context) {
	result, err := h.service.ListPublic(c.Request.Context(), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result)
}

// List returns all posts for the admin console
func (h *PostHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result)
}

// Get returns one post
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post)
}
