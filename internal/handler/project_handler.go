package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/middleware"
	"github.com/lumenhq/lumen-backend/internal/service"
)

// ProjectHandler handles community project requests
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	RepoURL     string `json:"repo_url"`
}

// Create stores a new project (pending until approved)
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	project, err := h.service.Create(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetUsername(c),
		req.Title, req.Description, req.RepoURL)
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, project)
}

// ListPublic returns approved projects for the public site
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	result, err := h.service.ListPublic(c.Request.Context(), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result)
}

// List returns all projects for the admin console
func (h *ProjectHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result)
}

// Get returns one project
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, project)
}
