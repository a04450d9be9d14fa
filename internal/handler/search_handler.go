package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/service"
)

// SearchHandler exposes Elasticsearch full-text search over posts
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service *service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search runs a full-text query. Returns 503 when search is disabled.
func (h *SearchHandler) Search(c *gin.Context) {
	if h.service == nil {
		common.ErrorResponse(c, 503, "Search is not available", nil)
		return
	}

	keyword := c.Query("q")
	if keyword == "" {
		common.ErrorResponse(c, 400, "Missing query parameter q", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.service.SearchPosts(c.Request.Context(), keyword, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, resp)
}
