package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/repository"
)

// parseListQuery reads pagination/filter params shared by all listings
func parseListQuery(c *gin.Context) repository.ListQuery {
	q := repository.ListQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.To = &t
		}
	}

	q.Normalize()
	return q
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		common.ErrorResponse(c, 400, "Invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// respondError maps a business error to its HTTP response
func respondError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	msg := err.Error()
	if status == 500 {
		// upstream detail goes to the log, not the client
		msg = "Internal server error"
	}
	common.ErrorResponse(c, status, msg, err)
}
