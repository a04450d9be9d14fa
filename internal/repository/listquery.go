package repository

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ListQuery carries pagination and filter parameters for listing endpoints
type ListQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
	Sort   string
	Order  string
	From   *time.Time
	To     *time.Time
}

// Normalize clamps pagination to sane bounds
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Fingerprint builds a stable cache key fragment for this query
func (q *ListQuery) Fingerprint() string {
	from, to := "", ""
	if q.From != nil {
		from = q.From.Format(time.RFC3339)
	}
	if q.To != nil {
		to = q.To.Format(time.RFC3339)
	}
	return fmt.Sprintf("p%d:l%d:s=%s:q=%s:o=%s.%s:f=%s:t=%s",
		q.Page, q.Limit, q.Status, q.Search, q.Sort, q.Order, from, to)
}

// applyFilters adds status/search/date-range conditions to a query.
// searchCols are the entity's free-text columns matched with LIKE.
func applyFilters(db *gorm.DB, q ListQuery, searchCols []string) *gorm.DB {
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.Search != "" && len(searchCols) > 0 {
		pattern := "%" + q.Search + "%"
		conds := make([]string, len(searchCols))
		args := make([]interface{}, len(searchCols))
		for i, col := range searchCols {
			conds[i] = col + " LIKE ?"
			args[i] = pattern
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at <= ?", *q.To)
	}
	return db
}

// applyOrder adds a whitelisted ORDER BY, defaulting to created_at DESC
// so listings stay stable across pages.
func applyOrder(db *gorm.DB, q ListQuery, sortable map[string]bool) *gorm.DB {
	col := "created_at"
	if q.Sort != "" && sortable[q.Sort] {
		col = q.Sort
	}
	dir := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		dir = "ASC"
	}
	return db.Order(col + " " + dir)
}
