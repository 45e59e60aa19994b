package persistence

import (
	"fmt"
	"strings"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// allowed sort columns, anything else falls back to created_at
var sortableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"status":       true,
	"order_number": true,
	"total_amount": true,
	"occurred_at":  true,
}

// applySearch adds a case-insensitive LIKE across the given columns
func applySearch(query *gorm.DB, filter shared.Filter, columns ...string) *gorm.DB {
	search := strings.TrimSpace(filter.Search)
	if search == "" || len(columns) == 0 {
		return query
	}

	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ?", column)
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// applyOrdering adds a validated ORDER BY
func applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column := filter.OrderBy
	if !sortableColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}

// applyPagination adds offset and limit
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}
