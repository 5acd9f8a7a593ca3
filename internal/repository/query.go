package repository

import "strings"

const (
	// MaxPageSize is the maximum allowed page size for paginated queries
	MaxPageSize = 200
	// DefaultPageSize applies when the caller gives no or an invalid limit
	DefaultPageSize = 50
	// MaxPage bounds the page number so the row offset cannot overflow
	MaxPage = 1_000_000
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string // API field name
	Order SortOrder
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds an ORDER BY clause from a whitelist of sortable
// fields, falling back to defaultColumn for unknown fields.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string, defaultOrder SortOrder) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := config.Order
	if order == "" {
		order = defaultOrder
	}
	if order == SortOrderAsc {
		return column + " ASC"
	}
	return column + " DESC"
}

// NormalizePagination clamps page to [1, MaxPage] and limit to [1, MaxPageSize]
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
