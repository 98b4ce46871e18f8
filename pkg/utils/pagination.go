package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents normalized pagination parameters.
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts page/pageSize from the request, normalizing
// invalid values (page<=0 -> 1, pageSize<=0 -> defaultSize).
func GetPaginationParams(c echo.Context, defaultSize int) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	return NormalizePagination(page, pageSize, defaultSize)
}

// NormalizePagination applies the paging defaults shared by all list
// endpoints.
func NormalizePagination(page, pageSize, defaultSize int) PaginationParams {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// CleanFilter treats the literal strings "null" and "undefined" as absent
// filter values. Loose client serializers send these for missing params.
func CleanFilter(value string) string {
	if value == "null" || value == "undefined" {
		return ""
	}
	return value
}
