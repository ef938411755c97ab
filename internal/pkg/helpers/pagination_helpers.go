package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1 // pages are 1-based
)

// ParseListParams extracts page and limit from the query string, falling
// back to defaults for missing or nonsense values.
func ParseListParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return page, limit
}

// Offset converts a 1-based page number to a row offset.
func Offset(page, limit int) uint64 {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return uint64((page - 1) * limit)
}

// NewListResponse assembles the standard collection body.
func NewListResponse(items interface{}, totalCount int64, page, limit int) dto.ListResponse {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(limit)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.ListResponse{
		Items:       items,
		TotalCount:  totalCount,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}
