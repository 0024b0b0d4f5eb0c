// Package pagination parses page/limit query parameters and shapes
// paginated responses.
package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest reads page/limit from the query string, clamping
// limit to maxLimit.
func ParseFromRequest(c *fiber.Ctx, defaultLimit, maxLimit int) Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// TotalPages derives the page count from Total and Limit.
func (p Pagination) TotalPages() int64 {
	pages := p.Total / int64(p.Limit)
	if p.Total%int64(p.Limit) > 0 {
		pages++
	}
	return pages
}

// Meta creates the standardized pagination metadata map.
func Meta(p Pagination) fiber.Map {
	totalPages := p.TotalPages()
	return fiber.Map{
		"current_page":      p.Page,
		"total_pages":       totalPages,
		"limit":             p.Limit,
		"has_next_page":     int64(p.Page) < totalPages,
		"has_previous_page": p.Page > 1,
	}
}
