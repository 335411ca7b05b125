package paging

const DefaultPageSize = 10

type Page struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// Resolve computes pagination for a 1-based page index. Out-of-range pages
// clamp to the first or last page rather than erroring; an empty result set
// still reports page 1 of 1.
func Resolve(page, pageSize, totalCount int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Page{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

// Offset is the SQL offset for the resolved page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}
