package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of a listing holding total items. From and To are
// 1-based item positions, both 0 on an empty page.
func NewPagination(page, pageSize int, total int64) *Pagination {
	p := &Pagination{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize <= 0 {
		return p
	}

	p.TotalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	p.HasMore = int64(page) < p.TotalPages

	from := int64((page-1)*pageSize) + 1
	if from > total {
		return p
	}
	p.From = int(from)
	p.To = int(min(int64(page*pageSize), total))
	return p
}
