package pagination

// OffsetResult is one page of an in-memory filtered listing.
type OffsetResult[T any] struct {
	Items         []T  `json:"items"`
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	Total         int  `json:"total"`
	TotalPages    int  `json:"totalPages"`
	HasPagination bool `json:"hasPagination"`
}

// NewOffsetResult builds the page metadata for items cut from total matches.
func NewOffsetResult[T any](items []T, total, page, size int) OffsetResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := TotalPages(total, size)
	return OffsetResult[T]{
		Items:         items,
		Page:          page,
		Size:          size,
		Total:         total,
		TotalPages:    pages,
		HasPagination: pages > 1,
	}
}

// TotalPages is ceil(total/size), 0 when there is nothing to show.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = PageDefaultSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps page within [1, max(1, TotalPages(total, size))].
func ClampPage(page, total, size int) int {
	last := max(1, TotalPages(total, size))
	return min(max(page, 1), last)
}

// Bounds returns the slice bounds of page. Callers clamp page first.
func Bounds(page, total, size int) (start, end int) {
	if size <= 0 {
		size = PageDefaultSize
	}
	start = min((page-1)*size, total)
	end = min(start+size, total)
	return start, end
}
