package common

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizeLimitOffset applies the list-endpoint defaults: limit 10,
// capped at 100, offset floored at 0.
func NormalizeLimitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// TotalPages returns ceil(count/size). Zero items means zero pages.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate slices one page out of an in-memory collection. Pages are
// 1-based; a page outside [1, totalPages] yields an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ClampPage resolves a requested page against the current one: requests
// for page 0 or past the last page are no-ops and keep the current page.
func ClampPage(current, requested, totalPages int) int {
	if requested < 1 || requested > totalPages {
		return current
	}
	return requested
}
