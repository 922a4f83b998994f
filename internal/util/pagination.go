package util

const (
	DefaultPageSize     = 12
	DefaultBlogPageSize = 10
	MaxPageSize         = 100
)

// Calculate clamps page/size and returns the slice offset plus the effective
// page size. A size of zero or above MaxPageSize falls back to def.
func Calculate(page, size, def int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = def
	}
	from = (page - 1) * size
	return from, size
}
