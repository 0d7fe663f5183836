package pagination

// Params is a normalized page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the list envelope returned by paginated endpoints.
type Page[T any] struct {
	List  []T `json:"list"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// New builds the envelope; List is never nil so it encodes as [].
func New[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		List:  items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: PageCount(total, p.Limit),
	}
}

// PageCount is ceil(total / limit).
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Normalize falls back to page 1 and defaultLimit for non-positive values and
// caps limit at maxLimit.
func Normalize(page, limit, defaultLimit, maxLimit int) Params {
	p := Params{Page: page, Limit: limit}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
