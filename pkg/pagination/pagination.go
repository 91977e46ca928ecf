package pagination

const (
	// DefaultPerPage is the page size used when a list request omits perpage.
	DefaultPerPage = 2
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
	// FirstPage is the page returned when page is omitted.
	FirstPage = 1
)

// Params holds 1-indexed page/perpage inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize fills defaults and clamps PerPage to MaxPerPage.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = FirstPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the number of rows skipped before the requested page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// Page is the list payload returned by paginated endpoints. Pages past the
// last one carry an empty Results slice.
type Page[T any] struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	PerPage int   `json:"perpage"`
	Results []T   `json:"results"`
}

// NewPage builds a Page, never returning a nil Results slice.
func NewPage[T any](params Params, total int64, results []T) Page[T] {
	n := params.Normalize()
	if results == nil {
		results = []T{}
	}
	return Page[T]{Count: total, Page: n.Page, PerPage: n.PerPage, Results: results}
}
