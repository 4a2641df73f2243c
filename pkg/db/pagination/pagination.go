package pagination

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type Pagination struct {
	PageSize int `form:"limit,default=50" validate:"gte=1,lte=100"`
	Offset   int `form:"offset,default=0" validate:"gte=0"`
}

type PageInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewPageInfo summarizes a result page. A full page is assumed to have more
// rows behind it; callers that need exactness fetch limit+1.
func NewPageInfo(page Pagination, count int) PageInfo {
	return PageInfo{
		Limit:   page.PageSize,
		Offset:  page.Offset,
		HasMore: count >= page.PageSize,
	}
}

// Clamp normalizes caller-supplied paging values into the allowed window.
func (p Pagination) Clamp() Pagination {
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
