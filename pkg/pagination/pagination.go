// Package pagination parses page/limit query values and builds the
// envelope returned alongside every paged list.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type Params struct {
	Page  int
	Limit int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse reads raw query values. Leading digits are honoured ("12abc" is 12);
// anything unparsable or zero falls back to the default before clamping.
func Parse(rawPage, rawLimit string) Params {
	page, ok := leadingInt(rawPage)
	if !ok || page == 0 {
		page = DefaultPage
	}
	limit, ok := leadingInt(rawLimit)
	if !ok || limit == 0 {
		limit = DefaultLimit
	}
	return Normalize(page, limit)
}

// Normalize clamps page to >= 1 and limit to [1, MaxLimit].
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

type Envelope struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewEnvelope(p Params, total int64) Envelope {
	totalPages := 1
	if total > 0 && p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Envelope{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
	}
}

const maxDigits = 9

func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if i-start < maxDigits {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, false
	}
	if i-start > maxDigits {
		n = 999999999
	}
	if neg {
		n = -n
	}
	return n, true
}
