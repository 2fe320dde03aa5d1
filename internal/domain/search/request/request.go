package request

import (
	"strings"

	"github.com/vetdirhq/vetdir/internal/domain/search/filters"
	"github.com/vetdirhq/vetdir/internal/domain/search/sortby"
)

// Normalization limits and defaults.
const (
	DefaultRadiusMiles = 25
	DefaultPage        = 1
	DefaultPerPage     = 20
	MaxPerPage         = 100
)

// Raw carries the unvalidated search parameters as they arrived from the
// client. Everything is optional; Normalize never rejects.
type Raw struct {
	Query       string
	Location    string
	RadiusMiles int
	CategoryIDs []int64
	Filters     map[string]string
	SortBy      string
	Page        int
	PerPage     int
}

// Request is a normalized search query. Construct via Normalize.
type Request struct {
	query       string
	location    string
	radiusMiles int
	categoryIDs []int64
	filters     filters.Filters
	sort        sortby.Sort
	page        int
	perPage     int
}

// Normalize coerces raw parameters into a valid Request. Malformed or
// out-of-range values are clamped or defaulted, never rejected: bad client
// input degrades to a broader search instead of an error.
func Normalize(raw Raw) Request {
	r := Request{
		query:       strings.TrimSpace(raw.Query),
		location:    strings.TrimSpace(raw.Location),
		radiusMiles: raw.RadiusMiles,
		categoryIDs: raw.CategoryIDs,
		filters:     filters.Parse(raw.Filters),
		page:        raw.Page,
		perPage:     raw.PerPage,
	}

	if r.radiusMiles < 1 {
		r.radiusMiles = DefaultRadiusMiles
	}
	if r.page < 1 {
		r.page = DefaultPage
	}
	if r.perPage < 1 {
		r.perPage = DefaultPerPage
	}
	if r.perPage > MaxPerPage {
		r.perPage = MaxPerPage
	}

	r.sort = sortby.Sort(strings.ToLower(strings.TrimSpace(raw.SortBy)))
	if !r.sort.IsValid() {
		r.sort = sortby.Default(r.query != "")
	}

	return r
}

// Query returns the free-text keyword, empty when absent.
func (r *Request) Query() string { return r.query }

// Location returns the raw location input: a place name, address, or "lat,lng".
func (r *Request) Location() string { return r.location }

// RadiusMiles returns the radius for coordinate-based location filtering.
func (r *Request) RadiusMiles() int { return r.radiusMiles }

// CategoryIDs returns the OR-matched category restriction.
func (r *Request) CategoryIDs() []int64 { return r.categoryIDs }

// Filters returns the parsed faceted restrictions.
func (r *Request) Filters() filters.Filters { return r.filters }

// Sort returns the effective ordering strategy.
func (r *Request) Sort() sortby.Sort { return r.sort }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PerPage returns the page size, clamped to [1,100].
func (r *Request) PerPage() int { return r.perPage }
