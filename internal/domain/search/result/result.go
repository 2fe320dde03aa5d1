package result

import (
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/search/sortby"
)

// Item is a lightweight view of a matched business. The full projection is
// the entity store's responsibility; search returns only what result lists
// and ranking need.
type Item struct {
	ID            int64    `json:"id"`
	Name          string   `json:"business_name"`
	Description   string   `json:"description,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	AverageRating float64  `json:"average_rating"`
	ReviewCount   int      `json:"total_reviews"`
	Featured      bool     `json:"featured"`
	Verified      bool     `json:"verified"`
	MilitaryOwned bool     `json:"military_owned"`
	Categories    []string `json:"categories,omitempty"`

	// DistanceMiles is set only when the search resolved a coordinate.
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// LocationMode describes how the location input was interpreted.
type LocationMode string

// Location interpretation modes.
const (
	// LocationNone: no location supplied.
	LocationNone LocationMode = "none"
	// LocationRadius: coordinates resolved, radius filtering applied.
	LocationRadius LocationMode = "radius"
	// LocationText: substring match on city/state/areas served, either because
	// the input was not geocodable or because geocoding degraded.
	LocationText LocationMode = "text"
)

// Metadata records the literal values the search actually applied after
// normalization, so clients and tests can verify exactly what ran.
type Metadata struct {
	Query           string       `json:"query,omitempty"`
	Location        string       `json:"location,omitempty"`
	LocationMode    LocationMode `json:"location_mode"`
	ResolvedPoint   *geo.Point   `json:"resolved_point,omitempty"`
	RadiusMiles     int          `json:"radius_miles,omitempty"`
	GeocodeDegraded bool         `json:"geocode_degraded,omitempty"`
	CategoryIDs     []int64      `json:"category_ids,omitempty"`
	FiltersApplied  []string     `json:"filters_applied,omitempty"`
	Sort            sortby.Sort  `json:"sort_by"`
	Stages          []string     `json:"stages,omitempty"`
}

// Page holds pagination metadata computed from the pre-slice total.
type Page struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
}

// Result is the full outcome of one search call.
type Result struct {
	Items    []Item   `json:"businesses"`
	Page     Page     `json:"pagination"`
	Metadata Metadata `json:"search_metadata"`
}

// Paginate computes the clamped slice bounds [start,end) for a page over a
// sequence of total elements, plus page metadata. A page beyond the available
// range yields an empty slice, never an error.
func Paginate(total, page, perPage int) (start, end int, meta Page) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	start = (page - 1) * perPage
	if start > total {
		start = total
	}
	end = start + perPage
	if end > total {
		end = total
	}

	return start, end, Page{
		CurrentPage: page,
		PerPage:     perPage,
		TotalCount:  total,
		TotalPages:  totalPages,
	}
}
