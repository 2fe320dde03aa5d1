package vetdir

import (
	"time"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/membership"
	"github.com/vetdirhq/vetdir/internal/domain/search/request"
	"github.com/vetdirhq/vetdir/internal/domain/search/result"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// Business is a directory listing. Location is nil when the listing has no
// known coordinates.
type Business struct {
	ID          int64
	Name        string
	Description string
	AreasServed string
	Status      string // pending, approved, rejected, suspended

	CategoryIDs   []int64
	CategoryNames []string

	Location *LatLng
	City     string
	State    string
	ZipCode  string

	Featured         bool
	Verified         bool
	EmergencyService bool
	Insured          bool
	Bonded           bool
	Licensed         bool

	EmployeeCount   int
	YearsInBusiness int

	OwnerTier        string // veteran, spouse, member, supporter
	MilitaryVerified bool

	CreatedAt time.Time
}

// Category is a service category.
type Category struct {
	ID     int64
	Name   string
	Active bool
}

// Review is one customer review of a business.
type Review struct {
	ID         int64
	BusinessID int64
	Rating     int // 1-5
	Active     bool
	CreatedAt  time.Time
}

// RatingSummary is the live aggregate of a business's active reviews.
type RatingSummary struct {
	Average float64
	Count   int
}

// SearchRequest carries search parameters. Everything is optional; invalid
// values are clamped to defaults, never rejected.
type SearchRequest struct {
	Query       string
	Location    string // place name or "lat,lng"
	RadiusMiles int
	CategoryIDs []int64
	Filters     map[string]string
	SortBy      string
	Page        int
	PerPage     int
}

func (r SearchRequest) toRaw() request.Raw {
	return request.Raw{
		Query:       r.Query,
		Location:    r.Location,
		RadiusMiles: r.RadiusMiles,
		CategoryIDs: r.CategoryIDs,
		Filters:     r.Filters,
		SortBy:      r.SortBy,
		Page:        r.Page,
		PerPage:     r.PerPage,
	}
}

// BusinessSummary is one search hit.
type BusinessSummary struct {
	ID            int64
	Name          string
	Description   string
	City          string
	State         string
	AverageRating float64
	ReviewCount   int
	Featured      bool
	Verified      bool
	MilitaryOwned bool
	Categories    []string

	// DistanceMiles is set only when the search resolved a coordinate.
	DistanceMiles *float64
}

// Page is pagination metadata.
type Page struct {
	CurrentPage int
	PerPage     int
	TotalCount  int
	TotalPages  int
}

// SearchResult is the outcome of one search call.
type SearchResult struct {
	Businesses []BusinessSummary
	Pagination Page

	// Sort is the ordering that was actually applied after normalization.
	Sort string
	// GeocodeDegraded is true when a location input could not be geocoded
	// and the search fell back to text matching.
	GeocodeDegraded bool
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Type       string // "business" or "category"
	Text       string
	Subtitle   string
	Value      string
	CategoryID int64
}

// --- Converters ---

func (b *Business) toDomain() domain.Business {
	out := domain.Business{
		ID:               b.ID,
		Name:             b.Name,
		Description:      b.Description,
		AreasServed:      b.AreasServed,
		Status:           domain.Status(b.Status),
		CategoryIDs:      b.CategoryIDs,
		CategoryNames:    b.CategoryNames,
		City:             b.City,
		State:            b.State,
		ZipCode:          b.ZipCode,
		Featured:         b.Featured,
		Verified:         b.Verified,
		EmergencyService: b.EmergencyService,
		Insured:          b.Insured,
		Bonded:           b.Bonded,
		Licensed:         b.Licensed,
		EmployeeCount:    b.EmployeeCount,
		YearsInBusiness:  b.YearsInBusiness,
		OwnerTier:        membership.Tier(b.OwnerTier),
		MilitaryVerified: b.MilitaryVerified,
		CreatedAt:        b.CreatedAt,
	}
	if b.Location != nil {
		out.Location = &geo.Point{Lat: b.Location.Lat, Lng: b.Location.Lng}
	}
	return out
}

func businessFromDomain(b *domain.Business) Business {
	out := Business{
		ID:               b.ID,
		Name:             b.Name,
		Description:      b.Description,
		AreasServed:      b.AreasServed,
		Status:           string(b.Status),
		CategoryIDs:      b.CategoryIDs,
		CategoryNames:    b.CategoryNames,
		City:             b.City,
		State:            b.State,
		ZipCode:          b.ZipCode,
		Featured:         b.Featured,
		Verified:         b.Verified,
		EmergencyService: b.EmergencyService,
		Insured:          b.Insured,
		Bonded:           b.Bonded,
		Licensed:         b.Licensed,
		EmployeeCount:    b.EmployeeCount,
		YearsInBusiness:  b.YearsInBusiness,
		OwnerTier:        string(b.OwnerTier),
		MilitaryVerified: b.MilitaryVerified,
		CreatedAt:        b.CreatedAt,
	}
	if b.Location != nil {
		out.Location = &LatLng{Lat: b.Location.Lat, Lng: b.Location.Lng}
	}
	return out
}

func searchResultFromDomain(r *result.Result) SearchResult {
	items := make([]BusinessSummary, len(r.Items))
	for i, it := range r.Items {
		items[i] = BusinessSummary{
			ID:            it.ID,
			Name:          it.Name,
			Description:   it.Description,
			City:          it.City,
			State:         it.State,
			AverageRating: it.AverageRating,
			ReviewCount:   it.ReviewCount,
			Featured:      it.Featured,
			Verified:      it.Verified,
			MilitaryOwned: it.MilitaryOwned,
			Categories:    it.Categories,
			DistanceMiles: it.DistanceMiles,
		}
	}
	return SearchResult{
		Businesses: items,
		Pagination: Page{
			CurrentPage: r.Page.CurrentPage,
			PerPage:     r.Page.PerPage,
			TotalCount:  r.Page.TotalCount,
			TotalPages:  r.Page.TotalPages,
		},
		Sort:            string(r.Metadata.Sort),
		GeocodeDegraded: r.Metadata.GeocodeDegraded,
	}
}
