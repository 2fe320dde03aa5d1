package search

import (
	"context"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
)

// EntityStore reads the approved-business snapshot and the category list.
// Store connectivity errors propagate unchanged; search masks nothing here.
type EntityStore interface {
	ListApproved(ctx context.Context) ([]domain.Business, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// RatingReader aggregates live review ratings per business. Search reads
// ratings on every call rather than trusting a cached column, so filter and
// sort always reflect current review state.
type RatingReader interface {
	Summaries(ctx context.Context) (map[int64]domain.RatingSummary, error)
}

// Geocoder resolves a free-text location to coordinates. Calls are bounded
// by the orchestrator's timeout; any failure degrades the search to text
// location matching instead of erroring.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}
