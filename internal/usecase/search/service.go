package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/search/request"
	"github.com/vetdirhq/vetdir/internal/domain/search/result"
	"github.com/vetdirhq/vetdir/internal/domain/search/sortby"
	"github.com/vetdirhq/vetdir/internal/metrics"
)

const defaultGeocodeTimeout = 5 * time.Second

// Service orchestrates business search: location resolution, the filter
// pipeline, ranking, and pagination. It is stateless; concurrent calls are
// independent computations over per-call snapshots.
type Service struct {
	businesses     EntityStore
	ratings        RatingReader
	geocoder       Geocoder
	calc           geo.Calculator
	geocodeTimeout time.Duration
	logger         *zap.Logger
}

// New creates a search service with the haversine distance baseline.
func New(businesses EntityStore, ratings RatingReader, geocoder Geocoder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		businesses:     businesses,
		ratings:        ratings,
		geocoder:       geocoder,
		calc:           geo.Haversine{},
		geocodeTimeout: defaultGeocodeTimeout,
		logger:         logger,
	}
}

// WithDistanceCalculator swaps the distance strategy. Chosen once at startup.
func (s *Service) WithDistanceCalculator(calc geo.Calculator) *Service {
	s.calc = calc
	return s
}

// WithGeocodeTimeout bounds the single geocoding call per search.
func (s *Service) WithGeocodeTimeout(d time.Duration) *Service {
	if d > 0 {
		s.geocodeTimeout = d
	}
	return s
}

// Search runs one search over the current store state. It never fails on
// user input; the only error paths are entity store failures, which
// propagate unchanged.
func (s *Service) Search(ctx context.Context, raw request.Raw) (result.Result, error) {
	req := request.Normalize(raw)

	start := time.Now()
	effectiveSort := req.Sort()
	defer func() {
		metrics.SearchDuration.WithLabelValues(string(effectiveSort)).Observe(time.Since(start).Seconds())
	}()

	scope := s.resolveLocation(ctx, req.Location())

	// Distance sort needs a resolved point; otherwise fall back to the default.
	// Metrics carry the sort actually applied, same as the result metadata.
	if effectiveSort == sortby.Distance && scope.point == nil {
		effectiveSort = sortby.Default(req.Query() != "")
	}
	metrics.SearchesTotal.WithLabelValues(string(effectiveSort)).Inc()

	snapshot, err := s.businesses.ListApproved(ctx)
	if err != nil {
		return result.Result{}, fmt.Errorf("load businesses: %w", err)
	}
	summaries, err := s.ratings.Summaries(ctx)
	if err != nil {
		return result.Result{}, fmt.Errorf("load ratings: %w", err)
	}

	cands := make([]candidate, len(snapshot))
	for i, b := range snapshot {
		c := candidate{biz: b, summary: summaries[b.ID]}
		if scope.point != nil {
			if d, ok := s.calc.MilesBetween(scope.point, b.Location); ok {
				dist := d
				c.distance = &dist
			}
		}
		if q := req.Query(); q != "" {
			c.score = relevanceScore(&c.biz, q)
		}
		cands[i] = c
	}

	filtered, stages := runPipeline(cands, buildPipeline(&req, scope))

	rank(filtered, effectiveSort, req.Query() != "")

	// Total count from the fully filtered set, after rating aggregation.
	lo, hi, page := result.Paginate(len(filtered), req.Page(), req.PerPage())

	items := make([]result.Item, 0, hi-lo)
	for _, c := range filtered[lo:hi] {
		items = append(items, toItem(c))
	}

	return result.Result{
		Items: items,
		Page:  page,
		Metadata: result.Metadata{
			Query:           req.Query(),
			Location:        req.Location(),
			LocationMode:    scope.mode,
			ResolvedPoint:   scope.point,
			RadiusMiles:     radiusApplied(&req, scope),
			GeocodeDegraded: scope.degraded,
			CategoryIDs:     req.CategoryIDs(),
			FiltersApplied:  req.Filters().Applied(),
			Sort:            effectiveSort,
			Stages:          stages,
		},
	}, nil
}

// resolveLocation interprets the location input: direct coordinates, geocoded
// coordinates, or text matching. A geocoder failure or timeout degrades to
// text matching; it never fails the search, and no retry happens here.
func (s *Service) resolveLocation(ctx context.Context, loc string) locationScope {
	if loc == "" {
		return locationScope{mode: result.LocationNone}
	}

	if p, err := geo.ParsePoint(loc); err == nil {
		return locationScope{mode: result.LocationRadius, point: &p}
	}

	if s.geocoder == nil {
		return locationScope{mode: result.LocationText}
	}

	gctx, cancel := context.WithTimeout(ctx, s.geocodeTimeout)
	defer cancel()

	p, err := s.geocoder.Geocode(gctx, loc)
	if err != nil {
		if errors.Is(err, domain.ErrNoGeocodeResults) {
			return locationScope{mode: result.LocationText}
		}
		metrics.GeocodeFallbacksTotal.Inc()
		s.logger.Warn("geocoding degraded to text matching",
			zap.String("location", loc),
			zap.Error(err),
		)
		return locationScope{mode: result.LocationText, degraded: true}
	}
	return locationScope{mode: result.LocationRadius, point: &p}
}

func radiusApplied(req *request.Request, scope locationScope) int {
	if scope.mode == result.LocationRadius {
		return req.RadiusMiles()
	}
	return 0
}

func toItem(c candidate) result.Item {
	return result.Item{
		ID:            c.biz.ID,
		Name:          c.biz.Name,
		Description:   c.biz.Description,
		City:          c.biz.City,
		State:         c.biz.State,
		AverageRating: c.summary.Average,
		ReviewCount:   c.summary.Count,
		Featured:      c.biz.Featured,
		Verified:      c.biz.Verified,
		MilitaryOwned: c.biz.MilitaryOwned(),
		Categories:    c.biz.CategoryNames,
		DistanceMiles: c.distance,
	}
}
