package search

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/search/result"
)

// Autocomplete limits, matching the directory UI.
const (
	maxBusinessSuggestions = 5
	maxCategorySuggestions = 3
	maxSuggestions         = 10
	maxPopularCategories   = 8
	maxFeaturedBusinesses  = 6
	maxLocalCategories     = 6
	maxNearbyBusinesses    = 4
	nearbyRadiusMiles      = 10
	localRadiusMiles       = 25
)

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Type       string `json:"type"` // "business" or "category"
	Text       string `json:"text"`
	Subtitle   string `json:"subtitle,omitempty"`
	Value      string `json:"value"`
	CategoryID int64  `json:"category_id,omitempty"`
}

// CategoryCount is a category with its approved-business count.
type CategoryCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Suggestions aggregates the discovery blocks of the search landing surface.
type Suggestions struct {
	PopularCategories  []CategoryCount `json:"popular_categories"`
	FeaturedBusinesses []result.Item   `json:"featured_businesses"`
	LocalCategories    []CategoryCount `json:"local_categories,omitempty"`
	NearbyBusinesses   []result.Item   `json:"nearby_businesses,omitempty"`
}

// Autocomplete returns prefix suggestions for a partial query: approved
// business names first, then active categories, capped at ten entries.
func (s *Service) Autocomplete(ctx context.Context, q string) ([]Suggestion, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	var (
		snapshot []domain.Business
		cats     []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot, err = s.businesses.ListApproved(gctx)
		return err
	})
	g.Go(func() (err error) {
		cats, err = s.businesses.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(q)
	out := make([]Suggestion, 0, maxSuggestions)

	for _, b := range snapshot {
		if len(out) >= maxBusinessSuggestions {
			break
		}
		if strings.HasPrefix(strings.ToLower(b.Name), lower) {
			out = append(out, Suggestion{
				Type:     "business",
				Text:     b.Name,
				Subtitle: cityState(&b),
				Value:    b.Name,
			})
		}
	}

	added := 0
	for _, c := range cats {
		if added >= maxCategorySuggestions || len(out) >= maxSuggestions {
			break
		}
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			out = append(out, Suggestion{
				Type:       "category",
				Text:       c.Name,
				Subtitle:   "Service Category",
				Value:      c.Name,
				CategoryID: c.ID,
			})
			added++
		}
	}

	return out, nil
}

// Suggest returns the discovery blocks, optionally localized when the
// location input resolves to coordinates. The three store reads are
// independent and fan out in parallel.
func (s *Service) Suggest(ctx context.Context, location string) (Suggestions, error) {
	var (
		snapshot  []domain.Business
		cats      []domain.Category
		summaries map[int64]domain.RatingSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot, err = s.businesses.ListApproved(gctx)
		return err
	})
	g.Go(func() (err error) {
		cats, err = s.businesses.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		summaries, err = s.ratings.Summaries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Suggestions{}, err
	}

	out := Suggestions{
		PopularCategories:  topCategories(snapshot, cats, nil, maxPopularCategories),
		FeaturedBusinesses: featuredItems(snapshot, summaries),
	}

	if location != "" {
		scope := s.resolveLocation(ctx, strings.TrimSpace(location))
		if scope.point != nil {
			local := s.withinRadius(snapshot, scope.point, localRadiusMiles)
			out.LocalCategories = topCategories(snapshot, cats, local, maxLocalCategories)
			out.NearbyBusinesses = s.nearbyFeatured(snapshot, summaries, scope.point)
		}
	}

	return out, nil
}

// withinRadius returns the IDs of businesses with known coordinates inside
// the radius.
func (s *Service) withinRadius(snapshot []domain.Business, p *geo.Point, radius float64) map[int64]bool {
	out := make(map[int64]bool)
	for _, b := range snapshot {
		if d, ok := s.calc.MilesBetween(p, b.Location); ok && d <= radius {
			out[b.ID] = true
		}
	}
	return out
}

// topCategories counts businesses per category, optionally restricted to a
// subset of business IDs, and returns the most common ones.
func topCategories(snapshot []domain.Business, cats []domain.Category, within map[int64]bool, limit int) []CategoryCount {
	counts := make(map[int64]int)
	for _, b := range snapshot {
		if within != nil && !within[b.ID] {
			continue
		}
		for _, id := range b.CategoryIDs {
			counts[id]++
		}
	}

	out := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		if counts[c.ID] > 0 {
			out = append(out, CategoryCount{ID: c.ID, Name: c.Name, Count: counts[c.ID]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func featuredItems(snapshot []domain.Business, summaries map[int64]domain.RatingSummary) []result.Item {
	var out []result.Item
	for _, b := range snapshot {
		if len(out) >= maxFeaturedBusinesses {
			break
		}
		if b.Featured {
			out = append(out, toItem(candidate{biz: b, summary: summaries[b.ID]}))
		}
	}
	return out
}

// nearbyFeatured returns featured businesses within the nearby radius,
// closest first, with their distances populated.
func (s *Service) nearbyFeatured(snapshot []domain.Business, summaries map[int64]domain.RatingSummary, p *geo.Point) []result.Item {
	var cands []candidate
	for _, b := range snapshot {
		if !b.Featured {
			continue
		}
		if d, ok := s.calc.MilesBetween(p, b.Location); ok && d <= nearbyRadiusMiles {
			dist := d
			cands = append(cands, candidate{biz: b, summary: summaries[b.ID], distance: &dist})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return *cands[i].distance < *cands[j].distance })
	if len(cands) > maxNearbyBusinesses {
		cands = cands[:maxNearbyBusinesses]
	}

	out := make([]result.Item, len(cands))
	for i, c := range cands {
		out[i] = toItem(c)
	}
	return out
}

func cityState(b *domain.Business) string {
	switch {
	case b.City != "" && b.State != "":
		return b.City + ", " + b.State
	case b.City != "":
		return b.City
	default:
		return b.State
	}
}
