package search

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vetdirhq/vetdir/internal/domain"
)

// RatingOption is a preset minimum-rating choice offered to clients.
type RatingOption struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Facets lists the filter values currently available in the directory,
// returned alongside search results for client-side filter UIs.
type Facets struct {
	Categories    []domain.Category `json:"categories"`
	States        []string          `json:"states"`
	Cities        []string          `json:"cities"`
	RatingOptions []RatingOption    `json:"rating_options"`
}

var ratingOptions = []RatingOption{
	{Value: 4.5, Label: "4.5+ Stars"},
	{Value: 4.0, Label: "4.0+ Stars"},
	{Value: 3.5, Label: "3.5+ Stars"},
	{Value: 3.0, Label: "3.0+ Stars"},
}

// Facets computes the available filter values from the approved snapshot.
func (s *Service) Facets(ctx context.Context) (Facets, error) {
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
		return Facets{}, err
	}

	return Facets{
		Categories:    cats,
		States:        distinct(snapshot, func(b *domain.Business) string { return b.State }),
		Cities:        distinct(snapshot, func(b *domain.Business) string { return b.City }),
		RatingOptions: ratingOptions,
	}, nil
}

func distinct(snapshot []domain.Business, field func(*domain.Business) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range snapshot {
		v := field(&snapshot[i])
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
