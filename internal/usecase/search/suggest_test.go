package search

import (
	"context"
	"errors"
	"testing"

	"github.com/vetdirhq/vetdir/internal/domain"
)

func TestAutocomplete_PrefixMatchesBusinessesThenCategories(t *testing.T) {
	store := &mockStore{
		businesses: []domain.Business{
			biz(1, "Plumbing Pros", inCity("Dallas", "TX")),
			biz(2, "Roofing Experts"),
			biz(3, "Plumb Perfect"),
		},
		categories: []domain.Category{
			{ID: 10, Name: "Plumbing", Active: true},
			{ID: 11, Name: "Roofing", Active: true},
		},
	}
	svc := newService(store, &mockRatings{}, nil)

	got, err := svc.Autocomplete(context.Background(), "plum")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("suggestions = %d, want 3: %+v", len(got), got)
	}
	if got[0].Type != "business" || got[1].Type != "business" {
		t.Errorf("businesses must come first: %+v", got)
	}
	if got[2].Type != "category" || got[2].CategoryID != 10 {
		t.Errorf("category suggestion = %+v", got[2])
	}
	if got[0].Subtitle != "Dallas, TX" {
		t.Errorf("subtitle = %q, want city, state", got[0].Subtitle)
	}
}

func TestAutocomplete_Limits(t *testing.T) {
	var bizzes []domain.Business
	for i := int64(1); i <= 12; i++ {
		bizzes = append(bizzes, biz(i, "Alpha Co"))
	}
	var cats []domain.Category
	for i := int64(1); i <= 6; i++ {
		cats = append(cats, domain.Category{ID: i, Name: "Alpha Service", Active: true})
	}
	svc := newService(&mockStore{businesses: bizzes, categories: cats}, &mockRatings{}, nil)

	got, err := svc.Autocomplete(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	var nBiz, nCat int
	for _, s := range got {
		switch s.Type {
		case "business":
			nBiz++
		case "category":
			nCat++
		}
	}
	if nBiz != maxBusinessSuggestions || nCat != maxCategorySuggestions {
		t.Errorf("got %d businesses / %d categories, want %d / %d",
			nBiz, nCat, maxBusinessSuggestions, maxCategorySuggestions)
	}
}

func TestAutocomplete_EmptyQuery(t *testing.T) {
	svc := newService(&mockStore{}, &mockRatings{}, nil)

	got, err := svc.Autocomplete(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if got != nil {
		t.Errorf("got = %v, want nil for blank query", got)
	}
}

func TestSuggest_PopularAndFeaturedWithoutLocation(t *testing.T) {
	store := &mockStore{
		businesses: []domain.Business{
			biz(1, "A", withCategories(10)),
			biz(2, "B", withCategories(10, 11)),
			biz(3, "C", withCategories(11), featured()),
		},
		categories: []domain.Category{
			{ID: 10, Name: "Plumbing", Active: true},
			{ID: 11, Name: "Roofing", Active: true},
		},
	}
	ratings := &mockRatings{summaries: map[int64]domain.RatingSummary{
		3: {Average: 4.2, Count: 7},
	}}
	svc := newService(store, ratings, nil)

	got, err := svc.Suggest(context.Background(), "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got.PopularCategories) != 2 {
		t.Fatalf("popular = %+v, want both categories", got.PopularCategories)
	}
	if got.PopularCategories[0].ID != 10 || got.PopularCategories[0].Count != 2 {
		t.Errorf("top category = %+v, want plumbing with count 2", got.PopularCategories[0])
	}
	if len(got.FeaturedBusinesses) != 1 || got.FeaturedBusinesses[0].ID != 3 {
		t.Errorf("featured = %+v, want [3]", got.FeaturedBusinesses)
	}
	if got.FeaturedBusinesses[0].AverageRating != 4.2 {
		t.Errorf("featured rating = %v, want live summary", got.FeaturedBusinesses[0].AverageRating)
	}
	if got.LocalCategories != nil || got.NearbyBusinesses != nil {
		t.Error("local blocks must be absent without a location")
	}
}

func TestSuggest_LocalBlocksWithCoordinates(t *testing.T) {
	store := &mockStore{
		businesses: []domain.Business{
			biz(1, "Dallas Plumber", at(dallas.Lat, dallas.Lng), withCategories(10), featured()),
			biz(2, "Plano Roofer", at(plano.Lat, plano.Lng), withCategories(11)),
			biz(3, "Houston Electric", at(houston.Lat, houston.Lng), withCategories(12), featured()),
		},
		categories: []domain.Category{
			{ID: 10, Name: "Plumbing", Active: true},
			{ID: 11, Name: "Roofing", Active: true},
			{ID: 12, Name: "Electrical", Active: true},
		},
	}
	svc := newService(store, &mockRatings{}, nil)

	got, err := svc.Suggest(context.Background(), "32.7767,-96.7970")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	// Dallas and Plano are within 25mi; Houston is not.
	if len(got.LocalCategories) != 2 {
		t.Fatalf("local categories = %+v, want plumbing and roofing", got.LocalCategories)
	}
	for _, c := range got.LocalCategories {
		if c.ID == 12 {
			t.Errorf("houston category leaked into local block: %+v", got.LocalCategories)
		}
	}
	// Only the Dallas business is featured within 10mi.
	if len(got.NearbyBusinesses) != 1 || got.NearbyBusinesses[0].ID != 1 {
		t.Fatalf("nearby = %+v, want [1]", got.NearbyBusinesses)
	}
	if got.NearbyBusinesses[0].DistanceMiles == nil {
		t.Error("nearby business missing distance")
	}
}

func TestSuggest_GeocodeFailureSkipsLocalBlocks(t *testing.T) {
	store := &mockStore{
		businesses: []domain.Business{biz(1, "A", withCategories(10), featured())},
		categories: []domain.Category{{ID: 10, Name: "Plumbing", Active: true}},
	}
	gc := &mockGeocoder{err: domain.ErrGeocodeUnavailable}
	svc := newService(store, &mockRatings{}, gc)

	got, err := svc.Suggest(context.Background(), "Dallas, TX")
	if err != nil {
		t.Fatalf("Suggest must not fail on geocoder error: %v", err)
	}
	if got.LocalCategories != nil || got.NearbyBusinesses != nil {
		t.Error("local blocks must be absent when the location cannot resolve")
	}
	if len(got.PopularCategories) != 1 || len(got.FeaturedBusinesses) != 1 {
		t.Error("global blocks must survive geocode failure")
	}
}

func TestSuggest_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("redis down")
	svc := newService(&mockStore{listErr: boom}, &mockRatings{}, nil)

	if _, err := svc.Suggest(context.Background(), ""); !errors.Is(err, boom) {
		t.Errorf("err = %v, want store error", err)
	}
}

func TestFacets(t *testing.T) {
	store := &mockStore{
		businesses: []domain.Business{
			biz(1, "A", inCity("Dallas", "TX")),
			biz(2, "B", inCity("Austin", "TX")),
			biz(3, "C", inCity("Tulsa", "OK")),
		},
		categories: []domain.Category{{ID: 10, Name: "Plumbing", Active: true}},
	}
	svc := newService(store, &mockRatings{}, nil)

	got, err := svc.Facets(context.Background())
	if err != nil {
		t.Fatalf("Facets: %v", err)
	}
	if len(got.States) != 2 || got.States[0] != "OK" || got.States[1] != "TX" {
		t.Errorf("states = %v, want sorted distinct [OK TX]", got.States)
	}
	if len(got.Cities) != 3 {
		t.Errorf("cities = %v", got.Cities)
	}
	if len(got.RatingOptions) != 4 || got.RatingOptions[0].Value != 4.5 {
		t.Errorf("rating options = %+v", got.RatingOptions)
	}
}
