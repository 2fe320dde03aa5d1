package search

import (
	"context"
	"time"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/membership"
)

// --- Mocks ---

type mockStore struct {
	businesses []domain.Business
	categories []domain.Category
	listErr    error
}

func (m *mockStore) ListApproved(_ context.Context) ([]domain.Business, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	approved := make([]domain.Business, 0, len(m.businesses))
	for _, b := range m.businesses {
		if b.Searchable() {
			approved = append(approved, b)
		}
	}
	return approved, nil
}

func (m *mockStore) Categories(_ context.Context) ([]domain.Category, error) {
	return m.categories, nil
}

type mockRatings struct {
	summaries map[int64]domain.RatingSummary
	err       error
}

func (m *mockRatings) Summaries(_ context.Context) (map[int64]domain.RatingSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.summaries == nil {
		return map[int64]domain.RatingSummary{}, nil
	}
	return m.summaries, nil
}

type mockGeocoder struct {
	point  geo.Point
	err    error
	calls  int
	waitFn func(ctx context.Context) error
}

func (m *mockGeocoder) Geocode(ctx context.Context, _ string) (geo.Point, error) {
	m.calls++
	if m.waitFn != nil {
		if err := m.waitFn(ctx); err != nil {
			return geo.Point{}, err
		}
	}
	return m.point, m.err
}

// --- Fixtures ---

var fixtureEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type bizOpt func(*domain.Business)

func biz(id int64, name string, opts ...bizOpt) domain.Business {
	b := domain.Business{
		ID:        id,
		Name:      name,
		Status:    domain.StatusApproved,
		OwnerTier: membership.Member,
		CreatedAt: fixtureEpoch.Add(time.Duration(id) * time.Hour),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func at(lat, lng float64) bizOpt {
	return func(b *domain.Business) { b.Location = &geo.Point{Lat: lat, Lng: lng} }
}

func tier(t membership.Tier) bizOpt {
	return func(b *domain.Business) { b.OwnerTier = t }
}

func status(s domain.Status) bizOpt {
	return func(b *domain.Business) { b.Status = s }
}

func inCity(city, state string) bizOpt {
	return func(b *domain.Business) { b.City, b.State = city, state }
}

func withCategories(ids ...int64) bizOpt {
	return func(b *domain.Business) { b.CategoryIDs = ids }
}

func featured() bizOpt {
	return func(b *domain.Business) { b.Featured = true }
}

func newService(store *mockStore, ratings *mockRatings, geocoder Geocoder) *Service {
	return New(store, ratings, geocoder, nil)
}
