package vetdir

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vetdirhq/vetdir/internal/domain"
)

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error without a database address")
	}
	if !strings.Contains(err.Error(), "WithRedis") {
		t.Errorf("error %q should point at WithRedis", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithRedis("localhost:6379", "secret"),
		WithUsername("svc"),
		WithDB(2),
		WithDistanceStrategy("cosines"),
		WithReadinessTimeout(3 * time.Second),
	} {
		o.apply(cfg)
	}

	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.addrs)
	}
	if cfg.password != "secret" || cfg.username != "svc" || cfg.db != 2 {
		t.Errorf("credentials = %q/%q/%d", cfg.username, cfg.password, cfg.db)
	}
	if cfg.distanceStrategy != "cosines" {
		t.Errorf("strategy = %q", cfg.distanceStrategy)
	}
	if cfg.readinessTimeout != 3*time.Second {
		t.Errorf("readiness timeout = %v", cfg.readinessTimeout)
	}
}

func TestBusinessConversionRoundTrip(t *testing.T) {
	in := Business{
		ID:               7,
		Name:             "Smith Plumbing",
		Status:           "approved",
		CategoryIDs:      []int64{3},
		Location:         &LatLng{Lat: 32.7767, Lng: -96.797},
		City:             "Dallas",
		State:            "TX",
		Verified:         true,
		OwnerTier:        "veteran",
		MilitaryVerified: true,
		CreatedAt:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	dom := in.toDomain()
	if dom.Status != domain.StatusApproved {
		t.Errorf("status = %q", dom.Status)
	}
	if dom.Location == nil || dom.Location.Lat != 32.7767 {
		t.Errorf("location = %v", dom.Location)
	}
	if !dom.MilitaryOwned() {
		t.Error("veteran tier must be military owned")
	}

	back := businessFromDomain(&dom)
	if back.ID != in.ID || back.Name != in.Name || back.OwnerTier != in.OwnerTier {
		t.Errorf("round trip = %+v", back)
	}
	if back.Location == nil || *back.Location != *in.Location {
		t.Errorf("location round trip = %v", back.Location)
	}
}

func TestBusinessConversion_NoLocation(t *testing.T) {
	dom := (&Business{ID: 1, Name: "A", Status: "pending"}).toDomain()
	if dom.Location != nil {
		t.Error("location must stay nil")
	}
}

// --- Service validation (mocked writers) ---

type mockBusinessWriter struct {
	upserted []domain.Business
	getBiz   domain.Business
	getErr   error
}

func (m *mockBusinessWriter) Get(_ context.Context, _ int64) (domain.Business, error) {
	return m.getBiz, m.getErr
}

func (m *mockBusinessWriter) Upsert(_ context.Context, b *domain.Business) error {
	m.upserted = append(m.upserted, *b)
	return nil
}

func (m *mockBusinessWriter) Delete(_ context.Context, _ int64) error { return nil }

func (m *mockBusinessWriter) Categories(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (m *mockBusinessWriter) UpsertCategory(_ context.Context, _ *domain.Category) error {
	return nil
}

func TestBusinessUpsert_Validation(t *testing.T) {
	w := &mockBusinessWriter{}
	svc := &BusinessService{repo: w}
	ctx := context.Background()

	if err := svc.Upsert(ctx, Business{Name: "no id"}); err == nil {
		t.Error("expected error for missing id")
	}
	if err := svc.Upsert(ctx, Business{ID: 1}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.Upsert(ctx, Business{ID: 1, Name: "A", Status: "bogus"}); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.Upsert(ctx, Business{ID: 1, Name: "A", OwnerTier: "general"}); err == nil {
		t.Error("expected error for unknown tier")
	}
	if len(w.upserted) != 0 {
		t.Fatalf("invalid upserts reached the store: %d", len(w.upserted))
	}

	if err := svc.Upsert(ctx, Business{ID: 1, Name: "A"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(w.upserted) != 1 || w.upserted[0].Status != domain.StatusPending {
		t.Errorf("upserted = %+v, want status defaulted to pending", w.upserted)
	}
}

func TestBusinessGet_NotFound(t *testing.T) {
	svc := &BusinessService{repo: &mockBusinessWriter{getErr: domain.ErrBusinessNotFound}}

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

type mockReviewWriter struct {
	added []domain.Review
}

func (m *mockReviewWriter) Add(_ context.Context, rev *domain.Review) error {
	m.added = append(m.added, *rev)
	return nil
}

func (m *mockReviewWriter) Summary(_ context.Context, _ int64) (domain.RatingSummary, error) {
	return domain.RatingSummary{Average: 4.5, Count: 2}, nil
}

func TestReviewAdd_Validation(t *testing.T) {
	w := &mockReviewWriter{}
	svc := &ReviewService{repo: w}
	ctx := context.Background()

	if err := svc.Add(ctx, Review{ID: 1, BusinessID: 1, Rating: 0}); err == nil {
		t.Error("expected error for rating below 1")
	}
	if err := svc.Add(ctx, Review{ID: 1, BusinessID: 1, Rating: 6}); err == nil {
		t.Error("expected error for rating above 5")
	}
	if err := svc.Add(ctx, Review{ID: 0, BusinessID: 1, Rating: 3}); err == nil {
		t.Error("expected error for missing id")
	}
	if len(w.added) != 0 {
		t.Fatalf("invalid reviews reached the store: %d", len(w.added))
	}

	if err := svc.Add(ctx, Review{ID: 1, BusinessID: 1, Rating: 5, Active: true}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(w.added) != 1 {
		t.Fatal("valid review not stored")
	}
}

func TestReviewSummary(t *testing.T) {
	svc := &ReviewService{repo: &mockReviewWriter{}}

	sum, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Average != 4.5 || sum.Count != 2 {
		t.Errorf("summary = %+v", sum)
	}
}
