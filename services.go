package vetdir

import (
	"context"
	"errors"
	"fmt"

	"github.com/vetdirhq/vetdir/internal/domain"
)

// BusinessService manages directory listings.
type BusinessService struct {
	repo businessWriter
}

// businessWriter is the consumer interface for listing writes (ISP).
type businessWriter interface {
	Get(ctx context.Context, id int64) (domain.Business, error)
	Upsert(ctx context.Context, b *domain.Business) error
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]domain.Category, error)
	UpsertCategory(ctx context.Context, c *domain.Category) error
}

// Upsert creates or replaces a listing.
func (s *BusinessService) Upsert(ctx context.Context, b Business) error {
	if b.ID <= 0 {
		return errors.New("vetdir: business id must be positive")
	}
	if b.Name == "" {
		return errors.New("vetdir: business name is required")
	}
	if b.Status == "" {
		b.Status = string(domain.StatusPending)
	}

	dom := b.toDomain()
	if !dom.Status.IsValid() {
		return fmt.Errorf("vetdir: unknown status %q", b.Status)
	}
	if b.OwnerTier != "" && !dom.OwnerTier.IsValid() {
		return fmt.Errorf("vetdir: unknown owner tier %q", b.OwnerTier)
	}

	if err := s.repo.Upsert(ctx, &dom); err != nil {
		return fmt.Errorf("upsert business: %w", err)
	}
	return nil
}

// Get returns a listing by ID. Returns ErrNotFound when absent.
func (s *BusinessService) Get(ctx context.Context, id int64) (Business, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return Business{}, ErrNotFound
		}
		return Business{}, fmt.Errorf("get business: %w", err)
	}
	return businessFromDomain(&b), nil
}

// Delete removes a listing.
func (s *BusinessService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	return nil
}

// Categories lists active service categories.
func (s *BusinessService) Categories(ctx context.Context) ([]Category, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = Category{ID: c.ID, Name: c.Name, Active: c.Active}
	}
	return out, nil
}

// UpsertCategory creates or replaces a service category.
func (s *BusinessService) UpsertCategory(ctx context.Context, c Category) error {
	if c.ID <= 0 {
		return errors.New("vetdir: category id must be positive")
	}
	if c.Name == "" {
		return errors.New("vetdir: category name is required")
	}
	dom := domain.Category{ID: c.ID, Name: c.Name, Active: c.Active}
	if err := s.repo.UpsertCategory(ctx, &dom); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// ReviewService manages customer reviews.
type ReviewService struct {
	repo reviewWriter
}

// reviewWriter is the consumer interface for review writes (ISP).
type reviewWriter interface {
	Add(ctx context.Context, rev *domain.Review) error
	Summary(ctx context.Context, businessID int64) (domain.RatingSummary, error)
}

// Add stores a review. Ratings feed search results immediately; there is no
// cached average to refresh.
func (s *ReviewService) Add(ctx context.Context, rev Review) error {
	if rev.ID <= 0 || rev.BusinessID <= 0 {
		return errors.New("vetdir: review and business ids must be positive")
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return fmt.Errorf("vetdir: rating must be between 1 and 5, got %d", rev.Rating)
	}
	dom := domain.Review{
		ID:         rev.ID,
		BusinessID: rev.BusinessID,
		Rating:     rev.Rating,
		Active:     rev.Active,
		CreatedAt:  rev.CreatedAt,
	}
	if err := s.repo.Add(ctx, &dom); err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	return nil
}

// Summary returns the live rating aggregate for a business.
func (s *ReviewService) Summary(ctx context.Context, businessID int64) (RatingSummary, error) {
	sum, err := s.repo.Summary(ctx, businessID)
	if err != nil {
		return RatingSummary{}, fmt.Errorf("rating summary: %w", err)
	}
	return RatingSummary{Average: sum.Average, Count: sum.Count}, nil
}
