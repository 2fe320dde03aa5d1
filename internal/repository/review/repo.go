package review

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vetdirhq/vetdir/internal/domain"
)

const reviewKeyPrefix = domain.KeyPrefix + "review:"

// store is the consumer interface for reviews (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo aggregates review ratings on demand. Ratings are always computed from
// live review state, never from a cached column, so a deactivated review is
// reflected by the very next search.
type Repo struct {
	store store
}

// New creates a review repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Add stores a review.
func (r *Repo) Add(ctx context.Context, rev *domain.Review) error {
	key := reviewKey(rev.BusinessID, rev.ID)
	fields := map[string]string{
		"rating":     strconv.Itoa(rev.Rating),
		"active":     formatBool(rev.Active),
		"created_at": rev.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Summary returns the live rating aggregate for one business.
func (r *Repo) Summary(ctx context.Context, businessID int64) (domain.RatingSummary, error) {
	summaries, err := r.summaries(ctx, reviewKeyPrefix+strconv.FormatInt(businessID, 10)+":*")
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return summaries[businessID], nil
}

// Summaries returns live rating aggregates for all businesses in one pass,
// keyed by business ID. Businesses without active reviews are absent; callers
// treat absence as the zero summary.
func (r *Repo) Summaries(ctx context.Context) (map[int64]domain.RatingSummary, error) {
	return r.summaries(ctx, reviewKeyPrefix+"*")
}

func (r *Repo) summaries(ctx context.Context, pattern string) (map[int64]domain.RatingSummary, error) {
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan reviews: %w", err)
	}
	if len(keys) == 0 {
		return map[int64]domain.RatingSummary{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}

	sums := make(map[int64]int)
	counts := make(map[int64]int)
	for i, m := range hashes {
		if len(m) == 0 || m["active"] != "1" {
			continue
		}
		businessID, ok := businessIDFromKey(keys[i])
		if !ok {
			continue
		}
		rating, err := strconv.Atoi(m["rating"])
		if err != nil || rating < 1 || rating > 5 {
			continue
		}
		sums[businessID] += rating
		counts[businessID]++
	}

	out := make(map[int64]domain.RatingSummary, len(counts))
	for id, count := range counts {
		avg := float64(sums[id]) / float64(count)
		out[id] = domain.RatingSummary{
			Average: math.Round(avg*10) / 10,
			Count:   count,
		}
	}
	return out, nil
}

func reviewKey(businessID, reviewID int64) string {
	return reviewKeyPrefix + strconv.FormatInt(businessID, 10) + ":" + strconv.FormatInt(reviewID, 10)
}

func businessIDFromKey(key string) (int64, bool) {
	rest, ok := strings.CutPrefix(key, reviewKeyPrefix)
	if !ok {
		return 0, false
	}
	bizStr, _, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(bizStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
