package business

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vetdirhq/vetdir/internal/domain"
)

const (
	businessKeyPrefix = domain.KeyPrefix + "business:"
	categoryKeyPrefix = domain.KeyPrefix + "category:"
)

// store is the consumer interface for business records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads and writes business projections. Search treats it as the
// entity store boundary: reads return an immutable snapshot per call.
type Repo struct {
	store store
}

// New creates a business repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a business by ID.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Business, error) {
	key := businessKeyPrefix + strconv.FormatInt(id, 10)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Business{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domain.Business{}, domain.ErrBusinessNotFound
	}
	return parseHashFields(id, m), nil
}

// Upsert stores a business projection.
func (r *Repo) Upsert(ctx context.Context, b *domain.Business) error {
	key := businessKeyPrefix + strconv.FormatInt(b.ID, 10)
	if err := r.store.HSet(ctx, key, buildHashFields(b)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Delete removes a business projection.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	key := businessKeyPrefix + strconv.FormatInt(id, 10)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrBusinessNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// ListApproved returns the snapshot of approved businesses, ordered by ID so
// repeated identical searches see identical input order.
func (r *Repo) ListApproved(ctx context.Context) ([]domain.Business, error) {
	keys, err := r.store.Scan(ctx, businessKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan businesses: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch businesses: %w", err)
	}

	out := make([]domain.Business, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		id, err := idFromKey(keys[i])
		if err != nil {
			continue
		}
		b := parseHashFields(id, m)
		if b.Searchable() {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Categories returns all active categories, ordered by name.
func (r *Repo) Categories(ctx context.Context) ([]domain.Category, error) {
	keys, err := r.store.Scan(ctx, categoryKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	out := make([]domain.Category, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 || m["active"] != "1" {
			continue
		}
		id, err := idFromKey(keys[i])
		if err != nil {
			continue
		}
		out = append(out, domain.Category{ID: id, Name: m["name"], Active: true})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpsertCategory stores a category.
func (r *Repo) UpsertCategory(ctx context.Context, c *domain.Category) error {
	key := categoryKeyPrefix + strconv.FormatInt(c.ID, 10)
	fields := map[string]string{"name": c.Name, "active": formatBool(c.Active)}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

func idFromKey(key string) (int64, error) {
	raw, ok := strings.CutPrefix(key, businessKeyPrefix)
	if !ok {
		raw, ok = strings.CutPrefix(key, categoryKeyPrefix)
		if !ok {
			return 0, errors.New("unexpected key shape: " + key)
		}
	}
	return strconv.ParseInt(raw, 10, 64)
}
