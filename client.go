package vetdir

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vetdirhq/vetdir/internal/db"
	dbRedis "github.com/vetdirhq/vetdir/internal/db/redis"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	businessrepo "github.com/vetdirhq/vetdir/internal/repository/business"
	reviewrepo "github.com/vetdirhq/vetdir/internal/repository/review"
	searchuc "github.com/vetdirhq/vetdir/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	distanceStrategy string
	readinessTimeout time.Duration
	logger           *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithUsername sets the Redis ACL username.
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithDB selects a logical Redis database.
func WithDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithDistanceStrategy selects the distance formula: "haversine" (default)
// or "cosines".
func WithDistanceStrategy(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.distanceStrategy = name
	})
}

// WithReadinessTimeout bounds the initial wait for the database. Default 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// Client is the vetdir SDK entry point.
type Client struct {
	store      db.Store
	searchSvc  *searchuc.Service
	bizRepo    *businessrepo.Repo
	reviewRepo *reviewrepo.Repo
}

// New creates a vetdir Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("vetdir: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("vetdir: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("vetdir: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bizRepo := businessrepo.New(store)
	reviewRepo := reviewrepo.New(store)

	searchSvc := searchuc.New(bizRepo, reviewRepo, nil, logger).
		WithDistanceCalculator(geo.NewCalculator(cfg.distanceStrategy))

	return &Client{
		store:      store,
		searchSvc:  searchSvc,
		bizRepo:    bizRepo,
		reviewRepo: reviewRepo,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Businesses returns the business management service.
func (c *Client) Businesses() *BusinessService {
	return &BusinessService{repo: c.bizRepo}
}

// Reviews returns the review service.
func (c *Client) Reviews() *ReviewService {
	return &ReviewService{repo: c.reviewRepo}
}

// Search runs a business search over the current store state.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	res, err := c.searchSvc.Search(ctx, req.toRaw())
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return searchResultFromDomain(&res), nil
}

// Autocomplete returns prefix suggestions for a partial query.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	out, err := c.searchSvc.Autocomplete(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	suggestions := make([]Suggestion, len(out))
	for i, s := range out {
		suggestions[i] = Suggestion{
			Type:       s.Type,
			Text:       s.Text,
			Subtitle:   s.Subtitle,
			Value:      s.Value,
			CategoryID: s.CategoryID,
		}
	}
	return suggestions, nil
}
