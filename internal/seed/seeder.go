package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/delivery/pkg/core"
)

// Store is the part of the catalog store the seeder writes through.
type Store interface {
	core.CatalogWriter
	ListRestaurants(ctx context.Context) ([]core.Restaurant, error)
}

// Result reports what a seeding pass changed.
type Result struct {
	RestaurantsCreated int
	DishesCreated      int
	// SkippedDishes lists dishes whose restaurant could not be resolved.
	SkippedDishes []DishSeed
}

// Seeder applies seed catalogs to a store.
type Seeder struct {
	store  Store
	logger *slog.Logger
}

// New creates a Seeder. If logger is nil, a discard logger is used.
func New(store Store, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Seeder{store: store, logger: logger}
}

// Seed ensures every restaurant and dish in c exists.
func (s *Seeder) Seed(ctx context.Context, c *Catalog) (*Result, error) {
	res := &Result{}

	for _, name := range c.Restaurants {
		created, err := s.store.UpsertRestaurant(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to seed restaurant %q: %w", name, err)
		}
		if created {
			res.RestaurantsCreated++
		}
	}

	// Ids are assigned by the store, so resolve names after the inserts.
	restaurants, err := s.store.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve restaurant ids: %w", err)
	}
	ids := make(map[string]int64, len(restaurants))
	for _, r := range restaurants {
		ids[r.Name] = r.ID
	}

	for _, d := range c.Dishes {
		id, ok := ids[d.Restaurant]
		if !ok {
			s.logger.Debug("skipping dish with unknown restaurant",
				slog.String("restaurant", d.Restaurant),
				slog.String("dish", d.Name),
			)
			res.SkippedDishes = append(res.SkippedDishes, d)
			continue
		}

		created, err := s.store.UpsertDish(ctx, id, d.Name, d.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to seed dish %q: %w", d.Name, err)
		}
		if created {
			res.DishesCreated++
		}
	}

	s.logger.Debug("seeded catalog",
		slog.Int("restaurants_created", res.RestaurantsCreated),
		slog.Int("dishes_created", res.DishesCreated),
		slog.Int("dishes_skipped", len(res.SkippedDishes)),
	)

	return res, nil
}

// SeedBaseline ensures the baseline catalog exists.
func (s *Seeder) SeedBaseline(ctx context.Context) (*Result, error) {
	return s.Seed(ctx, Baseline())
}
