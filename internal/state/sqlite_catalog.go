package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// --- Read operations ---

// ListRestaurants returns all restaurants in ascending id order.
func (s *SQLiteStore) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var restaurants []Restaurant
	for rows.Next() {
		var r Restaurant
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return restaurants, nil
}

// ListDishes returns the dishes of a restaurant in ascending id order.
// An unknown restaurant yields an empty slice, not an error.
func (s *SQLiteStore) ListDishes(ctx context.Context, restaurantID int64) ([]Dish, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, restaurant_id, name, price_cents FROM dishes WHERE restaurant_id = ? ORDER BY id`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dishes []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Price); err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	return dishes, nil
}

// GetDish retrieves a dish by id.
func (s *SQLiteStore) GetDish(ctx context.Context, dishID int64) (*Dish, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	d := &Dish{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, restaurant_id, name, price_cents FROM dishes WHERE id = ?`,
		dishID,
	).Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dish %d: %w", dishID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	return d, nil
}

// --- Idempotent inserts ---

// UpsertRestaurant inserts a restaurant unless one with the same name exists.
func (s *SQLiteStore) UpsertRestaurant(ctx context.Context, name string) (bool, error) {
	if s.db == nil {
		return false, errNotOpened
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO restaurants (name) VALUES (?) ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert restaurant %q: %w", name, err)
	}

	created, err := rowCreated(result)
	if err != nil {
		return false, err
	}
	s.logger.Debug("upserted restaurant", slog.String("name", name), slog.Bool("created", created))
	return created, nil
}

// UpsertDish inserts a dish unless the restaurant already has one with the same name.
// The restaurant must exist; the foreign key rejects orphans.
func (s *SQLiteStore) UpsertDish(ctx context.Context, restaurantID int64, name string, price Price) (bool, error) {
	if s.db == nil {
		return false, errNotOpened
	}
	if price < 0 {
		return false, fmt.Errorf("dish %q: %w", name, ErrNegativePrice)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO dishes (restaurant_id, name, price_cents) VALUES (?, ?, ?)
		 ON CONFLICT (restaurant_id, name) DO NOTHING`,
		restaurantID, name, price.Cents(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert dish %q: %w", name, err)
	}

	created, err := rowCreated(result)
	if err != nil {
		return false, err
	}
	s.logger.Debug("upserted dish",
		slog.Int64("restaurant_id", restaurantID),
		slog.String("name", name),
		slog.Bool("created", created),
	)
	return created, nil
}

func rowCreated(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
