package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// Restaurant is a named place that serves dishes.
// IDs are assigned by the store and never reused while the store lives.
type Restaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Dish is a menu entry owned by exactly one restaurant.
// (RestaurantID, Name) is unique; the same name may appear under other restaurants.
type Dish struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	Price        Price  `json:"price"`
}

// CatalogReader is the read side of the catalog.
// Listings are returned in ascending id order.
type CatalogReader interface {
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	ListDishes(ctx context.Context, restaurantID int64) ([]Dish, error)
	GetDish(ctx context.Context, dishID int64) (*Dish, error)
}

// CatalogWriter holds the idempotent insert operations used by seeding.
// Each call is a single insert-or-skip statement keyed on the entity's
// uniqueness constraint; created reports whether a row was written.
type CatalogWriter interface {
	// UpsertRestaurant is keyed on name.
	UpsertRestaurant(ctx context.Context, name string) (created bool, err error)
	// UpsertDish is keyed on (restaurantID, name).
	UpsertDish(ctx context.Context, restaurantID int64, name string, price Price) (created bool, err error)
}

// CatalogStats summarizes row counts in the catalog.
type CatalogStats struct {
	Restaurants int `json:"restaurants"`
	Dishes      int `json:"dishes"`
}
