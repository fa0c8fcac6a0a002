// Package state provides catalog persistence for delivery using SQLite.
// It owns the schema for restaurants and dishes and enforces their
// uniqueness and referential constraints.
//
// Note: Core types are defined in pkg/core. This package re-exports
// them via type aliases so callers working with the store need a single import.
package state

import (
	"github.com/leapstack-labs/delivery/pkg/core"
)

type (
	// Store is an alias for core.Store.
	Store = core.Store

	// Restaurant is an alias for core.Restaurant.
	Restaurant = core.Restaurant

	// Dish is an alias for core.Dish.
	Dish = core.Dish

	// Price is an alias for core.Price.
	Price = core.Price

	// CatalogStats is an alias for core.CatalogStats.
	CatalogStats = core.CatalogStats
)

// Sentinel errors re-exported from core for errors.Is checks.
var (
	ErrNotFound      = core.ErrNotFound
	ErrNegativePrice = core.ErrNegativePrice
)

var _ Store = (*SQLiteStore)(nil)
