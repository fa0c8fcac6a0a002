// Package core defines the shared language of the delivery system.
//
// This package contains:
//   - Catalog entities (Restaurant, Dish, Price)
//   - Service interfaces (CatalogReader, CatalogWriter, Store)
//   - Sentinel errors shared by the store and its callers
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
