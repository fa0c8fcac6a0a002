// Package seed ensures the baseline catalog exists in the store.
//
// Seeding is idempotent: every write is an insert-or-skip keyed on the
// entity's uniqueness constraint, so running it any number of times leaves
// the catalog in the same state as running it once.
package seed

import "github.com/leapstack-labs/delivery/pkg/core"

// Catalog is a set of restaurants and dishes to ensure.
// Dishes reference restaurants by name because ids are assigned by the store.
type Catalog struct {
	Restaurants []string   `yaml:"restaurants"`
	Dishes      []DishSeed `yaml:"dishes"`
}

// DishSeed describes one dish of a seed catalog.
type DishSeed struct {
	Restaurant string     `yaml:"restaurant"`
	Name       string     `yaml:"name"`
	Price      core.Price `yaml:"-"`
}

// Baseline returns the catalog every fresh deployment must contain.
func Baseline() *Catalog {
	return &Catalog{
		Restaurants: []string{"Pizzaria", "Casa de Sushi"},
		Dishes: []DishSeed{
			{Restaurant: "Pizzaria", Name: "Pizza de queijo", Price: 2500},
			{Restaurant: "Pizzaria", Name: "Pizza de calabresa", Price: 3000},
			{Restaurant: "Casa de Sushi", Name: "Sushi Combo", Price: 4000},
			{Restaurant: "Casa de Sushi", Name: "Temaki Salmão", Price: 2000},
		},
	}
}
