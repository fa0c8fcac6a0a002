package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/delivery/internal/cli/output"
	"github.com/leapstack-labs/delivery/internal/seed"
	"github.com/leapstack-labs/delivery/pkg/core"
)

// SeedOutput is the JSON output of the seed command.
type SeedOutput struct {
	RestaurantsCreated int               `json:"restaurants_created"`
	DishesCreated      int               `json:"dishes_created"`
	Skipped            []SkippedDish     `json:"skipped"`
	Totals             core.CatalogStats `json:"totals"`
}

// SkippedDish is a seed dish whose restaurant was not found.
type SkippedDish struct {
	Restaurant string `json:"restaurant"`
	Name       string `json:"name"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Ensure the baseline catalog exists",
		Long: `Create the catalog tables if needed and insert the baseline restaurants
and dishes. Rows that already exist are left untouched, so running seed
repeatedly is safe.

Use --seed-file to load a YAML catalog instead of the built-in baseline.`,
		Example: `  # Seed the default database
  delivery seed

  # Seed from a custom catalog and print JSON
  delivery seed --seed-file catalog.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := runSeeder(cmd, cc)
	if err != nil {
		return err
	}

	stats, err := cc.Store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(seedJSON(res, stats))
	}

	r.Header("Catálogo")
	r.Printf("Restaurantes criados: %d (total %d)\n", res.RestaurantsCreated, stats.Restaurants)
	r.Printf("Pratos criados: %d (total %d)\n", res.DishesCreated, stats.Dishes)
	for _, d := range res.SkippedDishes {
		r.Warning("Prato ignorado: " + d.Name + " (restaurante desconhecido: " + d.Restaurant + ")")
	}
	r.Muted("Banco de dados: " + cc.Store.Path())
	return nil
}

func seedJSON(res *seed.Result, stats *core.CatalogStats) SeedOutput {
	out := SeedOutput{
		RestaurantsCreated: res.RestaurantsCreated,
		DishesCreated:      res.DishesCreated,
		Skipped:            make([]SkippedDish, 0, len(res.SkippedDishes)),
		Totals:             *stats,
	}
	for _, d := range res.SkippedDishes {
		out.Skipped = append(out.Skipped, SkippedDish{Restaurant: d.Restaurant, Name: d.Name})
	}
	return out
}
