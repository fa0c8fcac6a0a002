package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/delivery/internal/cli/output"
	"github.com/leapstack-labs/delivery/pkg/core"
)

// RestaurantMenu is a restaurant with its dishes, as printed by the catalog command.
type RestaurantMenu struct {
	core.Restaurant
	Dishes []core.Dish `json:"dishes"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"menu"},
		Short:   "List restaurants and their dishes",
		Long: `Print every restaurant and dish in the catalog, in id order.

The catalog is read as-is; run 'delivery seed' first on a fresh database.`,
		Example: `  # Show the catalog as a table
  delivery catalog

  # Machine-readable output
  delivery catalog --output json`,
		Args: cobra.NoArgs,
		RunE: runCatalog,
	}
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	restaurants, err := cc.Store.ListRestaurants(ctx)
	if err != nil {
		return err
	}

	menus := make([]RestaurantMenu, 0, len(restaurants))
	for _, rest := range restaurants {
		dishes, err := cc.Store.ListDishes(ctx, rest.ID)
		if err != nil {
			return err
		}
		if dishes == nil {
			dishes = []core.Dish{}
		}
		menus = append(menus, RestaurantMenu{Restaurant: rest, Dishes: dishes})
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(menus)
	}

	if len(menus) == 0 {
		r.Muted("Catálogo vazio. Execute 'delivery seed' para criar o catálogo inicial.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Restaurante", "#", "Prato", "Preço (R$)"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Restaurante", AutoMerge: true},
		{Name: "Preço (R$)", Align: text.AlignRight},
	})
	for _, m := range menus {
		if len(m.Dishes) == 0 {
			t.AppendRow(table.Row{m.Name, "-", "(sem pratos)", ""})
			continue
		}
		for i, d := range m.Dishes {
			t.AppendRow(table.Row{m.Name, i + 1, d.Name, d.Price.String()})
		}
	}
	t.Render()
	return nil
}
