package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/delivery/internal/cli/config"
	clitestutil "github.com/leapstack-labs/delivery/internal/cli/testutil"
	"github.com/leapstack-labs/delivery/internal/testutil"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		use  string
	}{
		{"order", NewOrderCommand(), "order"},
		{"seed", NewSeedCommand(), "seed"},
		{"catalog", NewCatalogCommand(), "catalog"},
		{"version", NewVersionCommand("1.2.3"), "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotEmpty(t, tt.cmd.Long)
		})
	}

	assert.Contains(t, NewCatalogCommand().Aliases, "menu")
}

// runCommand executes cmd with cfg in its context and returns captured stdout.
func runCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs([]string{})

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "entrega.db")
	cfg.OutputFormat = "text"
	return cfg
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, NewVersionCommand("1.2.3"), config.Default(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "delivery v1.2.3")
}

func TestSeedCommand_Idempotent(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCommand(t, NewSeedCommand(), cfg, "")
	require.NoError(t, err)
	clitestutil.AssertContains(t, out, "Restaurantes criados: 2 (total 2)")
	clitestutil.AssertContains(t, out, "Pratos criados: 4 (total 4)")

	out, err = runCommand(t, NewSeedCommand(), cfg, "")
	require.NoError(t, err)
	clitestutil.AssertContains(t, out, "Restaurantes criados: 0 (total 2)")
	clitestutil.AssertContains(t, out, "Pratos criados: 0 (total 4)")
}

func TestSeedCommand_JSONWithSeedFile(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	cfg := testConfig(t)
	cfg.OutputFormat = "json"
	cfg.SeedFile = filepath.Join(dir, "seeds", "catalog.yaml")

	out, err := runCommand(t, NewSeedCommand(), cfg, "")
	require.NoError(t, err)
	clitestutil.AssertNoANSI(t, out)

	var got SeedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.RestaurantsCreated)
	assert.Equal(t, 2, got.DishesCreated)
	assert.Equal(t, []SkippedDish{{Restaurant: "Fantasma", Name: "Sopa"}}, got.Skipped)
	assert.Equal(t, 2, got.Totals.Dishes)
}

func TestCatalogCommand_EmptyDatabase(t *testing.T) {
	out, err := runCommand(t, NewCatalogCommand(), testConfig(t), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Catálogo vazio")
}

func TestCatalogCommand_TableAndJSON(t *testing.T) {
	cfg := testConfig(t)
	_, err := runCommand(t, NewSeedCommand(), cfg, "")
	require.NoError(t, err)

	out, err := runCommand(t, NewCatalogCommand(), cfg, "")
	require.NoError(t, err)
	for _, want := range []string{"Pizzaria", "Pizza de calabresa", "30.00", "Casa de Sushi", "Temaki Salmão"} {
		assert.Contains(t, out, want)
	}

	cfg.OutputFormat = "json"
	out, err = runCommand(t, NewCatalogCommand(), cfg, "")
	require.NoError(t, err)

	var menus []RestaurantMenu
	require.NoError(t, json.Unmarshal([]byte(out), &menus))
	require.Len(t, menus, 2)
	assert.Equal(t, "Pizzaria", menus[0].Name)
	require.Len(t, menus[0].Dishes, 2)
	assert.Equal(t, int64(3000), menus[0].Dishes[1].Price.Cents())
}

func TestOrderCommand_Confirms(t *testing.T) {
	out, err := runCommand(t, NewOrderCommand(), testConfig(t), "1\n2\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Você pediu Pizza de calabresa por R$30.00. Pedido confirmado!")
}

func TestOrderCommand_InMemoryDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabasePath = ":memory:"

	out, err := runCommand(t, NewOrderCommand(), cfg, "2\n2\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Você pediu Temaki Salmão por R$20.00. Pedido confirmado!")
}

func TestOrderCommand_EndOfInputExitsCleanly(t *testing.T) {
	out, err := runCommand(t, NewOrderCommand(), testConfig(t), "abc\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Erro: Digite um número válido!")
	assert.NotContains(t, out, "Pedido confirmado")
}

func TestOrderCommand_BadSeedFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := runCommand(t, NewOrderCommand(), cfg, "1\n1\n")
	require.Error(t, err)
}
