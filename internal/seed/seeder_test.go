package seed

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/delivery/internal/state"
	"github.com/leapstack-labs/delivery/internal/testutil"
	"github.com/leapstack-labs/delivery/pkg/core"
)

func openStore(t *testing.T) *state.SQLiteStore {
	t.Helper()
	store := state.NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.EnsureSchema(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// snapshot captures the catalog as comparable name sets.
type snapshot struct {
	restaurants []string
	dishes      []string // "<restaurant>/<dish>"
}

func takeSnapshot(t *testing.T, store *state.SQLiteStore) snapshot {
	t.Helper()
	ctx := context.Background()

	restaurants, err := store.ListRestaurants(ctx)
	require.NoError(t, err)

	var snap snapshot
	for _, r := range restaurants {
		snap.restaurants = append(snap.restaurants, r.Name)
		dishes, err := store.ListDishes(ctx, r.ID)
		require.NoError(t, err)
		for _, d := range dishes {
			snap.dishes = append(snap.dishes, r.Name+"/"+d.Name)
		}
	}
	sort.Strings(snap.restaurants)
	sort.Strings(snap.dishes)
	return snap
}

func TestSeeder_Baseline(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	res, err := New(store, testutil.NewTestLogger(t)).SeedBaseline(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RestaurantsCreated)
	assert.Equal(t, 4, res.DishesCreated)
	assert.Empty(t, res.SkippedDishes)

	restaurants, err := store.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Pizzaria", restaurants[0].Name)
	assert.Equal(t, "Casa de Sushi", restaurants[1].Name)

	pizza, err := store.ListDishes(ctx, restaurants[0].ID)
	require.NoError(t, err)
	require.Len(t, pizza, 2)
	assert.Equal(t, "Pizza de queijo", pizza[0].Name)
	assert.Equal(t, "25.00", pizza[0].Price.String())
	assert.Equal(t, "Pizza de calabresa", pizza[1].Name)
	assert.Equal(t, "30.00", pizza[1].Price.String())

	sushi, err := store.ListDishes(ctx, restaurants[1].ID)
	require.NoError(t, err)
	require.Len(t, sushi, 2)
	assert.Equal(t, "Sushi Combo", sushi[0].Name)
	assert.Equal(t, "40.00", sushi[0].Price.String())
	assert.Equal(t, "Temaki Salmão", sushi[1].Name)
	assert.Equal(t, "20.00", sushi[1].Price.String())
}

func TestSeeder_Idempotent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	seeder := New(store, testutil.NewTestLogger(t))

	_, err := seeder.SeedBaseline(ctx)
	require.NoError(t, err)
	first := takeSnapshot(t, store)
	firstStats, err := store.Stats(ctx)
	require.NoError(t, err)

	// Schema creation and seeding again, as a second process start would do.
	require.NoError(t, store.EnsureSchema(ctx))
	res, err := seeder.SeedBaseline(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.RestaurantsCreated)
	assert.Zero(t, res.DishesCreated)

	second := takeSnapshot(t, store)
	secondStats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
	assert.Equal(t, 2, secondStats.Restaurants)
	assert.Equal(t, 4, secondStats.Dishes)
}

func TestSeeder_DuplicatesInOneCatalog(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	c := &Catalog{
		Restaurants: []string{"Pizzaria", "Pizzaria"},
		Dishes: []DishSeed{
			{Restaurant: "Pizzaria", Name: "Pizza de queijo", Price: 2500},
			{Restaurant: "Pizzaria", Name: "Pizza de queijo", Price: 2700},
		},
	}

	res, err := New(store, nil).Seed(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RestaurantsCreated)
	assert.Equal(t, 1, res.DishesCreated)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.CatalogStats{Restaurants: 1, Dishes: 1}, *stats)
}

func TestSeeder_ExistingRestaurantKeepsID(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := store.UpsertRestaurant(ctx, "Casa de Sushi")
	require.NoError(t, err)

	_, err = New(store, nil).SeedBaseline(ctx)
	require.NoError(t, err)

	restaurants, err := store.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Casa de Sushi", restaurants[0].Name, "pre-existing row keeps its id")

	sushi, err := store.ListDishes(ctx, restaurants[0].ID)
	require.NoError(t, err)
	assert.Len(t, sushi, 2)
}

func TestSeeder_SkipsUnknownRestaurant(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	logger, logs := testutil.NewCapturingLogger()

	c := &Catalog{
		Restaurants: []string{"Pizzaria"},
		Dishes: []DishSeed{
			{Restaurant: "Pizzaria", Name: "Pizza de queijo", Price: 2500},
			{Restaurant: "Churrascaria", Name: "Picanha", Price: 6000},
		},
	}

	res, err := New(store, logger).Seed(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DishesCreated)
	require.Len(t, res.SkippedDishes, 1)
	assert.Equal(t, "Picanha", res.SkippedDishes[0].Name)
	assert.Contains(t, logs.String(), "skipping dish with unknown restaurant")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Dishes)
}

func TestSeeder_ReferentialIntegrity(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := New(store, nil).SeedBaseline(ctx)
	require.NoError(t, err)

	restaurants, err := store.ListRestaurants(ctx)
	require.NoError(t, err)
	known := map[int64]bool{}
	for _, r := range restaurants {
		known[r.ID] = true
	}

	for id := int64(1); id <= 4; id++ {
		dish, err := store.GetDish(ctx, id)
		require.NoError(t, err)
		assert.True(t, known[dish.RestaurantID], "dish %q points at missing restaurant %d", dish.Name, dish.RestaurantID)
	}
}

func TestSeeder_StorageErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := state.NewSQLiteStoreFromDB(db, nil)
	defer func() { _ = store.Close() }()

	boom := errors.New("database is locked")
	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs("Pizzaria").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs("Casa de Sushi").
		WillReturnError(boom)

	_, err = New(store, nil).SeedBaseline(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Casa de Sushi")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeeder_ResolvesIDsAfterInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := state.NewSQLiteStoreFromDB(db, nil)
	defer func() { _ = store.Close() }()

	c := &Catalog{
		Restaurants: []string{"Pizzaria"},
		Dishes:      []DishSeed{{Restaurant: "Pizzaria", Name: "Pizza de queijo", Price: 2500}},
	}

	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs("Pizzaria").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, name FROM restaurants").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(17), "Pizzaria"))
	mock.ExpectExec("INSERT INTO dishes").
		WithArgs(int64(17), "Pizza de queijo", int64(2500)).
		WillReturnResult(sqlmock.NewResult(3, 1))

	res, err := New(store, nil).Seed(context.Background(), c)
	require.NoError(t, err)
	assert.Zero(t, res.RestaurantsCreated)
	assert.Equal(t, 1, res.DishesCreated)
	require.NoError(t, mock.ExpectationsWereMet())
}
