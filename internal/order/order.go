// Package order renders confirmations for placed orders.
// Orders are printed, never stored.
package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leapstack-labs/delivery/pkg/core"
)

// DishReader looks up a dish by id.
type DishReader interface {
	GetDish(ctx context.Context, dishID int64) (*core.Dish, error)
}

// Confirmation is the outcome of a confirmed order.
type Confirmation struct {
	Reference uuid.UUID  `json:"reference"`
	DishID    int64      `json:"dish_id"`
	DishName  string     `json:"dish_name"`
	Price     core.Price `json:"price"`
}

// Message returns the human-readable confirmation line.
func (c *Confirmation) Message() string {
	return fmt.Sprintf("Você pediu %s por R$%s. Pedido confirmado!", c.DishName, c.Price)
}

// Confirmer reads the chosen dish back from the store and builds a Confirmation.
type Confirmer struct {
	dishes DishReader
	newRef func() uuid.UUID
}

// NewConfirmer creates a Confirmer backed by the given store.
func NewConfirmer(dishes DishReader) *Confirmer {
	return &Confirmer{dishes: dishes, newRef: uuid.New}
}

// Confirm looks up dishID and returns its confirmation.
// A missing dish yields an error wrapping core.ErrNotFound.
func (c *Confirmer) Confirm(ctx context.Context, dishID int64) (*Confirmation, error) {
	dish, err := c.dishes.GetDish(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	return &Confirmation{
		Reference: c.newRef(),
		DishID:    dish.ID,
		DishName:  dish.Name,
		Price:     dish.Price,
	}, nil
}
