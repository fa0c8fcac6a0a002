// Package flow drives the interactive order: pick a restaurant, pick a dish,
// confirm.
//
// The flow is a linear state machine:
//
//	ChooseRestaurant -> ChooseDish -> Confirmed
//	       |                |
//	       +----------------+-------> Aborted
//
// Invalid input is a self-loop on the current state: the user is told what
// was wrong and prompted again, without limit.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/delivery/internal/order"
	"github.com/leapstack-labs/delivery/pkg/core"
)

// State is a step of the selection flow.
type State int

// Flow states.
const (
	ChooseRestaurant State = iota
	ChooseDish
	Confirmed
	Aborted
)

func (s State) String() string {
	switch s {
	case ChooseRestaurant:
		return "choose_restaurant"
	case ChooseDish:
		return "choose_dish"
	case Confirmed:
		return "confirmed"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Confirmed || s == Aborted
}

// Reasons recorded on an aborted outcome.
var (
	ErrEmptyCatalog = errors.New("no restaurants available")
	ErrNoDishes     = errors.New("no dishes available")
)

// Catalog is the read side of the store the flow lists from.
type Catalog interface {
	ListRestaurants(ctx context.Context) ([]core.Restaurant, error)
	ListDishes(ctx context.Context, restaurantID int64) ([]core.Dish, error)
}

// Printer renders menus and notices for the user.
type Printer interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Header(text string)
	Muted(text string)
	Error(text string)
	Warning(text string)
	Success(text string)
}

// Confirmer places the order for a resolved dish.
type Confirmer interface {
	Confirm(ctx context.Context, dishID int64) (*order.Confirmation, error)
}

// Outcome is where a run of the flow ended and what it resolved on the way.
type Outcome struct {
	State        State
	Restaurant   *core.Restaurant
	Dish         *core.Dish
	Confirmation *order.Confirmation
	// Reason explains an Aborted outcome.
	Reason error
	// Rejected holds every input that caused a re-prompt, in order.
	Rejected []*ValidationError
}

// Flow runs one selection session.
type Flow struct {
	catalog   Catalog
	confirmer Confirmer
	input     Input
	r         Printer
	logger    *slog.Logger
}

// New creates a Flow. If logger is nil, a discard logger is used.
func New(catalog Catalog, confirmer Confirmer, input Input, r Printer, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Flow{
		catalog:   catalog,
		confirmer: confirmer,
		input:     input,
		r:         r,
		logger:    logger,
	}
}

// Run drives the flow to a terminal state.
//
// Empty listings and closed input end in Aborted with a nil error. Storage
// failures and a dish that vanished before confirmation are returned as errors.
func (f *Flow) Run(ctx context.Context) (*Outcome, error) {
	o := &Outcome{State: ChooseRestaurant}

	for !o.State.Terminal() {
		var next State
		var err error

		switch o.State {
		case ChooseRestaurant:
			next, err = f.chooseRestaurant(ctx, o)
		case ChooseDish:
			next, err = f.chooseDish(ctx, o)
		default:
			return o, fmt.Errorf("unexpected flow state %s", o.State)
		}

		if errors.Is(err, ErrInputClosed) {
			o.Reason = err
			next, err = Aborted, nil
		}
		if err != nil {
			return o, err
		}

		f.logger.Debug("flow transition",
			slog.String("from", o.State.String()),
			slog.String("to", next.String()),
		)
		o.State = next
	}

	if o.State == Confirmed {
		conf, err := f.confirmer.Confirm(ctx, o.Dish.ID)
		if err != nil {
			return o, err
		}
		o.Confirmation = conf
		f.r.Println("")
		f.r.Success(conf.Message())
		f.r.Muted("Pedido " + conf.Reference.String())
	}

	return o, nil
}

func (f *Flow) chooseRestaurant(ctx context.Context, o *Outcome) (State, error) {
	restaurants, err := f.catalog.ListRestaurants(ctx)
	if err != nil {
		return Aborted, err
	}
	if len(restaurants) == 0 {
		o.Reason = ErrEmptyCatalog
		f.r.Warning("Nenhum restaurante disponível.")
		return Aborted, nil
	}

	f.r.Println("")
	f.r.Header("Restaurantes disponíveis:")
	for i, rest := range restaurants {
		f.r.Printf("%d. %s\n", i+1, rest.Name)
	}

	n, err := f.readChoice(ctx, o, "Escolha o número do restaurante: ", func(n int) string {
		if n < 1 || n > len(restaurants) {
			return fmt.Sprintf("Escolha um número entre 1 e %d!", len(restaurants))
		}
		return ""
	}, ErrOutOfRange)
	if err != nil {
		return Aborted, err
	}

	chosen := restaurants[n-1]
	o.Restaurant = &chosen
	return ChooseDish, nil
}

func (f *Flow) chooseDish(ctx context.Context, o *Outcome) (State, error) {
	dishes, err := f.catalog.ListDishes(ctx, o.Restaurant.ID)
	if err != nil {
		return Aborted, err
	}
	if len(dishes) == 0 {
		o.Reason = ErrNoDishes
		f.r.Warning("Este restaurante não possui pratos disponíveis.")
		return Aborted, nil
	}

	// Positions are what the user sees; they are unrelated to storage ids.
	byPosition := make(map[int]core.Dish, len(dishes))
	f.r.Println("")
	f.r.Header("Cardápio:")
	for i, d := range dishes {
		byPosition[i+1] = d
		f.r.Printf("%d. %s - R$%s\n", i+1, d.Name, d.Price)
	}

	n, err := f.readChoice(ctx, o, "Escolha o número do prato: ", func(n int) string {
		if _, ok := byPosition[n]; !ok {
			return "Opção inválida. Escolha um prato da lista!"
		}
		return ""
	}, ErrUnknownOption)
	if err != nil {
		return Aborted, err
	}

	chosen := byPosition[n]
	o.Dish = &chosen
	return Confirmed, nil
}

// readChoice prompts until the user enters an integer that check accepts.
// check returns the message to show for a rejected number, or "" to accept it.
func (f *Flow) readChoice(ctx context.Context, o *Outcome, prompt string, check func(int) string, rejectErr error) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		line, err := f.input.ReadLine(prompt)
		if err != nil {
			return 0, err
		}

		n, verr := parseChoice(line)
		if verr == nil {
			if msg := check(n); msg != "" {
				verr = &ValidationError{Input: line, Message: msg, Err: rejectErr}
			}
		}
		if verr == nil {
			return n, nil
		}

		o.Rejected = append(o.Rejected, verr)
		f.logger.Debug("rejected input", slog.String("input", line), slog.String("reason", verr.Err.Error()))
		f.r.Error(verr.Message)
	}
}

func parseChoice(line string) (int, *ValidationError) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, &ValidationError{Input: line, Message: "Erro: Digite um número válido!", Err: ErrNotANumber}
	}
	return n, nil
}
