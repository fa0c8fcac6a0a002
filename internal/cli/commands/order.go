package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/delivery/internal/cli/output"
	"github.com/leapstack-labs/delivery/internal/flow"
	"github.com/leapstack-labs/delivery/internal/order"
)

// NewOrderCommand creates the order command.
func NewOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Choose a restaurant and a dish, then confirm the order",
		Long: `Walk through placing an order.

The catalog is seeded first (idempotently), then you pick a restaurant and
one of its dishes by number. Invalid answers are rejected and asked again.
The confirmed order is printed; it is not stored.`,
		Example: `  # Interactive order against ./entrega.db
  delivery order

  # Scripted order: restaurant 1, dish 2
  printf '1\n2\n' | delivery order --database /tmp/entrega.db`,
		Args: cobra.NoArgs,
		RunE: RunOrder,
	}
}

// RunOrder seeds the catalog and runs the selection flow.
// It is also the root command's default action.
func RunOrder(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := runSeeder(cmd, cc); err != nil {
		return err
	}

	input, closeInput, err := newInput(cmd)
	if err != nil {
		return err
	}
	defer closeInput()

	f := flow.New(cc.Store, order.NewConfirmer(cc.Store), input, cc.Renderer, cc.Logger)
	outcome, err := f.Run(cmd.Context())
	if err != nil {
		return err
	}

	attrs := []any{slog.String("state", outcome.State.String()), slog.Int("rejected_inputs", len(outcome.Rejected))}
	if outcome.Reason != nil {
		attrs = append(attrs, slog.String("reason", outcome.Reason.Error()))
	}
	cc.Logger.Info("order flow finished", attrs...)

	return nil
}

// newInput picks line editing for a terminal and plain line reads otherwise.
func newInput(cmd *cobra.Command) (flow.Input, func(), error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && output.IsTerminal(f) {
		rl, err := flow.NewReadlineInput(f, cmd.OutOrStdout())
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { _ = rl.Close() }, nil
	}

	return flow.NewLineInput(in, cmd.OutOrStdout()), func() {}, nil
}
