package transaction

import (
	"context"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/spf13/cobra"
)

type ShowCommandRunner struct {
	app *app.App
}

func NewShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				app: a,
			}
			return runner.Run(cmd.Context(), args[0])
		},
	}
}

func (r *ShowCommandRunner) Run(ctx context.Context, id string) error {
	ownerID, err := r.app.RequireUser(ctx)
	if err != nil {
		return err
	}

	detail, err := r.app.Service.Transaction.Detail(ctx, ownerID, id)
	if err != nil {
		return err
	}

	return views.RenderTransactionDetail(detail)
}
