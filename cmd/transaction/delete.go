package transaction

import (
	"context"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/ui"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type DeleteCommandRunner struct {
	app *app.App
	yes bool
}

func NewDeleteCmd(a *app.App) *cobra.Command {
	runner := &DeleteCommandRunner{app: a}

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long:  `Delete a transaction and every file attached to it. This action cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

func (r *DeleteCommandRunner) Run(ctx context.Context, id string) error {
	ownerID, err := r.app.RequireUser(ctx)
	if err != nil {
		return err
	}

	detail, err := r.app.Service.Transaction.Detail(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if !r.yes {
		views.RenderTransactionDeletePreview(detail)

		confirmed, err := ui.ConfirmDanger("Are you sure you want to delete this transaction?")
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.app.Service.Transaction.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	views.RenderTransactionDeleteSuccess(id)
	return nil
}
