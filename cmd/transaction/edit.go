package transaction

import (
	"context"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/service"
	"github.com/hance08/carteira/internal/ui/prompts"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/hance08/carteira/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type editFlags struct {
	Kind   string
	Amount string
}

type EditCommandRunner struct {
	app   *app.App
	flags *editFlags
	cmd   *cobra.Command
}

func NewEditCmd(a *app.App) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Change the amount or kind of a transaction. The date never changes.

Without flags every field is asked for, showing the current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				app:   a,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "New kind code")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "New amount")

	return cmd
}

func (r *EditCommandRunner) Run(ctx context.Context, id string) error {
	ownerID, err := r.app.RequireUser(ctx)
	if err != nil {
		return err
	}

	detail, err := r.app.Service.Transaction.Detail(ctx, ownerID, id)
	if err != nil {
		return err
	}

	edit := service.TransactionEdit{Kind: r.flags.Kind, AmountRaw: r.flags.Amount}
	if !r.cmd.Flags().Changed("kind") && !r.cmd.Flags().Changed("amount") {
		pterm.DefaultSection.Printf("Editing Transaction %s", views.ShortID(detail.ID))
		if err := views.RenderTransactionDetail(detail); err != nil {
			return err
		}

		edit, err = r.prompt(ctx, detail)
		if err != nil {
			return err
		}
	}

	if _, err := r.app.Service.Transaction.Update(ctx, ownerID, id, edit); err != nil {
		return err
	}
	pterm.Success.Println("Transaction updated successfully")

	updated, err := r.app.Service.Transaction.Detail(ctx, ownerID, id)
	if err != nil {
		return err
	}
	return views.RenderTransactionDetail(updated)
}

func (r *EditCommandRunner) prompt(ctx context.Context, detail *service.TransactionDetail) (service.TransactionEdit, error) {
	kinds, err := r.app.Service.Kind.Snapshot(ctx)
	if err != nil {
		return service.TransactionEdit{}, err
	}

	kind, err := prompts.PromptKind(kinds, detail.Kind)
	if err != nil {
		return service.TransactionEdit{}, err
	}

	amount, err := prompts.PromptTransactionAmount(utils.FormatFromCents(detail.Amount))
	if err != nil {
		return service.TransactionEdit{}, err
	}

	return service.TransactionEdit{AmountRaw: amount, Kind: kind}, nil
}
