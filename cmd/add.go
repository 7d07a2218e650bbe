package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/service"
	"github.com/hance08/carteira/internal/ui/prompts"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Kind   string
	Amount string
	Attach string
}

type addRunner struct {
	app   *app.App
	flags *addFlags
	cmd   *cobra.Command
}

func NewAddCmd(a *app.App) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new transaction",
		Long: `Record money coming in or going out.

Use flags for quick entry or run without flags for the guided form.

	Examples:
	# Interactive mode
	carteira add

	# Quick mode with flags
	carteira add --kind groceries --amount 150,50
	carteira add --kind salary --amount 3500 --attach ~/payslip.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				app:   a,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "Transaction kind code (see 'carteira kinds')")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount in reais (e.g., 150 or 150,50)")
	cmd.Flags().StringVar(&flags.Attach, "attach", "", "PDF or PNG file to attach")

	return cmd
}

func (r *addRunner) Run(ctx context.Context) error {
	ownerID, err := r.app.RequireUser(ctx)
	if err != nil {
		return err
	}

	var in service.NewTransaction
	hasFlags := r.cmd.Flags().Changed("kind") || r.cmd.Flags().Changed("amount")
	if hasFlags {
		in, err = r.flagsMode()
	} else {
		in, err = r.interactiveMode(ctx)
	}
	if err != nil {
		return err
	}

	id, err := r.app.Service.Transaction.Create(ctx, ownerID, in)
	if errors.Is(err, service.ErrAttachmentFailed) {
		pterm.Warning.Printf("Transaction %s was saved, but the file could not be attached: %v\n", id, err)
		pterm.Info.Printf("Try again with 'carteira transaction attach %s <file>'\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction created successfully! (ID: %s)\n", id)

	detail, err := r.app.Service.Transaction.Detail(ctx, ownerID, id)
	if err != nil {
		return err
	}
	return views.RenderTransactionDetail(detail)
}

func (r *addRunner) flagsMode() (service.NewTransaction, error) {
	if r.flags.Kind == "" || r.flags.Amount == "" {
		return service.NewTransaction{}, fmt.Errorf("when using flags, --kind and --amount are both required")
	}

	in := service.NewTransaction{
		AmountRaw: r.flags.Amount,
		Kind:      r.flags.Kind,
	}
	if r.flags.Attach != "" {
		var err error
		in.Attachment, err = r.asset(r.flags.Attach)
		if err != nil {
			return service.NewTransaction{}, err
		}
	}
	return in, nil
}

func (r *addRunner) interactiveMode(ctx context.Context) (service.NewTransaction, error) {
	kinds, err := r.app.Service.Kind.Snapshot(ctx)
	if err != nil {
		return service.NewTransaction{}, fmt.Errorf("failed to load kinds: %w", err)
	}

	kind, err := prompts.PromptKind(kinds, "")
	if err != nil {
		return service.NewTransaction{}, err
	}

	amount, err := prompts.PromptTransactionAmount("")
	if err != nil {
		return service.NewTransaction{}, err
	}

	in := service.NewTransaction{AmountRaw: amount, Kind: kind}

	attach, err := prompts.PromptConfirm("Attach a receipt?", false)
	if err != nil || !attach {
		return in, err
	}
	path, err := prompts.PromptAttachmentPath()
	if err != nil {
		return service.NewTransaction{}, err
	}
	if path != "" {
		in.Attachment, err = r.asset(path)
		if err != nil {
			return service.NewTransaction{}, err
		}
	}
	return in, nil
}

func (r *addRunner) asset(path string) (*attachment.Asset, error) {
	expanded, err := app.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	asset := attachment.AssetFromPath(expanded)
	return &asset, nil
}
