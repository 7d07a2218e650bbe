package cmd

import (
	"context"
	"errors"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/chart"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type homeFlags struct {
	Group string
	Watch bool
}

type homeRunner struct {
	app   *app.App
	flags *homeFlags
}

func NewHomeCmd(a *app.App) *cobra.Command {
	flags := &homeFlags{}

	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show balance, the last 30 days chart and recent transactions",
		Long: `Show the home screen: current balance, how the last 30 days split
between money in and money out, and the most recent transactions.

	Examples:
	carteira home
	carteira home --group kind
	carteira home --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &homeRunner{app: a, flags: flags}
			return runner.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&flags.Group, "group", "g", string(chart.ByDirection), "Chart grouping: direction or kind")
	cmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Redraw whenever a transaction changes (changes from other processes need realtime.driver: amqp)")

	return cmd
}

func (r *homeRunner) Run(ctx context.Context) error {
	mode, err := chart.ParseGroupMode(r.flags.Group)
	if err != nil {
		return err
	}

	profile, err := r.app.Identity.CurrentProfile(ctx)
	if err != nil {
		return err
	}

	view := views.HomeView{Name: profile.Name}
	render := func() error {
		sum, err := r.app.Service.Summary.Home(ctx, profile.ID, mode)
		if err != nil {
			return err
		}
		return view.Render(sum)
	}

	if !r.flags.Watch {
		return render()
	}

	sub, err := r.app.Broker.Subscribe(ctx, realtime.Filter{
		Table:   constants.TableTransactions,
		OwnerID: profile.ID,
	})
	if err != nil {
		return err
	}
	defer sub.Close()

	if err := render(); err != nil {
		return err
	}
	warnLocalFeed(r.app)
	pterm.Info.Println("Watching for changes, press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.Events():
			if !ok {
				return nil
			}
			pterm.Println()
			if err := render(); err != nil && !errors.Is(err, context.Canceled) {
				pterm.Error.Println(err)
			}
		}
	}
}

// warnLocalFeed tells the user that the in-process feed never sees writes
// made by other carteira commands.
func warnLocalFeed(a *app.App) {
	if a.SharedFeed() {
		return
	}
	pterm.Warning.Printf("realtime.driver is %q: only changes made by this process are shown. "+
		"Set realtime.driver to amqp to follow changes from other terminals.\n", a.Config.Realtime.Driver)
}
