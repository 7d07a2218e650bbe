package cmd

import (
	"context"
	"fmt"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/ledger"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/ui"
	"github.com/hance08/carteira/internal/ui/prompts"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type ledgerFlags struct {
	Direction string
	Kind      string
	Period    string
	Follow    bool
	All       bool
}

type ledgerRunner struct {
	app     *app.App
	flags   *ledgerFlags
	engine  *ledger.Engine
	updates chan ledger.State
}

func NewLedgerCmd(a *app.App) *cobra.Command {
	flags := &ledgerFlags{}

	cmd := &cobra.Command{
		Use:     "ledger",
		Aliases: []string{"ls"},
		Short:   "Browse your transactions page by page",
		Long: `Browse the signed-in profile's transactions, newest first.

Without flags the ledger is interactive: load more pages, refresh or change
filters from the menu.

	Examples:
	carteira ledger
	carteira ledger --direction outflow --period 30d
	carteira ledger --kind salary --all
	carteira ls --follow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ledgerRunner{
				app:     a,
				flags:   flags,
				updates: make(chan ledger.State, 1),
			}
			return runner.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&flags.Direction, "direction", "d", string(model.DirectionAll), "Direction: all, inflow or outflow")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", model.AllKinds, "Kind code, or all")
	cmd.Flags().StringVarP(&flags.Period, "period", "p", string(model.PeriodAll), "Period: all, today, 7d or 30d")
	cmd.Flags().BoolVarP(&flags.Follow, "follow", "f", false, "Keep the ledger open and redraw on every change (changes from other processes need realtime.driver: amqp)")
	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Load every page before printing")

	return cmd
}

func (r *ledgerRunner) Run(ctx context.Context) error {
	kinds, err := r.app.Service.Kind.Snapshot(ctx)
	if err != nil {
		return err
	}
	filters, err := r.parseFilters(kinds)
	if err != nil {
		return err
	}

	r.engine = r.app.NewLedger(ui.Toast{}, r.push)
	defer r.engine.Close()

	// nobody is bound yet, so this only stores the filters for Mount
	if err := r.engine.OnFilterChange(ctx, filters); err != nil {
		return err
	}
	if err := r.engine.Mount(ctx); err != nil {
		return err
	}

	if r.flags.All {
		if err := r.drain(ctx); err != nil {
			return err
		}
	}

	switch {
	case r.flags.Follow:
		return r.follow(ctx)
	case r.flags.All:
		return r.render(r.engine.State())
	default:
		return r.interactive(ctx)
	}
}

func (r *ledgerRunner) parseFilters(kinds model.KindLookup) (model.Filters, error) {
	dir, err := model.ParseDirectionFilter(r.flags.Direction)
	if err != nil {
		return model.Filters{}, err
	}
	period, err := model.ParsePeriod(r.flags.Period)
	if err != nil {
		return model.Filters{}, err
	}

	f := model.DefaultFilters().WithDirection(dir, kinds)
	if r.flags.Kind != "" && r.flags.Kind != model.AllKinds {
		k, ok := kinds.Get(r.flags.Kind)
		if !ok {
			return model.Filters{}, fmt.Errorf("unknown kind '%s'", r.flags.Kind)
		}
		if want, restricted := dir.Direction(); restricted && k.Direction != want {
			return model.Filters{}, fmt.Errorf("kind '%s' is not an %s kind", k.Code, dir)
		}
		f = f.WithKind(k.Code)
	}
	return f.WithPeriod(period), nil
}

// push keeps only the latest state for the follow loop.
func (r *ledgerRunner) push(st ledger.State) {
	if !r.flags.Follow {
		return
	}
	select {
	case <-r.updates:
	default:
	}
	select {
	case r.updates <- st:
	default:
	}
}

func (r *ledgerRunner) drain(ctx context.Context) error {
	for r.engine.State().HasMore {
		before := len(r.engine.State().Items)
		if err := r.engine.FetchPage(ctx, false); err != nil {
			return err
		}
		if len(r.engine.State().Items) == before && r.engine.State().HasMore {
			return fmt.Errorf("ledger stopped growing while more pages were reported")
		}
	}
	return nil
}

func (r *ledgerRunner) follow(ctx context.Context) error {
	if err := r.render(r.engine.State()); err != nil {
		return err
	}
	warnLocalFeed(r.app)
	pterm.Info.Println("Following changes, press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		case st := <-r.updates:
			if st.Refreshing || st.LoadingMore {
				continue
			}
			pterm.Println()
			if err := r.render(st); err != nil {
				return err
			}
		}
	}
}

func (r *ledgerRunner) interactive(ctx context.Context) error {
	for {
		st := r.engine.State()
		if err := r.render(st); err != nil {
			return err
		}

		action, err := prompts.PromptLedgerAction(st.HasMore)
		if err != nil {
			return err
		}

		// load failures were already shown; keep the menu open
		switch action {
		case prompts.ActionMore:
			_ = r.engine.FetchPage(ctx, false)
		case prompts.ActionRefresh:
			_ = r.engine.FetchPage(ctx, true)
		case prompts.ActionFilters:
			next, err := prompts.PromptFilters(r.engine.Filters(), st.Kinds)
			if err != nil {
				return err
			}
			_ = r.engine.OnFilterChange(ctx, next)
		case prompts.ActionQuit:
			return nil
		}
	}
}

func (r *ledgerRunner) render(st ledger.State) error {
	header := views.LedgerHeader{
		Direction:  string(st.Filters.Direction),
		Kind:       views.KindLabel(st.Filters.Kind, st.Kinds),
		Period:     string(st.Filters.Period),
		Loaded:     len(st.Items),
		HasMore:    st.HasMore,
		Refreshing: st.Refreshing,
	}

	views.RenderLedgerHeader(header)
	if err := views.NewTransactionListView().Render(st.Items, st.Kinds); err != nil {
		return err
	}
	views.RenderLedgerFooter(header)
	return nil
}
