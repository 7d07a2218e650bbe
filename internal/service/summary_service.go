package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hance08/carteira/internal/chart"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/store"
	"golang.org/x/sync/errgroup"
)

// windowPage is the page size used to drain the summary window.
const windowPage = 200

type SummaryService struct {
	repo  store.Repository
	kinds *KindService
	now   func() time.Time
}

func NewSummaryService(repo store.Repository, kinds *KindService) *SummaryService {
	return &SummaryService{repo: repo, kinds: kinds, now: time.Now}
}

// Summary is everything the home screen shows.
type Summary struct {
	Balance int64
	Recent  []model.Transaction
	Window  []model.Transaction
	Chart   chart.Result
	Kinds   model.KindLookup
	Since   time.Time
}

// Home loads the newest transactions, the last days' window and the balance
// of ownerID concurrently, then groups the window for the chart.
func (ss *SummaryService) Home(ctx context.Context, ownerID string, mode chart.GroupMode) (*Summary, error) {
	kinds, err := ss.kinds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	since := ss.now().Add(-constants.SummaryDays * 24 * time.Hour)
	sum := &Summary{Kinds: kinds, Since: since}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recent, err := ss.repo.ListTransactions(gctx, store.TxQuery{
			OwnerID: ownerID,
			Limit:   constants.RecentLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to load recent transactions: %w", err)
		}
		sum.Recent = recent
		return nil
	})

	g.Go(func() error {
		window, err := ss.window(gctx, ownerID, since)
		if err != nil {
			return fmt.Errorf("failed to load summary window: %w", err)
		}
		sum.Window = window
		return nil
	})

	g.Go(func() error {
		balance, err := ss.repo.Balance(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to load balance: %w", err)
		}
		sum.Balance = balance
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum.Chart = chart.Compute(sum.Window, kinds, mode)
	return sum, nil
}

// window reads every transaction created at or after since, walking the
// keyset so concurrent inserts can't shift pages.
func (ss *SummaryService) window(ctx context.Context, ownerID string, since time.Time) ([]model.Transaction, error) {
	var all []model.Transaction
	q := store.TxQuery{OwnerID: ownerID, From: &since, Limit: windowPage}

	for {
		page, err := ss.repo.ListTransactions(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < windowPage {
			return all, nil
		}
		last := page[len(page)-1]
		q.Cursor = &store.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
}
