package ledger

import (
	"context"

	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/store"
)

// Querier runs page queries against the transaction store.
//
//go:generate mockgen -destination=mocks/mock_ledger.go -package=mock_ledger -source=interface.go
type Querier interface {
	ListTransactions(ctx context.Context, q store.TxQuery) ([]model.Transaction, error)
}

// KindSource hands out the kind snapshot for a screen.
type KindSource interface {
	Snapshot(ctx context.Context) (model.KindLookup, error)
}

// Identity reports who is signed in.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// Feed opens change subscriptions.
type Feed interface {
	Subscribe(ctx context.Context, f realtime.Filter) (realtime.Subscription, error)
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(msg string)
}
