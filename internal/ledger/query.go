package ledger

import (
	"time"

	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/store"
)

const PageSize = constants.PageSize

// Outcome tells the caller what to do with a built query.
type Outcome int

const (
	// Inert means nobody is signed in; nothing may be queried.
	Inert Outcome = iota
	// Empty means the filters cannot match any row; skip the round trip.
	Empty
	// Ready means the query should be sent.
	Ready
)

func (o Outcome) String() string {
	switch o {
	case Inert:
		return "inert"
	case Empty:
		return "empty"
	default:
		return "ready"
	}
}

// Page selects which slice of the ordered result to read.
type Page struct {
	Offset int
	Cursor *store.Cursor
}

// BuildQuery turns the current filters into a page query for userID.
// A specific kind beats the direction filter. A direction that no known
// kind has yields Empty.
func BuildQuery(filters model.Filters, dateFrom *time.Time, userID string, kinds model.KindLookup, page Page) (store.TxQuery, Outcome) {
	if userID == "" {
		return store.TxQuery{}, Inert
	}

	q := store.TxQuery{
		OwnerID: userID,
		From:    dateFrom,
		Limit:   PageSize,
	}

	if filters.Kind != "" && filters.Kind != model.AllKinds {
		q.Kind = filters.Kind
	} else if d, ok := filters.Direction.Direction(); ok {
		codes := kinds.CodesFor(d)
		if len(codes) == 0 {
			return store.TxQuery{}, Empty
		}
		q.Kinds = codes
	}

	if page.Cursor != nil {
		q.Cursor = page.Cursor
	} else {
		q.Offset = page.Offset
	}

	return q, Ready
}

// DateFrom resolves the period filter against now.
func DateFrom(filters model.Filters, now time.Time) *time.Time {
	from, ok := filters.Period.From(now)
	if !ok {
		return nil
	}
	return &from
}

// matches reports whether tx belongs to the result set described by the
// filters for userID.
func matches(tx model.Transaction, filters model.Filters, dateFrom *time.Time, userID string, kinds model.KindLookup) bool {
	if tx.OwnerID != userID {
		return false
	}
	if dateFrom != nil && tx.CreatedAt.Before(*dateFrom) {
		return false
	}
	if filters.Kind != "" && filters.Kind != model.AllKinds {
		return tx.Kind == filters.Kind
	}
	if d, ok := filters.Direction.Direction(); ok {
		k, found := kinds.Get(tx.Kind)
		return found && k.Direction == d
	}
	return true
}

// newer reports whether a sorts before b in created_at DESC, id DESC order.
func newer(a, b model.Transaction) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
