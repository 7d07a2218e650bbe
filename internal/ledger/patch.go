package ledger

import (
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/realtime"
)

// patchLocked applies c to the window when the outcome is unambiguous and
// reports whether it did. A false return means the caller must reload.
func (e *Engine) patchLocked(c realtime.Change) bool {
	if e.inFlight || c.OwnerID != e.userID {
		return false
	}

	dateFrom := DateFrom(e.filters, e.opts.Now())
	idx := e.indexLocked(c.RecordID)

	switch c.Event {
	case realtime.Delete:
		if idx < 0 {
			return false
		}
		e.removeLocked(idx)
		return true

	case realtime.Update:
		if c.Record == nil {
			return false
		}
		rec := *c.Record
		in := matches(rec, e.filters, dateFrom, e.userID, e.kinds)
		if idx >= 0 {
			if !in {
				e.removeLocked(idx)
				return true
			}
			if !rec.CreatedAt.Equal(e.items[idx].CreatedAt) {
				return false
			}
			e.items[idx] = rec
			return true
		}
		if !in {
			return true
		}
		return e.beyondWindowLocked(rec)

	case realtime.Insert:
		if c.Record == nil || idx >= 0 {
			return false
		}
		rec := *c.Record
		if !matches(rec, e.filters, dateFrom, e.userID, e.kinds) {
			return true
		}
		if len(e.items) == 0 || newer(rec, e.items[0]) {
			e.items = append([]model.Transaction{rec}, e.items...)
			return true
		}
		return e.beyondWindowLocked(rec)
	}

	return false
}

// beyondWindowLocked is true when rec sorts after every loaded row and more
// rows remain, so the loaded prefix is unaffected.
func (e *Engine) beyondWindowLocked(rec model.Transaction) bool {
	if !e.hasMore || len(e.items) == 0 {
		return false
	}
	return newer(e.items[len(e.items)-1], rec)
}

func (e *Engine) indexLocked(id string) int {
	for i, tx := range e.items {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) removeLocked(i int) {
	items := make([]model.Transaction, 0, len(e.items)-1)
	items = append(items, e.items[:i]...)
	e.items = append(items, e.items[i+1:]...)
}
