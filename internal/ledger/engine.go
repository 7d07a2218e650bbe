// Package ledger keeps a paginated, filtered window of one user's
// transactions in sync with the store and its change feed.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/store"
	"github.com/rs/zerolog"
)

var ErrUnauthenticated = errors.New("not signed in")

const (
	MsgLoadFailed  = "Erro ao carregar extrato"
	MsgStartFailed = "Erro ao iniciar extrato"
)

type Pagination string

const (
	PaginateOffset Pagination = "offset"
	PaginateKeyset Pagination = "keyset"
)

type RealtimeMode string

const (
	// RealtimeReload refetches the first page on every change.
	RealtimeReload RealtimeMode = "reload"
	// RealtimePatch edits the window in place when the change position is
	// known and reloads otherwise.
	RealtimePatch RealtimeMode = "patch"
)

// State is a copy of the engine's observable fields.
type State struct {
	UserID      string
	Items       []model.Transaction
	HasMore     bool
	LoadingMore bool
	Refreshing  bool
	Filters     model.Filters
	Kinds       model.KindLookup
	Generation  uint64
}

type Deps struct {
	Querier  Querier
	Kinds    KindSource
	Identity Identity
	Feed     Feed
	Notifier Notifier
}

type Options struct {
	Pagination Pagination
	Realtime   RealtimeMode
	Logger     zerolog.Logger
	Now        func() time.Time
	// OnUpdate receives a fresh State after every change. It is called
	// without the engine lock held and may call back into the engine.
	OnUpdate func(State)
}

// Engine drives one ledger screen. At most one page fetch is in flight; plain
// fetch requests arriving meanwhile are dropped. Filter changes and change
// events arriving meanwhile mark the in-flight response stale and schedule a
// single reset right after it.
type Engine struct {
	deps Deps
	opts Options
	log  zerolog.Logger

	mu           sync.Mutex
	userID       string
	kinds        model.KindLookup
	filters      model.Filters
	items        []model.Transaction
	hasMore      bool
	loadingMore  bool
	refreshing   bool
	inFlight     bool
	pendingReset bool
	generation   uint64
	closed       bool

	sub        realtime.Subscription
	stopListen context.CancelFunc
	listening  sync.WaitGroup
}

func NewEngine(deps Deps, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pagination == "" {
		opts.Pagination = PaginateOffset
	}
	if opts.Realtime == "" {
		opts.Realtime = RealtimeReload
	}
	return &Engine{
		deps:    deps,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "ledger").Logger(),
		filters: model.DefaultFilters(),
		hasMore: true,
	}
}

// Mount resolves the signed-in user, loads the kind snapshot, subscribes to
// the user's changes and loads the first page.
func (e *Engine) Mount(ctx context.Context) error {
	userID, ok := e.deps.Identity.CurrentUserID(ctx)
	if !ok {
		e.detach()
		return ErrUnauthenticated
	}
	return e.SetUser(ctx, userID)
}

// SetUser switches the engine to another identity. The previous subscription
// is released and the window cleared before anything is loaded for the new
// user. An empty userID leaves the engine inert.
func (e *Engine) SetUser(ctx context.Context, userID string) error {
	e.detach()

	if userID == "" {
		return nil
	}

	kinds, err := e.deps.Kinds.Snapshot(ctx)
	if err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("failed to load kinds")
		e.deps.Notifier.Notify(MsgStartFailed)
		return fmt.Errorf("failed to load kinds: %w", err)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.userID = userID
	e.kinds = kinds
	e.items = nil
	e.hasMore = true
	e.generation++
	e.mu.Unlock()

	if err := e.subscribe(ctx, userID); err != nil {
		// the ledger still works without live updates
		e.log.Error().Err(err).Str("user_id", userID).Msg("failed to subscribe to changes")
	}

	return e.requestReset(ctx)
}

// FetchPage loads the first page (reset) or the next one. It returns
// immediately without a round trip when another fetch is in flight, when
// nobody is signed in, or when the end of the results was already reached.
func (e *Engine) FetchPage(ctx context.Context, reset bool) error {
	e.mu.Lock()
	j, ok := e.beginLocked(reset)
	st := e.snapshotLocked()
	e.mu.Unlock()

	if !ok {
		return nil
	}
	e.emit(st)
	return e.run(ctx, j)
}

// OnFilterChange applies next and reloads from the first page.
func (e *Engine) OnFilterChange(ctx context.Context, next model.Filters) error {
	e.mu.Lock()
	e.filters = next
	e.mu.Unlock()

	return e.requestReset(ctx)
}

func (e *Engine) Filters() model.Filters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close releases the change subscription. No change is processed and no
// update is emitted once Close returns.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	return e.detach()
}

type job struct {
	gen     uint64
	reset   bool
	query   store.TxQuery
	outcome Outcome
}

// beginLocked claims the in-flight slot and builds the query.
func (e *Engine) beginLocked(reset bool) (job, bool) {
	if e.closed || e.userID == "" || e.inFlight {
		return job{}, false
	}
	if !reset && !e.hasMore {
		return job{}, false
	}

	e.inFlight = true
	if reset {
		e.refreshing = true
		e.hasMore = true
	} else {
		e.loadingMore = true
	}

	page := Page{}
	if !reset {
		page.Offset = len(e.items)
		if e.opts.Pagination == PaginateKeyset && len(e.items) > 0 {
			last := e.items[len(e.items)-1]
			page.Cursor = &store.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
		}
	}

	dateFrom := DateFrom(e.filters, e.opts.Now())
	q, outcome := BuildQuery(e.filters, dateFrom, e.userID, e.kinds, page)

	return job{gen: e.generation, reset: reset, query: q, outcome: outcome}, true
}

// run executes j and any reset that was requested while it was in flight.
func (e *Engine) run(ctx context.Context, j job) error {
	for {
		var rows []model.Transaction
		var err error
		if j.outcome == Ready {
			rows, err = e.deps.Querier.ListTransactions(ctx, j.query)
		}

		e.mu.Lock()
		notify := e.applyLocked(j, rows, err)
		e.inFlight = false
		e.refreshing = false
		e.loadingMore = false

		next, again := job{}, false
		if e.pendingReset {
			e.pendingReset = false
			next, again = e.beginLocked(true)
		}
		st := e.snapshotLocked()
		e.mu.Unlock()

		if notify {
			e.deps.Notifier.Notify(MsgLoadFailed)
		}
		e.emit(st)

		if !again {
			if notify {
				return err
			}
			return nil
		}
		j = next
	}
}

// applyLocked folds a finished job into the window. It reports whether the
// failure should be shown to the user.
func (e *Engine) applyLocked(j job, rows []model.Transaction, err error) bool {
	if e.closed {
		return false
	}

	if j.gen != e.generation {
		e.log.Debug().
			Uint64("generation", j.gen).
			Uint64("current", e.generation).
			Msg("discarding stale page")
		return false
	}

	if err != nil {
		e.log.Error().Err(err).
			Str("user_id", e.userID).
			Bool("reset", j.reset).
			Msg("failed to load ledger page")
		return true
	}

	switch j.outcome {
	case Inert:
		e.hasMore = false
	case Empty:
		if j.reset {
			e.items = nil
		}
		e.hasMore = false
	case Ready:
		if j.reset {
			e.items = rows
		} else {
			e.items = append(e.items, rows...)
		}
		if len(rows) < PageSize {
			e.hasMore = false
		}
	}
	return false
}

// requestReset supersedes whatever is loading and starts over from page one.
func (e *Engine) requestReset(ctx context.Context) error {
	e.mu.Lock()
	e.generation++
	if e.inFlight {
		e.pendingReset = true
		e.mu.Unlock()
		return nil
	}
	j, ok := e.beginLocked(true)
	st := e.snapshotLocked()
	e.mu.Unlock()

	if !ok {
		return nil
	}
	e.emit(st)
	return e.run(ctx, j)
}

// subscribe ties the subscription to the engine, not to ctx: only detach
// ends it.
func (e *Engine) subscribe(ctx context.Context, userID string) error {
	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	sub, err := e.deps.Feed.Subscribe(listenCtx, realtime.Filter{
		Table:   constants.TableTransactions,
		OwnerID: userID,
	})
	if err != nil {
		cancel()
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		cancel()
		return sub.Close()
	}
	e.sub = sub
	e.stopListen = cancel
	e.listening.Add(1)
	e.mu.Unlock()

	go e.listen(listenCtx, sub)
	return nil
}

func (e *Engine) listen(ctx context.Context, sub realtime.Subscription) {
	defer e.listening.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-sub.Events():
			if !ok {
				if ctx.Err() == nil {
					e.log.Warn().Msg("change feed closed, live updates stopped")
				}
				return
			}
			e.handleChange(ctx, c)
		}
	}
}

func (e *Engine) handleChange(ctx context.Context, c realtime.Change) {
	e.log.Debug().
		Str("event", string(c.Event)).
		Str("record_id", c.RecordID).
		Msg("change received")

	if e.opts.Realtime == RealtimePatch {
		e.mu.Lock()
		patched := !e.closed && e.patchLocked(c)
		st := e.snapshotLocked()
		e.mu.Unlock()
		if patched {
			e.emit(st)
			return
		}
	}

	if err := e.requestReset(ctx); err != nil && !errors.Is(err, context.Canceled) {
		e.log.Warn().Err(err).Msg("reload after change failed")
	}
}

// detach drops the subscription and resets the window. It waits for the
// listener to exit.
func (e *Engine) detach() error {
	e.mu.Lock()
	sub, stop := e.sub, e.stopListen
	e.sub, e.stopListen = nil, nil
	e.userID = ""
	e.items = nil
	e.hasMore = false
	e.pendingReset = false
	e.generation++
	e.mu.Unlock()

	if stop != nil {
		stop()
	}
	var err error
	if sub != nil {
		err = sub.Close()
	}
	e.listening.Wait()
	return err
}

func (e *Engine) snapshotLocked() State {
	items := make([]model.Transaction, len(e.items))
	copy(items, e.items)
	return State{
		UserID:      e.userID,
		Items:       items,
		HasMore:     e.hasMore,
		LoadingMore: e.loadingMore,
		Refreshing:  e.refreshing,
		Filters:     e.filters,
		Kinds:       e.kinds,
		Generation:  e.generation,
	}
}

func (e *Engine) emit(st State) {
	if e.opts.OnUpdate == nil {
		return
	}
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return
	}
	e.opts.OnUpdate(st)
}
