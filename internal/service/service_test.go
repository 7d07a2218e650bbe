package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/chart"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	repo   *store.Store
	broker *realtime.MemoryBroker
	dir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := store.NewStore(filepath.Join(dir, "test.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	bucket, err := attachment.NewFSBucket(filepath.Join(dir, "files"))
	require.NoError(t, err)

	broker := realtime.NewMemoryBroker()
	t.Cleanup(func() { broker.Close() })

	files := attachment.NewService(repo, bucket, zerolog.Nop())
	svc, err := NewService(repo, files, broker, zerolog.Nop(), Config{})
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	svc.Transaction.now = func() time.Time { return testNow }
	svc.Summary.now = func() time.Time { return testNow }

	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, repo.CreateProfile(context.Background(), model.Profile{
			ID:           id,
			Email:        id + "@example.com",
			Name:         id,
			PasswordHash: "hash",
			CreatedAt:    testNow,
		}))
	}

	return &fixture{svc: svc, repo: repo, broker: broker, dir: dir}
}

func (f *fixture) subscribe(t *testing.T, owner string) realtime.Subscription {
	t.Helper()
	sub, err := f.broker.Subscribe(context.Background(), realtime.Filter{
		Table:   constants.TableTransactions,
		OwnerID: owner,
	})
	require.NoError(t, err)
	t.Cleanup(func() { sub.Close() })
	return sub
}

func next(t *testing.T, sub realtime.Subscription) realtime.Change {
	t.Helper()
	select {
	case c := <-sub.Events():
		return c
	case <-time.After(time.Second):
		t.Fatal("no change received")
		return realtime.Change{}
	}
}

type countingKinds struct {
	calls int
	kinds []model.Kind
}

func (c *countingKinds) ListKinds(context.Context) ([]model.Kind, error) {
	c.calls++
	return c.kinds, nil
}

func TestKindService_CachesSnapshot(t *testing.T) {
	repo := &countingKinds{kinds: []model.Kind{
		{Code: "salary", Label: "Salário", Direction: model.Inflow},
	}}
	ks, err := NewKindService(repo, 0, zerolog.Nop())
	require.NoError(t, err)
	defer ks.Close()

	ctx := context.Background()
	first, err := ks.Snapshot(ctx)
	require.NoError(t, err)
	_, err = ks.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, first.Len())

	ks.Invalidate()
	_, err = ks.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestTransactionService_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewTransaction
	}{
		{"zero amount", NewTransaction{AmountRaw: "0,00", Kind: "groceries"}},
		{"garbage amount", NewTransaction{AmountRaw: "abc", Kind: "groceries"}},
		{"missing kind", NewTransaction{AmountRaw: "10", Kind: ""}},
		{"unknown kind", NewTransaction{AmountRaw: "10", Kind: "lottery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.svc.Transaction.Create(ctx, "u1", tt.in)
			assert.Error(t, err)
			assert.Empty(t, id)
		})
	}

	recent, err := f.svc.Transaction.Recent(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestTransactionService_CreatePublishesInsert(t *testing.T) {
	f := newFixture(t)
	sub := f.subscribe(t, "u1")
	ctx := context.Background()

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "1.234,56", Kind: "groceries"})
	require.NoError(t, err)

	c := next(t, sub)
	assert.Equal(t, realtime.Insert, c.Event)
	assert.Equal(t, id, c.RecordID)
	require.NotNil(t, c.Record)
	assert.Equal(t, int64(123456), c.Record.Amount)

	stored, err := f.svc.Transaction.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, *c.Record, *stored)
}

func TestTransactionService_CreateWithAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	path := filepath.Join(f.dir, "Recibo Junho.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	asset := attachment.AssetFromPath(path)

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "50", Kind: "health", Attachment: &asset})
	require.NoError(t, err)

	detail, err := f.svc.Transaction.Detail(ctx, "u1", id)
	require.NoError(t, err)
	require.Len(t, detail.Attachments, 1)
	assert.Equal(t, constants.ContentTypePDF, detail.Attachments[0].ContentType)
	assert.Equal(t, int64(-5000), detail.Signed())
}

func TestTransactionService_AttachmentFailureKeepsTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	asset := attachment.AssetFromPath(filepath.Join(f.dir, "missing.png"))
	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "5", Kind: "leisure", Attachment: &asset})

	assert.ErrorIs(t, err, ErrAttachmentFailed)
	require.NotEmpty(t, id)
	_, err = f.svc.Transaction.Get(ctx, "u1", id)
	assert.NoError(t, err)
}

func TestTransactionService_OwnershipIsEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "10", Kind: "rent"})
	require.NoError(t, err)

	_, err = f.svc.Transaction.Get(ctx, "u2", id)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, err = f.svc.Transaction.Update(ctx, "u2", id, TransactionEdit{AmountRaw: "1"})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	err = f.svc.Transaction.Delete(ctx, "u2", id)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, err = f.svc.Transaction.Get(ctx, "u1", id)
	assert.NoError(t, err)
}

func TestTransactionService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "10", Kind: "rent"})
	require.NoError(t, err)
	before, err := f.svc.Transaction.Get(ctx, "u1", id)
	require.NoError(t, err)

	sub := f.subscribe(t, "u1")
	f.svc.Transaction.now = func() time.Time { return testNow.Add(time.Hour) }

	updated, err := f.svc.Transaction.Update(ctx, "u1", id, TransactionEdit{AmountRaw: "12,50"})
	require.NoError(t, err)
	assert.Equal(t, int64(1250), updated.Amount)
	assert.Equal(t, "rent", updated.Kind)
	assert.True(t, before.CreatedAt.Equal(updated.CreatedAt))

	c := next(t, sub)
	assert.Equal(t, realtime.Update, c.Event)
	assert.Equal(t, int64(1250), c.Record.Amount)

	updated, err = f.svc.Transaction.Update(ctx, "u1", id, TransactionEdit{Kind: "salary"})
	require.NoError(t, err)
	assert.Equal(t, int64(1250), updated.Amount)
	assert.Equal(t, "salary", updated.Kind)

	_, err = f.svc.Transaction.Update(ctx, "u1", id, TransactionEdit{Kind: "lottery"})
	assert.Error(t, err)
}

func TestTransactionService_DeleteRemovesFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	path := filepath.Join(f.dir, "nota.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "10", Kind: "groceries"})
	require.NoError(t, err)
	_, err = f.svc.Transaction.Attach(ctx, "u1", id, attachment.AssetFromPath(path))
	require.NoError(t, err)

	sub := f.subscribe(t, "u1")
	require.NoError(t, f.svc.Transaction.Delete(ctx, "u1", id))

	c := next(t, sub)
	assert.Equal(t, realtime.Delete, c.Event)
	assert.Equal(t, id, c.RecordID)
	assert.Nil(t, c.Record)

	_, err = f.svc.Transaction.Get(ctx, "u1", id)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	left, err := f.repo.ListAttachments(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestTransactionService_DetachByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	path := filepath.Join(f.dir, "comprovante.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{AmountRaw: "10", Kind: "groceries"})
	require.NoError(t, err)
	a, err := f.svc.Transaction.Attach(ctx, "u1", id, attachment.AssetFromPath(path))
	require.NoError(t, err)

	err = f.svc.Transaction.Detach(ctx, "u1", id, "nope.pdf")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, f.svc.Transaction.Detach(ctx, "u1", id, attachment.FilenameFromPath(a.Path)))

	detail, err := f.svc.Transaction.Detail(ctx, "u1", id)
	require.NoError(t, err)
	assert.Empty(t, detail.Attachments)
}

func TestTransactionService_OpenAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	path := filepath.Join(f.dir, "recibo.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0644))

	id, err := f.svc.Transaction.Create(ctx, "u1", NewTransaction{
		AmountRaw:  "10",
		Kind:       "groceries",
		Attachment: &attachment.Asset{Path: path, Name: "recibo.png"},
	})
	require.NoError(t, err)

	detail, err := f.svc.Transaction.Detail(ctx, "u1", id)
	require.NoError(t, err)
	require.Len(t, detail.Attachments, 1)
	name := attachment.FilenameFromPath(detail.Attachments[0].Path)

	_, _, err = f.svc.Transaction.OpenAttachment(ctx, "u2", id, name)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	rc, a, err := f.svc.Transaction.OpenAttachment(ctx, "u1", id, name)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", a.ContentType)
}

func TestSummaryService_Home(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seed := []struct {
		id   string
		ago  time.Duration
		cent int64
		kind string
	}{
		{"a", 1 * time.Hour, 700000, "salary"},
		{"b", 2 * time.Hour, 200000, "rent"},
		{"c", 3 * time.Hour, 50000, "groceries"},
		{"d", 4 * time.Hour, 30000, "groceries"},
		{"e", 5 * time.Hour, 10000, "transport"},
		{"f", 6 * time.Hour, 10000, "leisure"},
		{"old", 40 * 24 * time.Hour, 999900, "salary"},
	}
	for _, s := range seed {
		require.NoError(t, f.repo.CreateTransaction(ctx, model.Transaction{
			ID:        s.id,
			OwnerID:   "u1",
			CreatedAt: testNow.Add(-s.ago),
			Amount:    s.cent,
			Kind:      s.kind,
		}))
	}
	require.NoError(t, f.repo.CreateTransaction(ctx, model.Transaction{
		ID: "other", OwnerID: "u2", CreatedAt: testNow, Amount: 100, Kind: "salary",
	}))

	sum, err := f.svc.Summary.Home(ctx, "u1", chart.ByDirection)
	require.NoError(t, err)

	var recent []string
	for _, tx := range sum.Recent {
		recent = append(recent, tx.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, recent)
	assert.Len(t, sum.Window, 6)
	assert.Equal(t, int64(700000+999900-200000-50000-30000-10000-10000), sum.Balance)

	require.Len(t, sum.Chart.Legend, 2)
	assert.Equal(t, constants.LabelInflow, sum.Chart.Legend[0].Label)
	assert.Equal(t, int64(700000), sum.Chart.Legend[0].Value)
	assert.Equal(t, 70, sum.Chart.Legend[0].Percent)
	assert.Equal(t, int64(300000), sum.Chart.Legend[1].Value)
	assert.Equal(t, 30, sum.Chart.Legend[1].Percent)
}

func TestSummaryService_WindowMatchesThirtyDayFilter(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	f := newFixture(t)
	// a month that crosses the start of summer time
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, berlin)
	f.svc.Summary.now = func() time.Time { return now }

	sum, err := f.svc.Summary.Home(context.Background(), "u1", chart.ByDirection)
	require.NoError(t, err)

	from, ok := model.Period30Days.From(now)
	require.True(t, ok)
	assert.True(t, sum.Since.Equal(from), "since %s, 30d filter from %s", sum.Since, from)
}

func TestSummaryService_HomeWithoutData(t *testing.T) {
	f := newFixture(t)

	sum, err := f.svc.Summary.Home(context.Background(), "u2", chart.ByKind)
	require.NoError(t, err)

	assert.True(t, sum.Chart.Empty())
	assert.Empty(t, sum.Recent)
	assert.Zero(t, sum.Balance)
}

func TestSummaryService_WindowDrainsPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n := windowPage + 7
	for i := 0; i < n; i++ {
		require.NoError(t, f.repo.CreateTransaction(ctx, model.Transaction{
			ID:        fmt.Sprintf("tx-%04d", i),
			OwnerID:   "u1",
			CreatedAt: testNow.Add(-time.Duration(i) * time.Minute),
			Amount:    100,
			Kind:      "groceries",
		}))
	}

	window, err := f.svc.Summary.window(ctx, "u1", testNow.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Len(t, window, n)

	seen := make(map[string]bool, n)
	for _, tx := range window {
		assert.False(t, seen[tx.ID], "duplicate %s", tx.ID)
		seen[tx.ID] = true
	}
}
