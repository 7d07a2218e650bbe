package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/hance08/carteira/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func change(owner string, ev Event) Change {
	return Change{Table: "transactions", Event: ev, OwnerID: owner, RecordID: "t1", At: time.Now()}
}

func TestMemoryBroker_DeliversOnlyMatchingOwner(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, Filter{Table: "transactions", OwnerID: "alice"})
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, b.Publish(ctx, change("bob", Insert)))
	require.NoError(t, b.Publish(ctx, change("alice", Delete)))

	select {
	case c := <-sub.Events():
		assert.Equal(t, "alice", c.OwnerID)
		assert.Equal(t, Delete, c.Event)
	case <-time.After(time.Second):
		t.Fatal("expected an event for alice")
	}

	select {
	case c := <-sub.Events():
		t.Fatalf("unexpected extra event %+v", c)
	default:
	}
}

func TestMemoryBroker_NoEventsAfterClose(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, Filter{Table: "transactions", OwnerID: "alice"})
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	require.NoError(t, b.Publish(ctx, change("alice", Insert)))

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestMemoryBroker_Close(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, Filter{Table: "transactions", OwnerID: "alice"})
	require.NoError(t, err)

	require.NoError(t, b.Close())

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.NoError(t, sub.Close())

	assert.ErrorIs(t, b.Publish(ctx, change("alice", Insert)), ErrClosed)
	_, err = b.Subscribe(ctx, Filter{Table: "transactions", OwnerID: "alice"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestChangeJSON(t *testing.T) {
	c := change("alice", Update)
	c.Record = &model.Transaction{ID: "t1", OwnerID: "alice", Amount: 500, Kind: "rent", CreatedAt: time.UnixMilli(1700000000000).UTC()}

	data, err := c.ToJSON()
	require.NoError(t, err)

	got, err := ChangeFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, c.Record, got.Record)
	assert.Equal(t, c.OwnerID, got.OwnerID)

	_, err = ChangeFromJSON([]byte(`{"event":"INSERT"}`))
	assert.Error(t, err)
}
