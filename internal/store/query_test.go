package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	from := time.UnixMilli(1700000000000)

	tests := []struct {
		name     string
		q        TxQuery
		ph       placeholder
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "owner only",
			q:    TxQuery{OwnerID: "u1", Limit: 25},
			ph:   questionMark,
			wantSQL: `SELECT id, owner_id, created_at, amount_cents, kind_code
        FROM transactions
        WHERE owner_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
			wantArgs: []any{"u1", 25},
		},
		{
			name: "kind wins over kinds",
			q:    TxQuery{OwnerID: "u1", Kind: "rent", Kinds: []string{"salary"}, Offset: 25, Limit: 25},
			ph:   questionMark,
			wantSQL: `SELECT id, owner_id, created_at, amount_cents, kind_code
        FROM transactions
        WHERE owner_id = ? AND kind_code = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
			wantArgs: []any{"u1", "rent", 25, 25},
		},
		{
			name: "period and kind set with numbered placeholders",
			q:    TxQuery{OwnerID: "u1", From: &from, Kinds: []string{"rent", "groceries"}, Limit: 25},
			ph:   dollar,
			wantSQL: `SELECT id, owner_id, created_at, amount_cents, kind_code
        FROM transactions
        WHERE owner_id = $1 AND created_at >= $2 AND kind_code IN ($3, $4) ORDER BY created_at DESC, id DESC LIMIT $5`,
			wantArgs: []any{"u1", int64(1700000000000), "rent", "groceries", 25},
		},
		{
			name: "cursor replaces offset",
			q:    TxQuery{OwnerID: "u1", Cursor: &Cursor{CreatedAt: from, ID: "t9"}, Offset: 50, Limit: 25},
			ph:   questionMark,
			wantSQL: `SELECT id, owner_id, created_at, amount_cents, kind_code
        FROM transactions
        WHERE owner_id = ? AND (created_at < ? OR (created_at = ? AND id < ?)) ORDER BY created_at DESC, id DESC LIMIT ?`,
			wantArgs: []any{"u1", int64(1700000000000), int64(1700000000000), "t9", 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildListQuery(tt.q, tt.ph)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildListQuery_RequiresOwner(t *testing.T) {
	_, _, err := buildListQuery(TxQuery{Kind: "rent", Limit: 25}, questionMark)
	assert.ErrorIs(t, err, ErrMissingOwner)
}

func TestBuildListQuery_OffsetNeedsLimit(t *testing.T) {
	_, _, err := buildListQuery(TxQuery{OwnerID: "u1", Offset: 10}, questionMark)
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: postgresDialect}
	assert.Equal(t, "UPDATE t SET a = $1 WHERE id = $2", pg.rebind("UPDATE t SET a = ? WHERE id = ?"))

	lite := &Store{dialect: sqliteDialect}
	assert.Equal(t, "SELECT ? FROM t", lite.rebind("SELECT ? FROM t"))
}
