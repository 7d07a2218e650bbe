package store

import (
	"fmt"
	"strings"
	"time"
)

// Cursor marks the last row of a page for keyset pagination.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// TxQuery describes one page of an owner's transactions, newest first.
// Kind takes precedence over Kinds. Cursor, when set, replaces Offset.
type TxQuery struct {
	OwnerID string
	From    *time.Time
	Kind    string
	Kinds   []string
	Cursor  *Cursor
	Offset  int
	Limit   int
}

type placeholder func(n int) string

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

type sqlBuilder struct {
	ph   placeholder
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return b.ph(len(b.args))
}

func buildListQuery(q TxQuery, ph placeholder) (string, []any, error) {
	if q.OwnerID == "" {
		return "", nil, ErrMissingOwner
	}

	b := &sqlBuilder{ph: ph}
	var sb strings.Builder

	sb.WriteString(`SELECT id, owner_id, created_at, amount_cents, kind_code
        FROM transactions
        WHERE owner_id = `)
	sb.WriteString(b.arg(q.OwnerID))

	if q.From != nil {
		sb.WriteString(" AND created_at >= ")
		sb.WriteString(b.arg(q.From.UnixMilli()))
	}

	switch {
	case q.Kind != "":
		sb.WriteString(" AND kind_code = ")
		sb.WriteString(b.arg(q.Kind))
	case len(q.Kinds) > 0:
		marks := make([]string, len(q.Kinds))
		for i, k := range q.Kinds {
			marks[i] = b.arg(k)
		}
		sb.WriteString(" AND kind_code IN (")
		sb.WriteString(strings.Join(marks, ", "))
		sb.WriteString(")")
	}

	if q.Cursor != nil {
		ms := q.Cursor.CreatedAt.UnixMilli()
		fmt.Fprintf(&sb, " AND (created_at < %s OR (created_at = %s AND id < %s))",
			b.arg(ms), b.arg(ms), b.arg(q.Cursor.ID))
	}

	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(q.Limit))
	}
	if q.Cursor == nil && q.Offset > 0 {
		if q.Limit <= 0 {
			return "", nil, fmt.Errorf("offset %d requires a limit", q.Offset)
		}
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.arg(q.Offset))
	}

	return sb.String(), b.args, nil
}
