package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/carteira/internal/model"
)

// ListTransactions returns one page of the owner's transactions ordered by
// created_at DESC, id DESC.
func (s *Store) ListTransactions(ctx context.Context, q TxQuery) ([]model.Transaction, error) {
	query, args, err := buildListQuery(q, s.dialect.ph)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]model.Transaction, 0, q.Limit)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
        SELECT id, owner_id, created_at, amount_cents, kind_code
        FROM transactions
        WHERE id = ?
    `), id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction '%s': %w", id, ErrRecordNotFound)
		}
		return nil, err
	}
	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx model.Transaction) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
        INSERT INTO transactions (id, owner_id, created_at, amount_cents, kind_code)
        VALUES (?, ?, ?, ?, ?)
    `), tx.ID, tx.OwnerID, tx.CreatedAt.UnixMilli(), tx.Amount, tx.Kind)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", s.translate(err))
	}
	return nil
}

// UpdateTransaction rewrites amount and kind. Owner and creation time never change.
func (s *Store) UpdateTransaction(ctx context.Context, tx model.Transaction) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`
        UPDATE transactions
        SET amount_cents = ?, kind_code = ?
        WHERE id = ?
    `), tx.Amount, tx.Kind, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", s.translate(err))
	}
	return expectOneRow(result, "transaction", tx.ID)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM transactions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(result, "transaction", id)
}

func (s *Store) ListKinds(ctx context.Context) ([]model.Kind, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT code, label, direction
        FROM transaction_kinds
        ORDER BY direction, label
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query kinds: %w", err)
	}
	defer rows.Close()

	var kinds []model.Kind
	for rows.Next() {
		var k model.Kind
		var direction string
		if err := rows.Scan(&k.Code, &k.Label, &direction); err != nil {
			return nil, fmt.Errorf("failed to scan kind: %w", err)
		}
		k.Direction = model.Direction(direction)
		kinds = append(kinds, k)
	}

	return kinds, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (model.Transaction, error) {
	var tx model.Transaction
	var createdAt int64
	if err := r.Scan(&tx.ID, &tx.OwnerID, &createdAt, &tx.Amount, &tx.Kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tx, err
		}
		return tx, fmt.Errorf("failed to scan transaction: %w", err)
	}
	tx.CreatedAt = time.UnixMilli(createdAt)
	return tx, nil
}

func expectOneRow(result sql.Result, what, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s '%s': %w", what, id, ErrRecordNotFound)
	}
	return nil
}

// rebind rewrites "?" markers for dialects with numbered placeholders.
func (s *Store) rebind(query string) string {
	if s.dialect.ph(1) == "?" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(s.dialect.ph(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
