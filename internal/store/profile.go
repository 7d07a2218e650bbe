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

func (s *Store) CreateProfile(ctx context.Context, p model.Profile) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
        INSERT INTO profiles (id, email, name, password_hash, created_at)
        VALUES (?, ?, ?, ?, ?)
    `), p.ID, strings.ToLower(p.Email), p.Name, p.PasswordHash, p.CreatedAt.UnixMilli())
	if err != nil {
		if s.dialect.isUnique(err) {
			return fmt.Errorf("'%s': %w", p.Email, ErrEmailTaken)
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
        SELECT id, email, name, password_hash, created_at
        FROM profiles
        WHERE email = ?
    `), strings.ToLower(email))
	return scanProfile(row, email)
}

func (s *Store) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
        SELECT id, email, name, password_hash, created_at
        FROM profiles
        WHERE id = ?
    `), id)
	return scanProfile(row, id)
}

// Balance is the sum of inflows minus the sum of outflows for the owner.
func (s *Store) Balance(ctx context.Context, ownerID string) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx, s.rebind(`
        SELECT CAST(COALESCE(SUM(
            CASE WHEN k.direction = 'inflow' THEN t.amount_cents ELSE -t.amount_cents END
        ), 0) AS BIGINT)
        FROM transactions t
        JOIN transaction_kinds k ON k.code = t.kind_code
        WHERE t.owner_id = ?
    `), ownerID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate balance: %w", err)
	}
	return balance, nil
}

func scanProfile(row *sql.Row, key string) (*model.Profile, error) {
	p := &model.Profile{}
	var createdAt int64
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile '%s': %w", key, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query profile '%s': %w", key, err)
	}
	p.CreatedAt = time.UnixMilli(createdAt)
	return p, nil
}
