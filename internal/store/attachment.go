package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hance08/carteira/internal/model"
)

func (s *Store) CreateAttachment(ctx context.Context, a model.Attachment) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
        INSERT INTO transaction_files (path, transaction_id, owner_id, content_type, created_at)
        VALUES (?, ?, ?, ?, ?)
    `), a.Path, a.TransactionID, a.OwnerID, a.ContentType, a.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert attachment: %w", s.translate(err))
	}
	return nil
}

func (s *Store) ListAttachments(ctx context.Context, txID string) ([]model.Attachment, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
        SELECT path, transaction_id, owner_id, content_type, created_at
        FROM transaction_files
        WHERE transaction_id = ?
        ORDER BY created_at, path
    `), txID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	var files []model.Attachment
	for rows.Next() {
		var a model.Attachment
		var createdAt int64
		if err := rows.Scan(&a.Path, &a.TransactionID, &a.OwnerID, &a.ContentType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.CreatedAt = time.UnixMilli(createdAt)
		files = append(files, a)
	}

	return files, rows.Err()
}

func (s *Store) DeleteAttachment(ctx context.Context, path string) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM transaction_files WHERE path = ?`), path)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return expectOneRow(result, "attachment", path)
}

func (s *Store) DeleteAttachments(ctx context.Context, txID string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM transaction_files WHERE transaction_id = ?`), txID)
	if err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}
