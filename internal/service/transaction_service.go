package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/store"
	"github.com/rs/zerolog"
)

type TransactionService struct {
	repo  store.Repository
	kinds *KindService
	files *attachment.Service
	pub   realtime.Publisher
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewTransactionService(repo store.Repository, kinds *KindService, files *attachment.Service, pub realtime.Publisher, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		repo:  repo,
		kinds: kinds,
		files: files,
		pub:   pub,
		log:   log.With().Str("component", "transactions").Logger(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Get returns the transaction if ownerID owns it. Someone else's transaction
// is reported as not found.
func (ts *TransactionService) Get(ctx context.Context, ownerID, id string) (*model.Transaction, error) {
	tx, err := ts.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.OwnerID != ownerID {
		return nil, fmt.Errorf("transaction '%s': %w", id, store.ErrRecordNotFound)
	}
	return tx, nil
}

// Detail resolves the kind and lists the files of a transaction.
func (ts *TransactionService) Detail(ctx context.Context, ownerID, id string) (*TransactionDetail, error) {
	tx, err := ts.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	kinds, err := ts.kinds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	files, err := ts.files.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	kind, known := kinds.Get(tx.Kind)
	return &TransactionDetail{
		Transaction: *tx,
		KindInfo:    kind,
		KnownKind:   known,
		Attachments: files,
	}, nil
}

// Recent returns the owner's newest transactions.
func (ts *TransactionService) Recent(ctx context.Context, ownerID string, limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = constants.RecentLimit
	}
	txs, err := ts.repo.ListTransactions(ctx, store.TxQuery{OwnerID: ownerID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return txs, nil
}

// OpenAttachment streams one file of an owned transaction. The caller closes
// the reader.
func (ts *TransactionService) OpenAttachment(ctx context.Context, ownerID, id, name string) (io.ReadCloser, model.Attachment, error) {
	if _, err := ts.Get(ctx, ownerID, id); err != nil {
		return nil, model.Attachment{}, err
	}
	f, err := ts.findAttachment(ctx, id, name)
	if err != nil {
		return nil, model.Attachment{}, err
	}
	rc, err := ts.files.Open(ctx, f.Path)
	if err != nil {
		return nil, model.Attachment{}, err
	}
	return rc, f, nil
}

// findAttachment matches name against the full object path or its file name.
func (ts *TransactionService) findAttachment(ctx context.Context, txID, name string) (model.Attachment, error) {
	files, err := ts.files.List(ctx, txID)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("failed to list attachments: %w", err)
	}
	for _, f := range files {
		if f.Path == name || attachment.FilenameFromPath(f.Path) == name {
			return f, nil
		}
	}
	return model.Attachment{}, fmt.Errorf("file '%s': %w", name, store.ErrRecordNotFound)
}
