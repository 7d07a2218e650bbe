package store

import (
	"context"

	"github.com/hance08/carteira/internal/model"
)

// TransactionReader is the read side used by the ledger and summaries.
type TransactionReader interface {
	ListTransactions(ctx context.Context, q TxQuery) ([]model.Transaction, error)
}

type KindReader interface {
	ListKinds(ctx context.Context) ([]model.Kind, error)
}

type Repository interface {
	TransactionReader
	KindReader

	// Transaction Operations
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, tx model.Transaction) error
	UpdateTransaction(ctx context.Context, tx model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	// Profile Operations
	CreateProfile(ctx context.Context, p model.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*model.Profile, error)
	Balance(ctx context.Context, ownerID string) (int64, error)

	// Attachment Operations
	CreateAttachment(ctx context.Context, a model.Attachment) error
	ListAttachments(ctx context.Context, txID string) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, path string) error
	DeleteAttachments(ctx context.Context, txID string) error

	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}
