package service

import (
	"errors"

	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/model"
)

// ErrAttachmentFailed is returned alongside the ID of a transaction that was
// saved but whose file could not be stored.
var ErrAttachmentFailed = errors.New("transaction saved but the attachment failed")

// NewTransaction is what the user typed on the add screen.
type NewTransaction struct {
	AmountRaw  string
	Kind       string
	Attachment *attachment.Asset
}

// TransactionEdit carries the editable fields. Empty values keep the
// stored ones.
type TransactionEdit struct {
	AmountRaw string
	Kind      string
}

// TransactionDetail is a transaction with its kind resolved and its files.
type TransactionDetail struct {
	model.Transaction
	KindInfo    model.Kind
	KnownKind   bool
	Attachments []model.Attachment
}

// Signed returns the amount with the sign of its direction.
func (d *TransactionDetail) Signed() int64 {
	if d.KnownKind && d.KindInfo.Direction == model.Outflow {
		return -d.Amount
	}
	return d.Amount
}
