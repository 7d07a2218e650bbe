package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/utils"
)

// Create validates and stores a new transaction for ownerID, then uploads the
// optional file. When only the upload fails the new ID is returned together
// with ErrAttachmentFailed.
func (ts *TransactionService) Create(ctx context.Context, ownerID string, in NewTransaction) (string, error) {
	kinds, err := ts.kinds.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	amount, err := validateInput(in.AmountRaw, in.Kind, kinds)
	if err != nil {
		return "", err
	}

	tx := model.Transaction{
		ID:      ts.newID(),
		OwnerID: ownerID,
		// stored with millisecond precision
		CreatedAt: time.UnixMilli(ts.now().UnixMilli()),
		Amount:    amount,
		Kind:      in.Kind,
	}

	if err := ts.repo.CreateTransaction(ctx, tx); err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}
	ts.publish(ctx, realtime.Insert, tx.OwnerID, tx.ID, &tx)

	ts.log.Info().
		Str("transaction_id", tx.ID).
		Str("kind", tx.Kind).
		Int64("amount", tx.Amount).
		Msg("transaction created")

	if in.Attachment != nil {
		if _, err := ts.files.Upload(ctx, ownerID, tx.ID, *in.Attachment); err != nil {
			ts.log.Error().Err(err).Str("transaction_id", tx.ID).Msg("attachment upload failed")
			return tx.ID, fmt.Errorf("%w: %w", ErrAttachmentFailed, err)
		}
	}

	return tx.ID, nil
}

// Update changes the amount and kind of an owned transaction. The creation
// time never changes.
func (ts *TransactionService) Update(ctx context.Context, ownerID, id string, edit TransactionEdit) (*model.Transaction, error) {
	tx, err := ts.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	kinds, err := ts.kinds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	amountRaw := edit.AmountRaw
	if amountRaw == "" {
		amountRaw = utils.FormatFromCents(tx.Amount)
	}
	kind := edit.Kind
	if kind == "" {
		kind = tx.Kind
	}

	amount, err := validateInput(amountRaw, kind, kinds)
	if err != nil {
		return nil, err
	}

	tx.Amount = amount
	tx.Kind = kind
	if err := ts.repo.UpdateTransaction(ctx, *tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	ts.publish(ctx, realtime.Update, tx.OwnerID, tx.ID, tx)

	return tx, nil
}

// Delete removes an owned transaction and its files.
func (ts *TransactionService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := ts.Get(ctx, ownerID, id); err != nil {
		return err
	}

	if err := ts.files.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	if err := ts.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	ts.publish(ctx, realtime.Delete, ownerID, id, nil)

	ts.log.Info().Str("transaction_id", id).Msg("transaction deleted")
	return nil
}

// Attach uploads another file to an owned transaction.
func (ts *TransactionService) Attach(ctx context.Context, ownerID, id string, asset attachment.Asset) (model.Attachment, error) {
	if _, err := ts.Get(ctx, ownerID, id); err != nil {
		return model.Attachment{}, err
	}
	return ts.files.Upload(ctx, ownerID, id, asset)
}

// Detach removes one file, named by object path or file name.
func (ts *TransactionService) Detach(ctx context.Context, ownerID, id, name string) error {
	if _, err := ts.Get(ctx, ownerID, id); err != nil {
		return err
	}
	f, err := ts.findAttachment(ctx, id, name)
	if err != nil {
		return err
	}
	return ts.files.Delete(ctx, id, f.Path)
}

// publish reports a change. The write already happened, so a failure is only
// logged.
func (ts *TransactionService) publish(ctx context.Context, event realtime.Event, ownerID, id string, tx *model.Transaction) {
	if ts.pub == nil {
		return
	}

	var record *model.Transaction
	if tx != nil {
		cp := *tx
		record = &cp
	}

	err := ts.pub.Publish(ctx, realtime.Change{
		Table:    constants.TableTransactions,
		Event:    event,
		OwnerID:  ownerID,
		RecordID: id,
		Record:   record,
		At:       ts.now(),
	})
	if err != nil {
		ts.log.Warn().Err(err).
			Str("event", string(event)).
			Str("transaction_id", id).
			Msg("failed to publish change")
	}
}
