package model

import "time"

// Transaction is one income or expense entry owned by a profile.
// Amount is a non-negative value in cents; the sign comes from the kind.
type Transaction struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	Amount    int64
	Kind      string
}

type Attachment struct {
	Path          string
	TransactionID string
	OwnerID       string
	ContentType   string
	CreatedAt     time.Time
}

type Profile struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
