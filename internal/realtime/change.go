// Package realtime delivers row-level change events scoped to one owner.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/carteira/internal/model"
)

type Event string

const (
	Insert Event = "INSERT"
	Update Event = "UPDATE"
	Delete Event = "DELETE"
)

var ErrClosed = errors.New("broker is closed")

// Change is one insert, update or delete on a relation.
// Record is the new row for inserts and updates and nil for deletes.
type Change struct {
	Table    string             `json:"table"`
	Event    Event              `json:"event"`
	OwnerID  string             `json:"owner_id"`
	RecordID string             `json:"record_id"`
	Record   *model.Transaction `json:"record,omitempty"`
	At       time.Time          `json:"at"`
}

func (c Change) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

func ChangeFromJSON(data []byte) (Change, error) {
	var c Change
	if err := json.Unmarshal(data, &c); err != nil {
		return Change{}, fmt.Errorf("decode change: %w", err)
	}
	if c.Table == "" || c.OwnerID == "" {
		return Change{}, fmt.Errorf("decode change: missing table or owner")
	}
	return c, nil
}

// Filter selects the events of one relation for one owner.
type Filter struct {
	Table   string
	OwnerID string
}

func (f Filter) Match(c Change) bool {
	return c.Table == f.Table && c.OwnerID == f.OwnerID
}

type Subscription interface {
	// Events is closed once the subscription is closed.
	Events() <-chan Change
	Close() error
}

type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

type Broker interface {
	Publisher
	Subscribe(ctx context.Context, f Filter) (Subscription, error)
	Close() error
}
