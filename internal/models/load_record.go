package models

import "time"

// LoadAction tags a load record as currently loaded or unloaded.
type LoadAction string

const (
	ActionLoaded   LoadAction = "Loaded"
	ActionUnloaded LoadAction = "Unloaded"
)

// LoadRecord associates a quantity of an item with a mover. One record is
// created per (mover, item) pairing at load time; ending a mission flips the
// action to Unloaded. Records are never deleted.
type LoadRecord struct {
	ID        string     `db:"id" json:"id"`
	MoverID   string     `db:"mover_id" json:"mover_id"`
	ItemID    string     `db:"item_id" json:"item_id"`
	Quantity  int        `db:"quantity" json:"quantity"`
	Action    LoadAction `db:"action" json:"action"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
