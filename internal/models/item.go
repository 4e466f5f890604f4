package models

import "time"

// Item is a cargo catalog entry. Items are immutable after creation and are
// never deleted.
type Item struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Weight    int       `db:"weight" json:"weight"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
