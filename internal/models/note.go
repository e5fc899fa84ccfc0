// Package models defines the domain types for burnote.
package models

import "time"

// Note is a stored note. Private notes carry an Owner when tenant isolation
// is active; shares carry a PublicID and are destroyed on first read.
type Note struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	IsShare   bool      `db:"is_share" json:"-"`
	PublicID  *string   `db:"public_id" json:"-"`
	Owner     *string   `db:"owner" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
