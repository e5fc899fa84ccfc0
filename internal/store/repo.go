package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/burnote/internal/apperr"
	"github.com/starford/burnote/internal/models"
)

// SaveParams describes a note to insert. PublicID is stored only for shares;
// Owner is stored only when non-empty.
type SaveParams struct {
	Content  string
	IsShare  bool
	PublicID string
	Owner    string
}

// Save inserts one note and returns its id. A share token already held by
// an unread share yields apperr.ErrAlreadyExists.
func (db *DB) Save(ctx context.Context, p SaveParams) (int64, error) {
	var publicID, owner sql.NullString
	if p.IsShare {
		publicID = sql.NullString{String: p.PublicID, Valid: true}
	}
	if p.Owner != "" {
		owner = sql.NullString{String: p.Owner, Valid: true}
	}

	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO notes (content, is_share, public_id, owner, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.Content, p.IsShare, publicID, owner, time.Now().UTC())
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("store: save note: %w", apperr.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("store: save note: %w", err)
	}
	return res.LastInsertId()
}

// List returns private notes, newest first.
func (db *DB) List(ctx context.Context, owner string) ([]models.Note, error) {
	query := `SELECT id, content, is_share, public_id, owner, created_at FROM notes WHERE is_share = 0`
	var args []any
	if owner != "" {
		query += ` AND owner = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY id DESC`

	notes := []models.Note{}
	if err := db.conn.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	return notes, nil
}

// Delete removes a private note. Matching nothing is not an error.
func (db *DB) Delete(ctx context.Context, id int64, owner string) error {
	query := `DELETE FROM notes WHERE id = ? AND is_share = 0`
	args := []any{id}
	if owner != "" {
		query += ` AND owner = ?`
		args = append(args, owner)
	}
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return nil
}

// ReadAndBurn returns the content of the share identified by publicID and
// deletes it in the same statement, so concurrent callers cannot both see it.
func (db *DB) ReadAndBurn(ctx context.Context, publicID string) (string, error) {
	var content string
	err := db.conn.GetContext(ctx, &content,
		`DELETE FROM notes WHERE public_id = ? AND is_share = 1 RETURNING content`, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.ErrNotFound
		}
		return "", fmt.Errorf("store: read share: %w", err)
	}
	return content, nil
}

// Count returns the total number of stored rows, shares included.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.GetContext(ctx, &n, `SELECT count(*) FROM notes`); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}
