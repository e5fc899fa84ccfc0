// Package noteservice coordinates tenant-scoped note storage, read-once
// shares, and summaries.
package noteservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/burnote/internal/apperr"
	"github.com/starford/burnote/internal/auth"
	"github.com/starford/burnote/internal/metrics"
	"github.com/starford/burnote/internal/models"
	"github.com/starford/burnote/internal/store"
	"github.com/starford/burnote/internal/summary"
)

// NoteListItem is a private note as returned by list operations.
type NoteListItem struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveRequest describes a note to store.
type SaveRequest struct {
	Content  string
	IsShare  bool
	PublicID string
}

// Service coordinates store and summary operations.
type Service struct {
	store   store.NoteStore
	summary *summary.Gateway
}

// NewService creates a new note service. A nil store makes every storage
// operation fail with apperr.ErrBadConfiguration.
func NewService(st store.NoteStore, gw *summary.Gateway) *Service {
	if gw == nil {
		gw = summary.NewGateway(nil, nil)
	}
	return &Service{store: st, summary: gw}
}

var errNoStore = fmt.Errorf("%w: storage is not configured", apperr.ErrBadConfiguration)

// SaveNote stores a note for tenant. Shares must carry a public id that fits
// in a single URL path segment.
func (s *Service) SaveNote(ctx context.Context, tenant auth.Tenant, req SaveRequest) error {
	if s.store == nil {
		return errNoStore
	}
	if req.IsShare && req.PublicID == "" {
		return fmt.Errorf("%w: public_id is required for shares", apperr.ErrInvalidInput)
	}
	if req.IsShare && strings.Contains(req.PublicID, "/") {
		return fmt.Errorf("%w: public_id must not contain '/'", apperr.ErrInvalidInput)
	}
	_, err := s.store.Save(ctx, store.SaveParams{
		Content:  req.Content,
		IsShare:  req.IsShare,
		PublicID: req.PublicID,
		Owner:    tenant.ID,
	})
	record("save", err)
	return err
}

// ListNotes returns tenant's private notes, newest first.
func (s *Service) ListNotes(ctx context.Context, tenant auth.Tenant) ([]NoteListItem, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	rows, err := s.store.List(ctx, tenant.ID)
	record("list", err)
	if err != nil {
		return nil, err
	}
	return toListItems(rows), nil
}

// DeleteNote removes tenant's private note id. Unknown ids are not an error.
func (s *Service) DeleteNote(ctx context.Context, tenant auth.Tenant, id int64) error {
	if s.store == nil {
		return errNoStore
	}
	err := s.store.Delete(ctx, id, tenant.ID)
	record("delete", err)
	return err
}

// ReadShare returns a share's content and destroys it. It is not tenant
// scoped: the public id is the capability.
func (s *Service) ReadShare(ctx context.Context, publicID string) (string, error) {
	if s.store == nil {
		return "", errNoStore
	}
	content, err := s.store.ReadAndBurn(ctx, publicID)
	record("share_read", err)
	return content, err
}

// Summarize asks the summary gateway for a summary of text.
func (s *Service) Summarize(ctx context.Context, text string) summary.Result {
	res := s.summary.Summarize(ctx, text)
	if res.Available {
		metrics.Op("summarize", metrics.ResultOK)
	} else {
		metrics.Op("summarize", metrics.ResultDegraded)
	}
	return res
}

// Ready reports whether the backing store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	if s.store == nil {
		return errNoStore
	}
	return s.store.Ping(ctx)
}

func toListItems(rows []models.Note) []NoteListItem {
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{ID: r.ID, Content: r.Content, CreatedAt: r.CreatedAt}
	}
	return items
}

func record(op string, err error) {
	switch {
	case err == nil:
		metrics.Op(op, metrics.ResultOK)
	case errors.Is(err, apperr.ErrNotFound):
		metrics.Op(op, metrics.ResultNotFound)
	default:
		metrics.Op(op, metrics.ResultError)
	}
}
