package noteservice

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/burnote/internal/apperr"
	"github.com/starford/burnote/internal/auth"
	"github.com/starford/burnote/internal/summary"
	"github.com/starford/burnote/internal/testutil"
)

func TestSaveAndListScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.TestDB(t), nil)
	abc := auth.Tenant{ID: auth.TenantID("abc")}
	xyz := auth.Tenant{ID: auth.TenantID("xyz")}

	if err := svc.SaveNote(ctx, abc, SaveRequest{Content: "hello"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}

	items, err := svc.ListNotes(ctx, abc)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(items) != 1 || items[0].Content != "hello" {
		t.Errorf("abc items = %+v, want one note with content hello", items)
	}

	items, err = svc.ListNotes(ctx, xyz)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("xyz items = %+v, want empty", items)
	}
}

func TestDeleteOtherTenant(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.TestDB(t), nil)
	k1 := auth.Tenant{ID: auth.TenantID("k1")}
	k2 := auth.Tenant{ID: auth.TenantID("k2")}

	_ = svc.SaveNote(ctx, k1, SaveRequest{Content: "mine"})
	items, _ := svc.ListNotes(ctx, k1)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	if err := svc.DeleteNote(ctx, k2, items[0].ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	items, _ = svc.ListNotes(ctx, k1)
	if len(items) != 1 {
		t.Errorf("note deleted by another tenant")
	}
}

func TestShareReadOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.TestDB(t), nil)
	owner := auth.Tenant{ID: auth.TenantID("abc")}

	if err := svc.SaveNote(ctx, owner, SaveRequest{Content: "secret", IsShare: true, PublicID: "tok123"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}

	content, err := svc.ReadShare(ctx, "tok123")
	if err != nil || content != "secret" {
		t.Fatalf("ReadShare = %q, %v", content, err)
	}
	if _, err := svc.ReadShare(ctx, "tok123"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second read err = %v, want ErrNotFound", err)
	}
}

func TestSaveShareRequiresPublicID(t *testing.T) {
	svc := NewService(testutil.TestDB(t), nil)
	err := svc.SaveNote(context.Background(), auth.Tenant{}, SaveRequest{Content: "x", IsShare: true})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSaveShareRejectsSlashInPublicID(t *testing.T) {
	svc := NewService(testutil.TestDB(t), nil)
	err := svc.SaveNote(context.Background(), auth.Tenant{}, SaveRequest{Content: "x", IsShare: true, PublicID: "a/b"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestNoStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(nil, nil)

	if err := svc.SaveNote(ctx, auth.Tenant{}, SaveRequest{Content: "x"}); !errors.Is(err, apperr.ErrBadConfiguration) {
		t.Errorf("SaveNote err = %v", err)
	}
	if _, err := svc.ListNotes(ctx, auth.Tenant{}); !errors.Is(err, apperr.ErrBadConfiguration) {
		t.Errorf("ListNotes err = %v", err)
	}
	if err := svc.DeleteNote(ctx, auth.Tenant{}, 1); !errors.Is(err, apperr.ErrBadConfiguration) {
		t.Errorf("DeleteNote err = %v", err)
	}
	if _, err := svc.ReadShare(ctx, "t"); !errors.Is(err, apperr.ErrBadConfiguration) {
		t.Errorf("ReadShare err = %v", err)
	}
	if err := svc.Ready(ctx); !errors.Is(err, apperr.ErrBadConfiguration) {
		t.Errorf("Ready err = %v", err)
	}
}

func TestSummarizeDegraded(t *testing.T) {
	svc := NewService(nil, nil)
	res := svc.Summarize(context.Background(), "text")
	if res.Available || res.Summary != summary.Unavailable {
		t.Errorf("res = %+v, want unavailable", res)
	}
}
