package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

func TestCreateAndListRecentNotifications(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Notification{})
	ctx := context.Background()

	n1, err := CreateNotification(ctx, db, "u1", &domain.Notification{
		Type:  "DIAG_REMINDER",
		Title: "오늘의 건강 체크",
		Body:  "아직 체크인을 하지 않았어요",
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	_, _ = CreateNotification(ctx, db, "u2", &domain.Notification{Type: "SYSTEM", Title: "other user"})

	// Age one beyond the window.
	old, _ := CreateNotification(ctx, db, "u1", &domain.Notification{Type: "SYSTEM", Title: "old"})
	stale := time.Now().UTC().Add(-8 * 24 * time.Hour)
	if err := db.Model(&domain.Notification{}).Where("id = ?", old.ID).Update("created_at", stale).Error; err != nil {
		t.Fatalf("age notification: %v", err)
	}

	out, err := ListRecentNotifications(ctx, db, "u1", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ListRecentNotifications: %v", err)
	}
	if len(out) != 1 || out[0].ID != n1.ID {
		t.Fatalf("unexpected recent set: %+v", out)
	}
}

func TestMarkNotificationRead_IdempotentAndScoped(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Notification{})
	ctx := context.Background()
	n, _ := CreateNotification(ctx, db, "u1", &domain.Notification{Type: "SYSTEM", Title: "t"})

	if err := MarkNotificationRead(ctx, db, n.ID, "u1"); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	// Second mark is a no-op, not an error.
	if err := MarkNotificationRead(ctx, db, n.ID, "u1"); err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if err := MarkNotificationRead(ctx, db, n.ID, "u2"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-user mark: want ErrRecordNotFound, got %v", err)
	}

	unread, err := CountUnread(ctx, db, "u1")
	if err != nil || unread != 0 {
		t.Fatalf("CountUnread = %d, %v; want 0", unread, err)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Notification{})
	ctx := context.Background()
	_, _ = CreateNotification(ctx, db, "u1", &domain.Notification{Type: "SYSTEM", Title: "a"})
	_, _ = CreateNotification(ctx, db, "u1", &domain.Notification{Type: "SYSTEM", Title: "b"})
	_, _ = CreateNotification(ctx, db, "u2", &domain.Notification{Type: "SYSTEM", Title: "c"})

	if err := MarkAllNotificationsRead(ctx, db, "u1"); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}
	if n, _ := CountUnread(ctx, db, "u1"); n != 0 {
		t.Fatalf("u1 unread = %d, want 0", n)
	}
	if n, _ := CountUnread(ctx, db, "u2"); n != 1 {
		t.Fatalf("u2 unread = %d, want 1", n)
	}
}

func TestDeleteNotification(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Notification{})
	ctx := context.Background()
	n, _ := CreateNotification(ctx, db, "u1", &domain.Notification{Type: "SYSTEM", Title: "t"})

	if err := DeleteNotification(ctx, db, n.ID, "u2"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-user delete: want ErrRecordNotFound, got %v", err)
	}
	if err := DeleteNotification(ctx, db, n.ID, "u1"); err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}
	out, _ := ListRecentNotifications(ctx, db, "u1", 7*24*time.Hour)
	if len(out) != 0 {
		t.Fatalf("deleted notification still listed: %+v", out)
	}
}

func TestNotificationExists_DedupePerDay(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Notification{})
	ctx := context.Background()
	today := time.Now().UTC()

	exists, err := NotificationExists(ctx, db, "u1", "DIAG_REMINDER", "p1", today)
	if err != nil || exists {
		t.Fatalf("pre-insert: exists=%v err=%v", exists, err)
	}

	_, _ = CreateNotification(ctx, db, "u1", &domain.Notification{
		Type:   "DIAG_REMINDER",
		RefKey: "p1",
		Title:  "t",
	})

	exists, err = NotificationExists(ctx, db, "u1", "DIAG_REMINDER", "p1", today)
	if err != nil || !exists {
		t.Fatalf("post-insert: exists=%v err=%v", exists, err)
	}

	// Different dedupe key or type does not collide.
	if ok, _ := NotificationExists(ctx, db, "u1", "DIAG_REMINDER", "p2", today); ok {
		t.Fatal("different ref key must not match")
	}
	if ok, _ := NotificationExists(ctx, db, "u1", "REPORT_READY", "p1", today); ok {
		t.Fatal("different type must not match")
	}
}
