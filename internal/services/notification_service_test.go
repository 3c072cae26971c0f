package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/push"
)

// ----- Fakes -----

type fakeNotifRepo struct {
	items     []*domain.Notification
	createErr error
}

func (r *fakeNotifRepo) CreateNotification(_ context.Context, _ *gorm.DB, userID string, n *domain.Notification) (*domain.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	n.ID = "n" + string(rune('0'+len(r.items)+1))
	n.UserID = userID
	n.CreatedAt = time.Now().UTC()
	r.items = append(r.items, n)
	return n, nil
}

func (r *fakeNotifRepo) ListRecentNotifications(_ context.Context, _ *gorm.DB, userID string, window time.Duration) ([]domain.Notification, error) {
	cutoff := time.Now().UTC().Add(-window)
	var out []domain.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if n.UserID == userID && n.CreatedAt.After(cutoff) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotifRepo) CountUnread(_ context.Context, _ *gorm.DB, userID string) (int64, error) {
	var c int64
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (r *fakeNotifRepo) MarkNotificationRead(_ context.Context, _ *gorm.DB, id, userID string) error {
	for _, n := range r.items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotifRepo) MarkAllNotificationsRead(_ context.Context, _ *gorm.DB, userID string) error {
	for _, n := range r.items {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotifRepo) DeleteNotification(_ context.Context, _ *gorm.DB, id, userID string) error {
	for i, n := range r.items {
		if n.ID == id && n.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotifRepo) NotificationExists(_ context.Context, _ *gorm.DB, userID, ntype, refKey string, day time.Time) (bool, error) {
	for _, n := range r.items {
		if n.UserID == userID && n.Type == ntype && n.RefKey == refKey &&
			n.CreatedAt.Format("2006-01-02") == day.Format("2006-01-02") {
			return true, nil
		}
	}
	return false, nil
}

type fakeSender struct {
	sent []push.Message
	err  error
}

func (f *fakeSender) Send(msgs []push.Message) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, msgs...)
	return len(msgs), nil
}

// ----- Tests -----

func TestNotify_PersistsThenPushes(t *testing.T) {
	repo := &fakeNotifRepo{}
	sender := &fakeSender{}
	svc := NewNotificationService(nil, repo, sender)
	user := &domain.User{ID: "u1", PushToken: "ExponentPushToken[abc]", AlarmsEnabled: true}

	err := svc.Notify(context.Background(), user, NotifDiagReminder, "p1",
		"오늘의 건강 체크", "아직 체크인을 하지 않았어요", map[string]string{"petId": "p1"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(repo.items) != 1 || repo.items[0].Type != NotifDiagReminder {
		t.Fatalf("persisted: %+v", repo.items)
	}
	if repo.items[0].Data != `{"petId":"p1"}` {
		t.Fatalf("data payload: %q", repo.items[0].Data)
	}
	if len(sender.sent) != 1 || sender.sent[0].Token != user.PushToken {
		t.Fatalf("pushed: %+v", sender.sent)
	}
}

func TestNotify_SkipsDeviceWithoutTokenOrWithAlarmsOff(t *testing.T) {
	repo := &fakeNotifRepo{}
	sender := &fakeSender{}
	svc := NewNotificationService(nil, repo, sender)
	ctx := context.Background()

	if err := svc.Notify(ctx, &domain.User{ID: "u1", AlarmsEnabled: true}, NotifSystem, "", "t", "b", nil); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := svc.Notify(ctx, &domain.User{ID: "u2", PushToken: "ExponentPushToken[x]"}, NotifSystem, "", "t", "b", nil); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("push went out anyway: %+v", sender.sent)
	}
	if len(repo.items) != 2 {
		t.Fatalf("center entries = %d, want 2 (persisted regardless)", len(repo.items))
	}
}

func TestNotify_DeliveryFailureIsSwallowed(t *testing.T) {
	repo := &fakeNotifRepo{}
	svc := NewNotificationService(nil, repo, &fakeSender{err: errors.New("gateway down")})
	user := &domain.User{ID: "u1", PushToken: "ExponentPushToken[x]", AlarmsEnabled: true}

	if err := svc.Notify(context.Background(), user, NotifSystem, "", "t", "b", nil); err != nil {
		t.Fatalf("delivery failure must not fail Notify: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatal("center entry missing")
	}
}

func TestNotify_PersistFailureReturns(t *testing.T) {
	svc := NewNotificationService(nil, &fakeNotifRepo{createErr: errors.New("db down")}, &fakeSender{})
	user := &domain.User{ID: "u1", PushToken: "ExponentPushToken[x]", AlarmsEnabled: true}
	if err := svc.Notify(context.Background(), user, NotifSystem, "", "t", "b", nil); err == nil {
		t.Fatal("persistence failure must surface")
	}
}

func TestListRecent_WithUnreadCount(t *testing.T) {
	repo := &fakeNotifRepo{}
	svc := NewNotificationService(nil, repo, nil)
	ctx := context.Background()
	user := &domain.User{ID: "u1"}

	_ = svc.Notify(ctx, user, NotifSystem, "", "a", "", nil)
	_ = svc.Notify(ctx, user, NotifSystem, "", "b", "", nil)
	_ = svc.MarkRead(ctx, repo.items[0].ID, "u1")

	items, unread, err := svc.ListRecent(ctx, "u1")
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(items) != 2 || unread != 1 {
		t.Fatalf("items=%d unread=%d", len(items), unread)
	}
}

func TestMarkReadAndDelete_NotFound(t *testing.T) {
	svc := NewNotificationService(nil, &fakeNotifRepo{}, nil)
	ctx := context.Background()
	if err := svc.MarkRead(ctx, "missing", "u1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("MarkRead: want ErrNotificationNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "missing", "u1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("Delete: want ErrNotificationNotFound, got %v", err)
	}
}

func TestSentToday(t *testing.T) {
	repo := &fakeNotifRepo{}
	svc := NewNotificationService(nil, repo, nil)
	ctx := context.Background()
	user := &domain.User{ID: "u1"}

	sent, err := svc.SentToday(ctx, "u1", NotifDiagReminder, "p1")
	if err != nil || sent {
		t.Fatalf("pre: sent=%v err=%v", sent, err)
	}
	_ = svc.Notify(ctx, user, NotifDiagReminder, "p1", "t", "", nil)
	sent, err = svc.SentToday(ctx, "u1", NotifDiagReminder, "p1")
	if err != nil || !sent {
		t.Fatalf("post: sent=%v err=%v", sent, err)
	}
}
