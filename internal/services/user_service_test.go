package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// ----- Fake repo -----

type fakeUserRepo struct {
	users map[string]*domain.User // by id
	bySub map[string]*domain.User

	createErr    error
	createCalled int
	tokenByID    map[string]string
	deviceByID   map[string]string
	deleted      map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      map[string]*domain.User{},
		bySub:      map[string]*domain.User{},
		tokenByID:  map[string]string{},
		deviceByID: map[string]string{},
		deleted:    map[string]bool{},
	}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, _ *gorm.DB, sub, email, name string) (*domain.User, error) {
	r.createCalled++
	if r.createErr != nil {
		return nil, r.createErr
	}
	u := &domain.User{ID: "u-" + sub, Sub: sub, Email: email, Name: name, AlarmsEnabled: true}
	r.users[u.ID] = u
	r.bySub[sub] = u
	return u, nil
}

func (r *fakeUserRepo) GetUserBySub(_ context.Context, _ *gorm.DB, sub string) (*domain.User, error) {
	if u, ok := r.bySub[sub]; ok && !r.deleted[u.ID] {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUser(_ context.Context, _ *gorm.DB, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok && !r.deleted[id] {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, _ *gorm.DB, id string, updates map[string]any) error {
	u, ok := r.users[id]
	if !ok || r.deleted[id] {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["nickname"].(string); ok {
		u.Nickname = v
	}
	if v, ok := updates["name"].(string); ok {
		u.Name = v
	}
	if v, ok := updates["alarms_enabled"].(bool); ok {
		u.AlarmsEnabled = v
	}
	if v, ok := updates["alarm_config"].(string); ok {
		u.AlarmConfig = v
	}
	return nil
}

func (r *fakeUserRepo) SetPushToken(_ context.Context, _ *gorm.DB, id, token, deviceInfo string) error {
	if _, ok := r.users[id]; !ok || r.deleted[id] {
		return gorm.ErrRecordNotFound
	}
	r.tokenByID[id] = token
	r.deviceByID[id] = deviceInfo
	return nil
}

func (r *fakeUserRepo) SoftDeleteUser(_ context.Context, _ *gorm.DB, id string) error {
	if _, ok := r.users[id]; !ok || r.deleted[id] {
		return gorm.ErrRecordNotFound
	}
	r.deleted[id] = true
	return nil
}

func expoLike(token string) bool { return strings.HasPrefix(token, "ExponentPushToken[") }

func TestGetOrCreate_ProvisionsOnce(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(nil, repo, expoLike)
	ctx := context.Background()

	u1, err := svc.GetOrCreate(ctx, "sub-1", "a@example.com", "Alice")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	u2, err := svc.GetOrCreate(ctx, "sub-1", "ignored@example.com", "Ignored")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if u1.ID != u2.ID {
		t.Fatalf("same sub resolved to different accounts: %s vs %s", u1.ID, u2.ID)
	}
	if repo.createCalled != 1 {
		t.Fatalf("CreateUser called %d times, want 1", repo.createCalled)
	}
	if u2.Email != "a@example.com" {
		t.Fatalf("later claims overwrote the row: %+v", u2)
	}
}

func TestGetOrCreate_RaceFallsBackToLookup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(nil, repo, nil)
	ctx := context.Background()

	// Simulate a concurrent winner: create fails, but the row exists.
	winner, _ := repo.CreateUser(ctx, nil, "sub-1", "", "")
	repo.createErr = errors.New("UNIQUE constraint failed")
	repo.createCalled = 0

	u, err := svc.GetOrCreate(ctx, "sub-1", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate after race: %v", err)
	}
	if u.ID != winner.ID {
		t.Fatalf("resolved %s, want winner %s", u.ID, winner.ID)
	}
}

func TestUpdateProfile_PartialEdit(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(nil, repo, nil)
	ctx := context.Background()
	u, _ := repo.CreateUser(ctx, nil, "sub-1", "", "Alice")

	nick := "  nabi-mom "
	got, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Nickname: &nick})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Nickname != "nabi-mom" {
		t.Fatalf("nickname = %q, want trimmed", got.Nickname)
	}
	if got.Name != "Alice" {
		t.Fatalf("untouched field changed: %q", got.Name)
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc := NewUserService(nil, newFakeUserRepo(), nil)
	n := "x"
	if _, err := svc.UpdateProfile(context.Background(), "missing", ProfileUpdate{Name: &n}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestRegisterPushToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(nil, repo, expoLike)
	ctx := context.Background()
	u, _ := repo.CreateUser(ctx, nil, "sub-1", "", "")

	if err := svc.RegisterPushToken(ctx, u.ID, "ExponentPushToken[abc]", `{"os":"ios"}`); err != nil {
		t.Fatalf("RegisterPushToken: %v", err)
	}
	if repo.tokenByID[u.ID] != "ExponentPushToken[abc]" {
		t.Fatalf("token not stored: %q", repo.tokenByID[u.ID])
	}

	if err := svc.RegisterPushToken(ctx, u.ID, "raw-fcm-token", ""); !errors.Is(err, ErrInvalidPushToken) {
		t.Fatalf("bad token: want ErrInvalidPushToken, got %v", err)
	}

	// Empty token clears without validation.
	if err := svc.RegisterPushToken(ctx, u.ID, "", ""); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if repo.tokenByID[u.ID] != "" {
		t.Fatalf("token not cleared: %q", repo.tokenByID[u.ID])
	}
}

func TestSetAlarms(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(nil, repo, nil)
	ctx := context.Background()
	u, _ := repo.CreateUser(ctx, nil, "sub-1", "", "")

	if err := svc.SetAlarms(ctx, u.ID, false, `{"hour":21}`); err != nil {
		t.Fatalf("SetAlarms: %v", err)
	}
	if u.AlarmsEnabled || u.AlarmConfig != `{"hour":21}` {
		t.Fatalf("alarm prefs not applied: %+v", u)
	}

	// Blank config keeps the stored document.
	if err := svc.SetAlarms(ctx, u.ID, true, "  "); err != nil {
		t.Fatalf("SetAlarms: %v", err)
	}
	if !u.AlarmsEnabled || u.AlarmConfig != `{"hour":21}` {
		t.Fatalf("blank config clobbered document: %+v", u)
	}
}

func TestWithdraw_ClearsTokenAndSoftDeletes(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(nil, repo, nil)
	ctx := context.Background()
	u, _ := repo.CreateUser(ctx, nil, "sub-1", "", "")
	repo.tokenByID[u.ID] = "ExponentPushToken[abc]"

	if err := svc.Withdraw(ctx, u.ID); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if repo.tokenByID[u.ID] != "" {
		t.Fatal("push token survived withdrawal")
	}
	if !repo.deleted[u.ID] {
		t.Fatal("account not soft-deleted")
	}
	if err := svc.Withdraw(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second withdraw: want ErrUserNotFound, got %v", err)
	}
}
