package service

import (
	"errors"
	"testing"
	"time"

	"teacher_portal_backend/internal/config"
	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/internal/util"

	"gorm.io/gorm"
)

type fakeUserStore struct {
	byEmail    map[string]*model.User
	lastLogins []uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = uint(len(f.byEmail) + 1)
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) FindByID(id uint) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) UpdateLastLogin(userID uint) error {
	f.lastLogins = append(f.lastLogins, userID)
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
}

func TestAuthServiceLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testAuthConfig())

	if err := svc.CreateUser(&model.User{Name: "Admin", Email: " Admin@Example.com ", Password: "s3cret!", Role: model.Admin}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.byEmail["admin@example.com"].Password == "s3cret!" {
		t.Fatal("password stored in plain text")
	}

	token, user, err := svc.Login("admin@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Admin {
		t.Errorf("claims = %+v", claims)
	}
	if len(store.lastLogins) != 1 {
		t.Errorf("last login updates = %v", store.lastLogins)
	}
}

func TestAuthServiceLoginFailures(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testAuthConfig())
	if err := svc.CreateUser(&model.User{Email: "staff@example.com", Password: "pw"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.CreateUser(&model.User{Email: "off@example.com", Password: "pw", Disabled: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, err := svc.Login("nobody@example.com", "pw"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
	if _, _, err := svc.Login("staff@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login("off@example.com", "pw"); !errors.Is(err, util.ErrUserDisabled) {
		t.Errorf("disabled err = %v", err)
	}
	if err := svc.CreateUser(&model.User{Email: "staff@example.com", Password: "pw"}); err == nil {
		t.Error("duplicate email accepted")
	}
}
