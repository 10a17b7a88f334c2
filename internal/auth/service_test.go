package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/gamestore/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *model.User) error
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *mockUserRepo) ListFriends(ctx context.Context, userID string) ([]model.Friend, error) {
	return nil, nil
}

type mockSessionRepo struct {
	createFn   func(ctx context.Context, session *model.Session) error
	findByIDFn func(ctx context.Context, id string) (*model.Session, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}
func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- テスト ---

// 新規登録でパスワードがハッシュ化されセッションが発行されることを検証
func TestService_Register_Success(t *testing.T) {
	var savedUser *model.User
	var savedSession *model.Session

	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			savedUser = user
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			savedSession = session
			return nil
		},
	}

	svc := NewService(userRepo, sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	user, session, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret-password", nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if savedUser == nil {
		t.Fatal("user was not saved")
	}
	if savedUser.PasswordHash == "secret-password" {
		t.Error("password was stored as plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(savedUser.PasswordHash), []byte("secret-password")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	if session == nil || savedSession == nil {
		t.Fatal("session was not created")
	}
	if session.UserID != user.ID {
		t.Errorf("session.UserID = %q, want %q", session.UserID, user.ID)
	}
}

// 必須項目が欠けた登録が拒否されることを検証
func TestService_Register_MissingFields(t *testing.T) {
	svc := NewService(&mockUserRepo{}, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

	_, _, err := svc.Register(context.Background(), "", "alice@example.com", "pw", nil)
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

// メールアドレス重複エラーがそのまま伝播することを検証
func TestService_Register_EmailTaken(t *testing.T) {
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.NewEmailTakenError()
		},
	}

	svc := NewService(userRepo, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

	_, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw", nil)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeEmailTaken)
	}
}

// 正しい認証情報でログインできることを検証
func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	userRepo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := NewService(userRepo, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

	user, session, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("user.ID = %q, want %q", user.ID, "user-1")
	}
	if session == nil || session.UserID != "user-1" {
		t.Error("session was not issued for user-1")
	}
}

// パスワード不一致とユーザー不在が同じエラーになることを検証
func TestService_Login_InvalidCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)

	cases := []struct {
		name     string
		userRepo *mockUserRepo
		password string
	}{
		{
			name: "パスワード不一致",
			userRepo: &mockUserRepo{
				findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					return &model.User{ID: "user-1", PasswordHash: string(hash)}, nil
				},
			},
			password: "wrong-password",
		},
		{
			name: "ユーザー不在",
			userRepo: &mockUserRepo{
				findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					return nil, nil
				},
			},
			password: "correct-password",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := NewService(c.userRepo, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

			_, _, err := svc.Login(context.Background(), "alice@example.com", c.password)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != model.ErrCodeInvalidCredentials {
				t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeInvalidCredentials)
			}
		})
	}
}

// ログアウトでセッションが削除されることを検証
func TestService_Logout(t *testing.T) {
	var deleted string
	sessionRepo := &mockSessionRepo{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	svc := NewService(&mockUserRepo{}, sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	if err := svc.Logout(context.Background(), "session-1"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if deleted != "session-1" {
		t.Errorf("deleted session = %q, want %q", deleted, "session-1")
	}
}

// セッションから現在のユーザーが取得できることを検証
func TestService_GetCurrentUser(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Name: "alice"}, nil
		},
	}

	svc := NewService(userRepo, sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	user, err := svc.GetCurrentUser(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("user.ID = %q, want %q", user.ID, "user-1")
	}
}

// 期限切れセッションではユーザーを取得できないことを検証
func TestService_GetCurrentUser_ExpiredSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return nil, nil
		},
	}

	svc := NewService(&mockUserRepo{}, sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	if _, err := svc.GetCurrentUser(context.Background(), "expired-session"); err == nil {
		t.Fatal("expected error for expired session")
	}
}
