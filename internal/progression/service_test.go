package progression

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/gamestore/internal/model"
)

type mockCatalog struct {
	detailFn func(ctx context.Context, gameID string) (*model.GameDetail, error)
}

func (m *mockCatalog) GetDetail(ctx context.Context, gameID string) (*model.GameDetail, error) {
	return m.detailFn(ctx, gameID)
}

type mockRatings struct {
	averageFn func(ctx context.Context, gameID string) (*float64, int, error)
}

func (m *mockRatings) AverageRating(ctx context.Context, gameID string) (*float64, int, error) {
	if m.averageFn != nil {
		return m.averageFn(ctx, gameID)
	}
	return nil, 0, nil
}

type mockOwnership struct {
	isOwnedFn func(ctx context.Context, userID, gameID string) (bool, error)
}

func (m *mockOwnership) IsOwned(ctx context.Context, userID, gameID string) (bool, error) {
	if m.isOwnedFn != nil {
		return m.isOwnedFn(ctx, userID, gameID)
	}
	return false, nil
}

func detailOf(name string) *mockCatalog {
	return &mockCatalog{
		detailFn: func(ctx context.Context, gameID string) (*model.GameDetail, error) {
			return &model.GameDetail{Game: model.Game{ID: gameID, Name: name}}, nil
		},
	}
}

// 認証済みユーザー向けに所有状態付きのビューが合成されることを検証
func TestService_GameView_Authenticated(t *testing.T) {
	avg := 4.5
	ratings := &mockRatings{
		averageFn: func(ctx context.Context, gameID string) (*float64, int, error) {
			return &avg, 12, nil
		},
	}
	ownership := &mockOwnership{
		isOwnedFn: func(ctx context.Context, userID, gameID string) (bool, error) {
			return userID == "user-1", nil
		},
	}

	svc := NewService(detailOf("Alpha"), ratings, ownership)

	view, err := svc.GameView(context.Background(), "user-1", "game-1")
	if err != nil {
		t.Fatalf("GameView() error = %v", err)
	}

	if view.Detail.Name != "Alpha" {
		t.Errorf("detail name = %q, want Alpha", view.Detail.Name)
	}
	if view.AverageRating == nil || *view.AverageRating != 4.5 || view.ReviewCount != 12 {
		t.Errorf("rating = (%v, %d), want (4.5, 12)", view.AverageRating, view.ReviewCount)
	}
	if view.IsOwned == nil || !*view.IsOwned {
		t.Error("IsOwned should be true for the owning user")
	}
}

// 匿名アクセスでは所有状態が設定されないことを検証
func TestService_GameView_Anonymous(t *testing.T) {
	ownership := &mockOwnership{
		isOwnedFn: func(ctx context.Context, userID, gameID string) (bool, error) {
			t.Fatal("ownership should not be checked for anonymous callers")
			return false, nil
		},
	}

	svc := NewService(detailOf("Alpha"), &mockRatings{}, ownership)

	view, err := svc.GameView(context.Background(), "", "game-1")
	if err != nil {
		t.Fatalf("GameView() error = %v", err)
	}
	if view.IsOwned != nil {
		t.Errorf("IsOwned = %v, want nil for anonymous access", *view.IsOwned)
	}
	// 未評価のゲームは平均がnilのまま
	if view.AverageRating != nil {
		t.Errorf("AverageRating = %v, want nil for unrated game", *view.AverageRating)
	}
}

// ゲーム未検出エラーがそのまま伝播することを検証
func TestService_GameView_GameNotFound(t *testing.T) {
	catalog := &mockCatalog{
		detailFn: func(ctx context.Context, gameID string) (*model.GameDetail, error) {
			return nil, model.NewGameNotFoundError(gameID)
		},
	}

	svc := NewService(catalog, &mockRatings{}, &mockOwnership{})

	_, err := svc.GameView(context.Background(), "user-1", "no-such-game")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeGameNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeGameNotFound)
	}
}
