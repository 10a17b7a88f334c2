package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/gamestore/internal/model"
)

type mockGameRepo struct {
	existsFn     func(ctx context.Context, id string) (bool, error)
	findDetailFn func(ctx context.Context, id string) (*model.GameDetail, error)
	listFn       func(ctx context.Context) ([]model.GameSummary, error)
	searchFn     func(ctx context.Context, query string) ([]model.GameSummary, error)
	listItemsFn  func(ctx context.Context, gameID string) ([]model.Item, error)
}

func (m *mockGameRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}
func (m *mockGameRepo) FindDetailByID(ctx context.Context, id string) (*model.GameDetail, error) {
	if m.findDetailFn != nil {
		return m.findDetailFn(ctx, id)
	}
	return nil, nil
}
func (m *mockGameRepo) List(ctx context.Context) ([]model.GameSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockGameRepo) Search(ctx context.Context, query string) ([]model.GameSummary, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}
func (m *mockGameRepo) ListTags(ctx context.Context) ([]model.Tag, error) { return nil, nil }
func (m *mockGameRepo) ListByTag(ctx context.Context, tagName string) ([]model.GameSummary, error) {
	return nil, nil
}
func (m *mockGameRepo) ListByDeveloper(ctx context.Context, devID string) ([]model.GameSummary, error) {
	return nil, nil
}
func (m *mockGameRepo) ListByPublisher(ctx context.Context, publisherID string) ([]model.GameSummary, error) {
	return nil, nil
}
func (m *mockGameRepo) ListItems(ctx context.Context, gameID string) ([]model.Item, error) {
	if m.listItemsFn != nil {
		return m.listItemsFn(ctx, gameID)
	}
	return nil, nil
}
func (m *mockGameRepo) ListAchievementDefinitions(ctx context.Context, gameID string) ([]model.AchievementDefinition, error) {
	return nil, nil
}

// ゲーム詳細の取得を検証
func TestService_GetDetail(t *testing.T) {
	publisher := "Example Games"
	repo := &mockGameRepo{
		findDetailFn: func(ctx context.Context, id string) (*model.GameDetail, error) {
			return &model.GameDetail{
				Game:          model.Game{ID: id, Name: "Alpha", Price: 29.99},
				PublisherName: &publisher,
			}, nil
		},
	}

	svc := NewService(repo)

	detail, err := svc.GetDetail(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if detail.Name != "Alpha" || detail.PublisherName == nil {
		t.Errorf("detail = %+v, want Alpha with publisher", detail)
	}
}

// 存在しないゲームがGAME_NOT_FOUNDとして返ることを検証
func TestService_GetDetail_NotFound(t *testing.T) {
	svc := NewService(&mockGameRepo{})

	_, err := svc.GetDetail(context.Background(), "no-such-game")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeGameNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeGameNotFound)
	}
}

// 空クエリの検索が全件一覧にフォールバックすることを検証
func TestService_Search_EmptyQuery(t *testing.T) {
	repo := &mockGameRepo{
		listFn: func(ctx context.Context) ([]model.GameSummary, error) {
			return []model.GameSummary{{ID: "game-1", Name: "Alpha"}}, nil
		},
		searchFn: func(ctx context.Context, query string) ([]model.GameSummary, error) {
			t.Fatal("Search should not be called for an empty query")
			return nil, nil
		},
	}

	svc := NewService(repo)

	games, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(games) != 1 {
		t.Errorf("games = %+v, want the full list", games)
	}
}

// クエリ付き検索がリポジトリへ委譲されることを検証
func TestService_Search_WithQuery(t *testing.T) {
	repo := &mockGameRepo{
		searchFn: func(ctx context.Context, query string) ([]model.GameSummary, error) {
			if query != "rpg" {
				t.Errorf("query = %q, want %q", query, "rpg")
			}
			return []model.GameSummary{{ID: "game-2", Name: "Beta"}}, nil
		},
	}

	svc := NewService(repo)

	games, err := svc.Search(context.Background(), "rpg")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(games) != 1 || games[0].Name != "Beta" {
		t.Errorf("games = %+v, want single Beta entry", games)
	}
}

// 存在しないゲームのアイテム一覧がGAME_NOT_FOUNDとなることを検証
func TestService_ListItems_GameNotFound(t *testing.T) {
	repo := &mockGameRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.ListItems(context.Background(), "no-such-game")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeGameNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeGameNotFound)
	}
}

// ストレージ障害がSTORAGE_UNAVAILABLEとして返ることを検証
func TestService_List_StorageFailure(t *testing.T) {
	repo := &mockGameRepo{
		listFn: func(ctx context.Context) ([]model.GameSummary, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewService(repo)

	_, err := svc.List(context.Background())

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeStorageUnavailable {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeStorageUnavailable)
	}
}
