package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gamestore/internal/middleware"
	"github.com/hitoshi/gamestore/internal/model"
	"github.com/hitoshi/gamestore/internal/progression"
)

type mockCatalogService struct {
	listFn   func(ctx context.Context) ([]model.GameSummary, error)
	searchFn func(ctx context.Context, query string) ([]model.GameSummary, error)
}

func (m *mockCatalogService) List(ctx context.Context) ([]model.GameSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockCatalogService) Search(ctx context.Context, query string) ([]model.GameSummary, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}
func (m *mockCatalogService) ListTags(ctx context.Context) ([]model.Tag, error) { return nil, nil }
func (m *mockCatalogService) ListByTag(ctx context.Context, tagName string) ([]model.GameSummary, error) {
	return nil, nil
}
func (m *mockCatalogService) ListByDeveloper(ctx context.Context, devID string) ([]model.GameSummary, error) {
	return nil, nil
}
func (m *mockCatalogService) ListByPublisher(ctx context.Context, publisherID string) ([]model.GameSummary, error) {
	return nil, nil
}
func (m *mockCatalogService) ListItems(ctx context.Context, gameID string) ([]model.Item, error) {
	return nil, nil
}

type mockGameViewService struct {
	gameViewFn func(ctx context.Context, callerUserID, gameID string) (*progression.GameView, error)
}

func (m *mockGameViewService) GameView(ctx context.Context, callerUserID, gameID string) (*progression.GameView, error) {
	return m.gameViewFn(ctx, callerUserID, gameID)
}

func catalogRouter(h *CatalogHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/games", h.ListGames)
	r.Get("/api/games/{id}", h.GetGame)
	return r
}

// ゲーム一覧の取得を検証
func TestCatalogHandler_ListGames(t *testing.T) {
	catalog := &mockCatalogService{
		listFn: func(ctx context.Context) ([]model.GameSummary, error) {
			return []model.GameSummary{
				{ID: "game-1", Name: "Alpha", Price: 19.99, Tags: []string{"rpg"}},
			}, nil
		},
	}
	router := catalogRouter(NewCatalogHandler(catalog, &mockGameViewService{}))

	req := httptest.NewRequest("GET", "/api/games", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp []gameSummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "Alpha" {
		t.Errorf("response = %+v, want single Alpha entry", resp)
	}
}

// qパラメータありで検索に委譲されることを検証
func TestCatalogHandler_ListGames_Search(t *testing.T) {
	catalog := &mockCatalogService{
		searchFn: func(ctx context.Context, query string) ([]model.GameSummary, error) {
			if query != "rpg" {
				t.Errorf("query = %q, want rpg", query)
			}
			return []model.GameSummary{{ID: "game-2", Name: "Beta"}}, nil
		},
	}
	router := catalogRouter(NewCatalogHandler(catalog, &mockGameViewService{}))

	req := httptest.NewRequest("GET", "/api/games?q=rpg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

// ゲーム詳細で平均評価が小数2桁の文字列になることを検証
func TestCatalogHandler_GetGame(t *testing.T) {
	avg := 4.0
	owned := true
	gameView := &mockGameViewService{
		gameViewFn: func(ctx context.Context, callerUserID, gameID string) (*progression.GameView, error) {
			if callerUserID != "user-1" {
				t.Errorf("callerUserID = %q, want user-1", callerUserID)
			}
			return &progression.GameView{
				Detail:        &model.GameDetail{Game: model.Game{ID: gameID, Name: "Alpha", Price: 29.99}},
				AverageRating: &avg,
				ReviewCount:   3,
				IsOwned:       &owned,
			}, nil
		},
	}
	router := catalogRouter(NewCatalogHandler(&mockCatalogService{}, gameView))

	req := httptest.NewRequest("GET", "/api/games/game-1", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp gameDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AverageRating == nil || *resp.AverageRating != "4.00" {
		t.Errorf("average_rating = %v, want \"4.00\"", resp.AverageRating)
	}
	if resp.ReviewCount != 3 {
		t.Errorf("review_count = %d, want 3", resp.ReviewCount)
	}
	if resp.IsOwned == nil || !*resp.IsOwned {
		t.Error("is_owned should be true")
	}
}

// 未評価ゲームの平均評価がnullになることを検証
func TestCatalogHandler_GetGame_Unrated(t *testing.T) {
	gameView := &mockGameViewService{
		gameViewFn: func(ctx context.Context, callerUserID, gameID string) (*progression.GameView, error) {
			return &progression.GameView{
				Detail: &model.GameDetail{Game: model.Game{ID: gameID, Name: "Alpha"}},
			}, nil
		},
	}
	router := catalogRouter(NewCatalogHandler(&mockCatalogService{}, gameView))

	req := httptest.NewRequest("GET", "/api/games/game-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// 未評価は0ではなくnullで返す
	if string(raw["average_rating"]) != "null" {
		t.Errorf("average_rating = %s, want null", raw["average_rating"])
	}
	// 匿名アクセスではis_ownedを含めない
	if _, exists := raw["is_owned"]; exists {
		t.Error("is_owned should be omitted for anonymous access")
	}
}

// 存在しないゲームが404となることを検証
func TestCatalogHandler_GetGame_NotFound(t *testing.T) {
	gameView := &mockGameViewService{
		gameViewFn: func(ctx context.Context, callerUserID, gameID string) (*progression.GameView, error) {
			return nil, model.NewGameNotFoundError(gameID)
		},
	}
	router := catalogRouter(NewCatalogHandler(&mockCatalogService{}, gameView))

	req := httptest.NewRequest("GET", "/api/games/no-such", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
