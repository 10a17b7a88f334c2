package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gamestore/internal/middleware"
	"github.com/hitoshi/gamestore/internal/model"
	"github.com/hitoshi/gamestore/internal/progression"
)

// CatalogServiceInterface はカタログハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	List(ctx context.Context) ([]model.GameSummary, error)
	Search(ctx context.Context, query string) ([]model.GameSummary, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
	ListByTag(ctx context.Context, tagName string) ([]model.GameSummary, error)
	ListByDeveloper(ctx context.Context, devID string) ([]model.GameSummary, error)
	ListByPublisher(ctx context.Context, publisherID string) ([]model.GameSummary, error)
	ListItems(ctx context.Context, gameID string) ([]model.Item, error)
}

// GameViewServiceInterface はゲーム詳細ビューの合成サービスインターフェース。
type GameViewServiceInterface interface {
	GameView(ctx context.Context, callerUserID, gameID string) (*progression.GameView, error)
}

// CatalogHandler はカタログ閲覧のHTTPハンドラー。
type CatalogHandler struct {
	catalog  CatalogServiceInterface
	gameView GameViewServiceInterface
}

// NewCatalogHandler はCatalogHandlerを生成する。
func NewCatalogHandler(catalog CatalogServiceInterface, gameView GameViewServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		gameView: gameView,
	}
}

// gameSummaryResponse はゲーム一覧・検索結果のAPIレスポンス。
type gameSummaryResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Tags  []string `json:"tags"`
}

// gameDetailResponse はゲーム詳細のAPIレスポンス。
// AverageRatingはレビューがない場合null。IsOwnedは認証済みの場合のみ設定される。
type gameDetailResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	AgeRating     string     `json:"age_rating,omitempty"`
	PublisherName *string    `json:"publisher_name,omitempty"`
	Studio        *string    `json:"studio,omitempty"`
	AverageRating *string    `json:"average_rating"`
	ReviewCount   int        `json:"review_count"`
	IsOwned       *bool      `json:"is_owned,omitempty"`
}

// tagResponse はタグのAPIレスポンス。
type tagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// itemResponse はゲーム内アイテムのAPIレスポンス。
type itemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ListGames はゲーム一覧または検索結果を返す。
// GET /api/games?q=xxx
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var games []model.GameSummary
	var err error
	if query != "" {
		games, err = h.catalog.Search(r.Context(), query)
	} else {
		games, err = h.catalog.List(r.Context())
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeGameSummaries(w, games)
}

// GetGame はゲーム詳細を返す。
// ログイン中のユーザーには所有状態（is_owned）を付与する。
// GET /api/games/{id}
func (h *CatalogHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	// 任意認証: セッションがあれば所有状態を付与する
	callerUserID, _ := middleware.UserIDFromContext(r.Context())

	view, err := h.gameView.GameView(r.Context(), callerUserID, gameID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := gameDetailResponse{
		ID:            view.Detail.ID,
		Name:          view.Detail.Name,
		Description:   view.Detail.Description,
		Price:         view.Detail.Price,
		ReleaseDate:   view.Detail.ReleaseDate,
		AgeRating:     view.Detail.AgeRating,
		PublisherName: view.Detail.PublisherName,
		Studio:        view.Detail.Studio,
		ReviewCount:   view.ReviewCount,
		IsOwned:       view.IsOwned,
	}
	// 平均評価は小数2桁の文字列で返す。未評価はnullのまま。
	if view.AverageRating != nil {
		formatted := fmt.Sprintf("%.2f", *view.AverageRating)
		resp.AverageRating = &formatted
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListTags は全タグの一覧を返す。
// GET /api/tags
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.catalog.ListTags(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, tagResponse{ID: t.ID, Name: t.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListGamesByTag は指定タグが付いたゲームの一覧を返す。
// GET /api/tags/{name}/games
func (h *CatalogHandler) ListGamesByTag(w http.ResponseWriter, r *http.Request) {
	tagName := chi.URLParam(r, "name")

	games, err := h.catalog.ListByTag(r.Context(), tagName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeGameSummaries(w, games)
}

// ListGamesByDeveloper は指定デベロッパーのゲーム一覧を返す。
// GET /api/developers/{id}/games
func (h *CatalogHandler) ListGamesByDeveloper(w http.ResponseWriter, r *http.Request) {
	devID := chi.URLParam(r, "id")

	games, err := h.catalog.ListByDeveloper(r.Context(), devID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeGameSummaries(w, games)
}

// ListGamesByPublisher は指定パブリッシャーのゲーム一覧を返す。
// GET /api/publishers/{id}/games
func (h *CatalogHandler) ListGamesByPublisher(w http.ResponseWriter, r *http.Request) {
	publisherID := chi.URLParam(r, "id")

	games, err := h.catalog.ListByPublisher(r.Context(), publisherID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeGameSummaries(w, games)
}

// ListItems は指定ゲームのアイテム一覧を返す。
// GET /api/games/{id}/items
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	items, err := h.catalog.ListItems(r.Context(), gameID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, itemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeGameSummaries はゲーム一覧レスポンスを書き込む。
func writeGameSummaries(w http.ResponseWriter, games []model.GameSummary) {
	resp := make([]gameSummaryResponse, 0, len(games))
	for _, g := range games {
		tags := g.Tags
		if tags == nil {
			tags = []string{}
		}
		resp = append(resp, gameSummaryResponse{
			ID:    g.ID,
			Name:  g.Name,
			Price: g.Price,
			Tags:  tags,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
