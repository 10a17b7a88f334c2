package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gamestore/internal/middleware"
	"github.com/hitoshi/gamestore/internal/model"
)

// ReviewServiceInterface はレビューハンドラーが必要とするサービスインターフェース。
type ReviewServiceInterface interface {
	Submit(ctx context.Context, userID, gameID string, rating int, body string) (*model.Review, error)
	ListByGame(ctx context.Context, gameID string) ([]model.ReviewWithAuthor, error)
}

// ReviewHandler はレビュー投稿・閲覧のHTTPハンドラー。
type ReviewHandler struct {
	service ReviewServiceInterface
}

// NewReviewHandler はReviewHandlerを生成する。
func NewReviewHandler(service ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// submitReviewRequest はレビュー投稿リクエストのボディ。
type submitReviewRequest struct {
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

// reviewResponse はレビューのAPIレスポンス。
type reviewResponse struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// Submit はレビューを投稿する。
// 評価は1から5の整数。所有していないゲームには403、投稿済みのゲームには409となる。
// POST /api/games/{id}/reviews
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	gameID := chi.URLParam(r, "id")

	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	review, err := h.service.Submit(r.Context(), userID, gameID, req.Rating, req.Body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reviewResponse{
		ID:        review.ID,
		GameID:    review.GameID,
		Rating:    review.Rating,
		Body:      review.Body,
		CreatedAt: review.CreatedAt,
	})
}

// ListByGame は指定ゲームのレビュー一覧を新しい順に返す。
// GET /api/games/{id}/reviews
func (h *ReviewHandler) ListByGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	reviews, err := h.service.ListByGame(r.Context(), gameID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		resp = append(resp, reviewResponse{
			ID:         rv.ID,
			GameID:     rv.GameID,
			AuthorName: rv.AuthorName,
			Rating:     rv.Rating,
			Body:       rv.Body,
			CreatedAt:  rv.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
