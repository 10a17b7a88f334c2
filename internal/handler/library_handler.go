package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/gamestore/internal/middleware"
	"github.com/hitoshi/gamestore/internal/model"
)

// LibraryServiceInterface はライブラリハンドラーが必要とするサービスインターフェース。
type LibraryServiceInterface interface {
	Purchase(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error)
	ListLibrary(ctx context.Context, userID string) ([]model.LibraryEntry, error)
}

// LibraryHandler は購入・ライブラリ管理のHTTPハンドラー。
type LibraryHandler struct {
	service LibraryServiceInterface
}

// NewLibraryHandler はLibraryHandlerを生成する。
func NewLibraryHandler(service LibraryServiceInterface) *LibraryHandler {
	return &LibraryHandler{
		service: service,
	}
}

// purchaseRequest は購入リクエストのボディ。
type purchaseRequest struct {
	GameID string `json:"game_id"`
}

// purchaseResponse は購入結果のAPIレスポンス。
type purchaseResponse struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// libraryEntryResponse はライブラリ一覧の1件を表すAPIレスポンス。
type libraryEntryResponse struct {
	GameID      string    `json:"game_id"`
	GameName    string    `json:"game_name"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// Purchase はゲームを購入しライブラリに追加する。
// 既に所有しているゲームは409 Conflictとなる。
// POST /api/library
func (h *LibraryHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	record, err := h.service.Purchase(r.Context(), userID, req.GameID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(purchaseResponse{
		ID:          record.ID,
		GameID:      record.GameID,
		PurchasedAt: record.PurchasedAt,
	})
}

// ListLibrary はユーザーのライブラリ一覧を返す。
// GET /api/library
func (h *LibraryHandler) ListLibrary(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	entries, err := h.service.ListLibrary(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]libraryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, libraryEntryResponse{
			GameID:      e.GameID,
			GameName:    e.GameName,
			Price:       e.Price,
			PurchasedAt: e.PurchasedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
