package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/gamestore/internal/middleware"
	"github.com/hitoshi/gamestore/internal/model"
)

// FriendListerInterface はフレンド一覧の取得インターフェース。
type FriendListerInterface interface {
	ListFriends(ctx context.Context, userID string) ([]model.Friend, error)
}

// UserHandler はユーザー関連のHTTPハンドラー。
type UserHandler struct {
	friendLister FriendListerInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(friendLister FriendListerInterface) *UserHandler {
	return &UserHandler{
		friendLister: friendLister,
	}
}

// friendResponse はフレンド一覧の1件を表すAPIレスポンス。
type friendResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// ListFriends はユーザーのフレンド一覧を返す。
// GET /api/friends
func (h *UserHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	friends, err := h.friendLister.ListFriends(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]friendResponse, 0, len(friends))
	for _, f := range friends {
		resp = append(resp, friendResponse{UserID: f.UserID, Name: f.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
