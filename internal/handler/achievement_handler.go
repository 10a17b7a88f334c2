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

// AchievementServiceInterface は実績ハンドラーが必要とするサービスインターフェース。
type AchievementServiceInterface interface {
	StatusForUserGame(ctx context.Context, userID, gameID string) ([]model.AchievementStatus, error)
	AllForUser(ctx context.Context, userID string) ([]model.GameUnlocks, error)
}

// AchievementHandler は実績閲覧のHTTPハンドラー。
type AchievementHandler struct {
	service AchievementServiceInterface
}

// NewAchievementHandler はAchievementHandlerを生成する。
func NewAchievementHandler(service AchievementServiceInterface) *AchievementHandler {
	return &AchievementHandler{
		service: service,
	}
}

// achievementStatusResponse は実績ステータスのAPIレスポンス。
type achievementStatusResponse struct {
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Unlocked      bool   `json:"unlocked"`
}

// unlockedAchievementResponse は解除済み実績のAPIレスポンス。
type unlockedAchievementResponse struct {
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// gameUnlocksResponse はゲーム単位の解除済み実績のAPIレスポンス。
type gameUnlocksResponse struct {
	GameID       string                        `json:"game_id"`
	GameName     string                        `json:"game_name"`
	Achievements []unlockedAchievementResponse `json:"achievements"`
}

// ListForGame は指定ゲームの全実績に解除状態を付与して返す。
// GET /api/games/{id}/achievements
func (h *AchievementHandler) ListForGame(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	gameID := chi.URLParam(r, "id")

	statuses, err := h.service.StatusForUserGame(r.Context(), userID, gameID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]achievementStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		resp = append(resp, achievementStatusResponse{
			AchievementID: s.AchievementID,
			Name:          s.Name,
			Description:   s.Description,
			Unlocked:      s.Unlocked,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListMine はユーザーの解除済み実績をゲーム単位にまとめて返す。
// GET /api/achievements
func (h *AchievementHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	groups, err := h.service.AllForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]gameUnlocksResponse, 0, len(groups))
	for _, g := range groups {
		achievements := make([]unlockedAchievementResponse, 0, len(g.Achievements))
		for _, a := range g.Achievements {
			achievements = append(achievements, unlockedAchievementResponse{
				AchievementID: a.AchievementID,
				Name:          a.Name,
				Description:   a.Description,
				UnlockedAt:    a.UnlockedAt,
			})
		}
		resp = append(resp, gameUnlocksResponse{
			GameID:       g.GameID,
			GameName:     g.GameName,
			Achievements: achievements,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
