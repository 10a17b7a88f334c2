// Package achievement は実績の解除状態を導出するサービスを提供する。
// 解除イベントの生成は外部テレメトリの責務であり、ここでは定義と
// 解除イベントの結合による読み取りのみを行う。
package achievement

import (
	"context"

	"github.com/hitoshi/gamestore/internal/model"
	"github.com/hitoshi/gamestore/internal/repository"
)

// Service は実績ステータス導出のサービス層。
type Service struct {
	gameRepo   repository.GameRepository
	unlockRepo repository.UnlockRepository
}

// NewService はServiceを生成する。
func NewService(gameRepo repository.GameRepository, unlockRepo repository.UnlockRepository) *Service {
	return &Service{
		gameRepo:   gameRepo,
		unlockRepo: unlockRepo,
	}
}

// StatusForUserGame は指定ゲームの全実績定義に対し、指定ユーザーの解除状態を
// 付与して返す。定義の表示順（sort_order昇順、同値はID昇順）を保つ。
// 定義に対応する解除イベントがないものはUnlocked=falseで現れる。
// ゲームが存在しない場合はGAME_NOT_FOUND。
func (s *Service) StatusForUserGame(ctx context.Context, userID, gameID string) ([]model.AchievementStatus, error) {
	exists, err := s.gameRepo.Exists(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	if !exists {
		return nil, model.NewGameNotFoundError(gameID)
	}

	defs, err := s.gameRepo.ListAchievementDefinitions(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	unlocked, err := s.unlockRepo.ListUnlockedIDs(ctx, userID, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	statuses := make([]model.AchievementStatus, 0, len(defs))
	for _, def := range defs {
		statuses = append(statuses, model.AchievementStatus{
			AchievementID: def.ID,
			Name:          def.Name,
			Description:   def.Description,
			Unlocked:      unlocked[def.ID],
		})
	}
	return statuses, nil
}

// AllForUser はユーザーの解除済み実績をゲーム単位にまとめて返す。
// 解除済み実績が1件もないゲームは結果に現れない。
// ゲームはゲーム名昇順、ゲーム内は実績の表示順で並ぶ。
func (s *Service) AllForUser(ctx context.Context, userID string) ([]model.GameUnlocks, error) {
	rows, err := s.unlockRepo.ListUnlockedByUser(ctx, userID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	// 行はゲーム名順に整列済みのため、隣接グループ化で十分
	result := make([]model.GameUnlocks, 0)
	for _, row := range rows {
		if len(result) == 0 || result[len(result)-1].GameID != row.GameID {
			result = append(result, model.GameUnlocks{
				GameID:   row.GameID,
				GameName: row.GameName,
			})
		}
		last := &result[len(result)-1]
		last.Achievements = append(last.Achievements, model.UnlockedAchievement{
			AchievementID: row.AchievementID,
			Name:          row.AchievementName,
			Description:   row.Description,
			UnlockedAt:    row.UnlockedAt,
		})
	}
	return result, nil
}
