// Package library は所有レジャー（購入・ライブラリ）のドメインロジックを提供する。
package library

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gamestore/internal/model"
	"github.com/hitoshi/gamestore/internal/repository"
)

// MetricsRecorder は購入メトリクスの記録インターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordPurchase()
	RecordPurchaseConflict()
}

// Service は所有レジャーのサービス層。
// (user, game)ごとに高々1件という不変条件はDBの一意制約が最終的に保証し、
// ここではcheck-then-insertを行わない。
type Service struct {
	libraryRepo repository.LibraryRepository
	gameRepo    repository.GameRepository
	collector   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorはnil可（テストやメトリクス無効時）。
func NewService(
	libraryRepo repository.LibraryRepository,
	gameRepo repository.GameRepository,
	collector MetricsRecorder,
) *Service {
	return &Service{
		libraryRepo: libraryRepo,
		gameRepo:    gameRepo,
		collector:   collector,
	}
}

// Purchase はゲームを購入しライブラリに追加する。
// ゲームの存在確認は利用者向けエラーメッセージのための事前チェックであり、
// 重複の最終判定は挿入時の一意制約違反で行う。
// 成功した記録は同一プロセス内のIsOwned読み取りへ即座に反映される。
func (s *Service) Purchase(ctx context.Context, userID, gameID string) (*model.OwnershipRecord, error) {
	if gameID == "" {
		return nil, model.NewInvalidReferenceError("ゲームIDが指定されていません")
	}

	exists, err := s.gameRepo.Exists(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	if !exists {
		return nil, model.NewInvalidReferenceError("ゲーム: " + gameID)
	}

	record := &model.OwnershipRecord{
		ID:          uuid.New().String(),
		UserID:      userID,
		GameID:      gameID,
		PurchasedAt: time.Now(),
	}

	if err := s.libraryRepo.Create(ctx, record); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Code == model.ErrCodeAlreadyOwned && s.collector != nil {
				s.collector.RecordPurchaseConflict()
			}
			return nil, apiErr
		}
		return nil, model.NewStorageUnavailableError(err)
	}

	if s.collector != nil {
		s.collector.RecordPurchase()
	}

	slog.Info("game purchased",
		slog.String("user_id", userID),
		slog.String("game_id", gameID),
	)

	return record, nil
}

// IsOwned は指定ユーザーが指定ゲームを所有しているかを返す。
func (s *Service) IsOwned(ctx context.Context, userID, gameID string) (bool, error) {
	owned, err := s.libraryRepo.Exists(ctx, userID, gameID)
	if err != nil {
		return false, model.NewStorageUnavailableError(err)
	}
	return owned, nil
}

// ListLibrary はユーザーのライブラリ一覧を返す。
func (s *Service) ListLibrary(ctx context.Context, userID string) ([]model.LibraryEntry, error) {
	entries, err := s.libraryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return entries, nil
}
