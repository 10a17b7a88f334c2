// Package review はレビューレジャーのドメインロジックを提供する。
package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gamestore/internal/model"
	"github.com/hitoshi/gamestore/internal/repository"
	"github.com/hitoshi/gamestore/internal/security"
)

// MetricsRecorder はレビューメトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordReview(rating int)
	RecordReviewRejected(code string)
}

// Service はレビューレジャーのサービス層。
// (user, game)ごとに高々1件という不変条件はDBの一意制約が最終的に保証する。
// 投稿には対象ゲームの所有が必要。
type Service struct {
	reviewRepo  repository.ReviewRepository
	libraryRepo repository.LibraryRepository
	gameRepo    repository.GameRepository
	sanitizer   security.ReviewSanitizerService
	collector   MetricsRecorder
}

// NewService はServiceを生成する。collectorはnil可。
func NewService(
	reviewRepo repository.ReviewRepository,
	libraryRepo repository.LibraryRepository,
	gameRepo repository.GameRepository,
	sanitizer security.ReviewSanitizerService,
	collector MetricsRecorder,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		libraryRepo: libraryRepo,
		gameRepo:    gameRepo,
		sanitizer:   sanitizer,
		collector:   collector,
	}
}

// Submit はレビューを投稿する。
// 検証順序は 評価値 → ゲーム存在 → 所有 → 挿入。評価値が範囲外なら所有状態に
// 関わらずINVALID_RATINGを返す。ゲーム存在の事前チェックがないと、未知のゲームが
// 未所有として扱われNOT_OWNEDに化けてしまうため、所有確認より先に行う。
// 重複は挿入時の一意制約違反がDUPLICATE_REVIEWとして返る。
func (s *Service) Submit(ctx context.Context, userID, gameID string, rating int, body string) (*model.Review, error) {
	if !model.IsValidRating(rating) {
		s.recordRejected(model.ErrCodeInvalidRating)
		return nil, model.NewInvalidRatingError(rating)
	}

	exists, err := s.gameRepo.Exists(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	if !exists {
		s.recordRejected(model.ErrCodeInvalidReference)
		return nil, model.NewInvalidReferenceError("ゲーム: " + gameID)
	}

	owned, err := s.libraryRepo.Exists(ctx, userID, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	if !owned {
		s.recordRejected(model.ErrCodeNotOwned)
		return nil, model.NewNotOwnedError()
	}

	review := &model.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		GameID:    gameID,
		Rating:    rating,
		Body:      s.sanitizer.Sanitize(body),
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			s.recordRejected(apiErr.Code)
			return nil, apiErr
		}
		return nil, model.NewStorageUnavailableError(err)
	}

	if s.collector != nil {
		s.collector.RecordReview(rating)
	}

	slog.Info("review submitted",
		slog.String("user_id", userID),
		slog.String("game_id", gameID),
		slog.Int("rating", rating),
	)

	return review, nil
}

// ListByGame は指定ゲームのレビューを投稿者名付きで新しい順に返す。
func (s *Service) ListByGame(ctx context.Context, gameID string) ([]model.ReviewWithAuthor, error) {
	reviews, err := s.reviewRepo.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return reviews, nil
}

// AverageRating は指定ゲームの平均評価とレビュー件数を返す。
// レビューが1件もない場合はaverageがnil（未評価）となり、0とは区別される。
func (s *Service) AverageRating(ctx context.Context, gameID string) (average *float64, count int, err error) {
	average, count, err = s.reviewRepo.AverageRating(ctx, gameID)
	if err != nil {
		return nil, 0, model.NewStorageUnavailableError(err)
	}
	return average, count, nil
}

func (s *Service) recordRejected(code string) {
	if s.collector != nil {
		s.collector.RecordReviewRejected(code)
	}
}
