// Package progression はストアページ表示用にカタログ・レビュー・所有情報を
// 束ねる読み取りファサードを提供する。
package progression

import (
	"context"

	"github.com/hitoshi/gamestore/internal/model"
)

// CatalogReader はゲーム詳細の取得インターフェース。
type CatalogReader interface {
	GetDetail(ctx context.Context, gameID string) (*model.GameDetail, error)
}

// RatingReader は平均評価の取得インターフェース。
type RatingReader interface {
	AverageRating(ctx context.Context, gameID string) (average *float64, count int, err error)
}

// OwnershipReader は所有状態の取得インターフェース。
type OwnershipReader interface {
	IsOwned(ctx context.Context, userID, gameID string) (bool, error)
}

// GameView はゲーム詳細ページに表示する合成ビュー。
// AverageRatingはレビューが1件もない場合nil（未評価）。
// IsOwnedは認証済みの呼び出しでのみ設定され、匿名の場合はnil。
type GameView struct {
	Detail        *model.GameDetail
	AverageRating *float64
	ReviewCount   int
	IsOwned       *bool
}

// Service はゲーム詳細ビューを合成するファサード。
type Service struct {
	catalog   CatalogReader
	ratings   RatingReader
	ownership OwnershipReader
}

// NewService はServiceを生成する。
func NewService(catalog CatalogReader, ratings RatingReader, ownership OwnershipReader) *Service {
	return &Service{
		catalog:   catalog,
		ratings:   ratings,
		ownership: ownership,
	}
}

// GameView はゲーム詳細・平均評価・所有状態を合成して返す。
// callerUserIDが空文字列の場合は匿名アクセスとして扱い、IsOwnedを設定しない。
// ゲームが存在しない場合はGAME_NOT_FOUND。
func (s *Service) GameView(ctx context.Context, callerUserID, gameID string) (*GameView, error) {
	detail, err := s.catalog.GetDetail(ctx, gameID)
	if err != nil {
		return nil, err
	}

	average, count, err := s.ratings.AverageRating(ctx, gameID)
	if err != nil {
		return nil, err
	}

	view := &GameView{
		Detail:        detail,
		AverageRating: average,
		ReviewCount:   count,
	}

	if callerUserID != "" {
		owned, err := s.ownership.IsOwned(ctx, callerUserID, gameID)
		if err != nil {
			return nil, err
		}
		view.IsOwned = &owned
	}

	return view, nil
}
