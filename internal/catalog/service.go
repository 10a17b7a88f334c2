// Package catalog はゲームカタログの読み取りサービスを提供する。
// カタログの編集は別システムの責務であり、ここでは参照のみを扱う。
package catalog

import (
	"context"

	"github.com/hitoshi/gamestore/internal/model"
	"github.com/hitoshi/gamestore/internal/repository"
)

// Service はカタログ読み取りのサービス層。
type Service struct {
	gameRepo repository.GameRepository
}

// NewService はServiceを生成する。
func NewService(gameRepo repository.GameRepository) *Service {
	return &Service{gameRepo: gameRepo}
}

// GetDetail はゲーム詳細を取得する。存在しない場合はGAME_NOT_FOUND。
func (s *Service) GetDetail(ctx context.Context, gameID string) (*model.GameDetail, error) {
	detail, err := s.gameRepo.FindDetailByID(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	if detail == nil {
		return nil, model.NewGameNotFoundError(gameID)
	}
	return detail, nil
}

// List は全ゲームの一覧を名前順で返す。
func (s *Service) List(ctx context.Context) ([]model.GameSummary, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return games, nil
}

// Search はゲーム名またはタグ名の部分一致で検索する。
// 空クエリは全件一覧と同じ結果を返す。
func (s *Service) Search(ctx context.Context, query string) ([]model.GameSummary, error) {
	if query == "" {
		return s.List(ctx)
	}
	games, err := s.gameRepo.Search(ctx, query)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return games, nil
}

// ListTags は全タグを名前順で返す。
func (s *Service) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.gameRepo.ListTags(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return tags, nil
}

// ListByTag は指定タグが付いたゲームの一覧を返す。
func (s *Service) ListByTag(ctx context.Context, tagName string) ([]model.GameSummary, error) {
	games, err := s.gameRepo.ListByTag(ctx, tagName)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return games, nil
}

// ListByDeveloper は指定デベロッパーのゲーム一覧を返す。
func (s *Service) ListByDeveloper(ctx context.Context, devID string) ([]model.GameSummary, error) {
	games, err := s.gameRepo.ListByDeveloper(ctx, devID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return games, nil
}

// ListByPublisher は指定パブリッシャーのゲーム一覧を返す。
func (s *Service) ListByPublisher(ctx context.Context, publisherID string) ([]model.GameSummary, error) {
	games, err := s.gameRepo.ListByPublisher(ctx, publisherID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return games, nil
}

// ListItems は指定ゲームのアイテム一覧を返す。ゲームが存在しない場合はGAME_NOT_FOUND。
func (s *Service) ListItems(ctx context.Context, gameID string) ([]model.Item, error) {
	exists, err := s.gameRepo.Exists(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	if !exists {
		return nil, model.NewGameNotFoundError(gameID)
	}

	items, err := s.gameRepo.ListItems(ctx, gameID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return items, nil
}
