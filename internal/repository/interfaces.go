// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/gamestore/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。
	// email一意制約違反の場合は*model.APIError(EMAIL_TAKEN)を返す。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ListFriends はユーザーのフレンド一覧を返す。
	// friendshipsは対称な関係として扱い、どちらの側に格納されていても取得する。
	ListFriends(ctx context.Context, userID string) ([]model.Friend, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// GameRepository はカタログデータの読み取りインターフェース。
// カタログはこのサービスから見て外部コラボレーターであり、書き込みは提供しない。
type GameRepository interface {
	// Exists は指定IDのゲームが存在するかを返す。
	Exists(ctx context.Context, id string) (bool, error)

	// FindDetailByID はゲーム詳細をパブリッシャー・デベロッパー情報付きで取得する。
	// 見つからない場合はnilを返す。
	FindDetailByID(ctx context.Context, id string) (*model.GameDetail, error)

	// List は全ゲームの一覧を名前順で返す。
	List(ctx context.Context) ([]model.GameSummary, error)

	// Search はゲーム名またはタグ名の部分一致でゲームを検索する。
	Search(ctx context.Context, query string) ([]model.GameSummary, error)

	// ListTags は全タグを名前順で返す。
	ListTags(ctx context.Context) ([]model.Tag, error)

	// ListByTag は指定タグ名が付いたゲームの一覧を返す。
	ListByTag(ctx context.Context, tagName string) ([]model.GameSummary, error)

	// ListByDeveloper は指定デベロッパーのゲーム一覧を返す。
	ListByDeveloper(ctx context.Context, devID string) ([]model.GameSummary, error)

	// ListByPublisher は指定パブリッシャーのゲーム一覧を返す。
	ListByPublisher(ctx context.Context, publisherID string) ([]model.GameSummary, error)

	// ListItems は指定ゲームのアイテム一覧を返す。
	ListItems(ctx context.Context, gameID string) ([]model.Item, error)

	// ListAchievementDefinitions は指定ゲームの実績定義を表示順で返す。
	// 表示順はsort_order昇順、同値はID昇順で安定させる。定義ゼロ件は空スライス。
	ListAchievementDefinitions(ctx context.Context, gameID string) ([]model.AchievementDefinition, error)
}

// LibraryRepository は所有レジャーの永続化インターフェース。
// (user_id, game_id)の一意性はDBの一意制約が最終的に保証し、
// アプリケーション側でのcheck-then-insertは行わない。
type LibraryRepository interface {
	// Create は購入記録を挿入する。
	// 一意制約違反は*model.APIError(ALREADY_OWNED)、
	// 外部キー違反は*model.APIError(INVALID_REFERENCE)に変換して返す。
	Create(ctx context.Context, record *model.OwnershipRecord) error

	// Exists は指定ユーザーが指定ゲームを所有しているかを返す。
	Exists(ctx context.Context, userID, gameID string) (bool, error)

	// ListByUserID はユーザーのライブラリをゲーム情報付きでゲーム名順に返す。
	ListByUserID(ctx context.Context, userID string) ([]model.LibraryEntry, error)
}

// ReviewRepository はレビューレジャーの永続化インターフェース。
type ReviewRepository interface {
	// Create はレビューを挿入する。
	// 一意制約違反は*model.APIError(DUPLICATE_REVIEW)、
	// 外部キー違反は*model.APIError(INVALID_REFERENCE)に変換して返す。
	Create(ctx context.Context, review *model.Review) error

	// ListByGameID は指定ゲームのレビューを投稿者名付きで新しい順に返す。
	ListByGameID(ctx context.Context, gameID string) ([]model.ReviewWithAuthor, error)

	// AverageRating は指定ゲームの平均評価とレビュー件数を返す。
	// レビューが存在しない場合はaverageがnil（未評価）となる。0や NaNを返してはならない。
	AverageRating(ctx context.Context, gameID string) (average *float64, count int, err error)
}

// UnlockRepository は実績解除イベントの読み取りインターフェース。
// 解除イベントの生成は外部のテレメトリ側の責務であり、ここでは参照のみを提供する。
type UnlockRepository interface {
	// ListUnlockedIDs は指定ユーザーが指定ゲームで解除済みの実績ID集合を返す。
	ListUnlockedIDs(ctx context.Context, userID, gameID string) (map[string]bool, error)

	// ListUnlockedByUser はユーザーの全解除イベントをゲーム情報付きで返す。
	// ゲーム名昇順、ゲーム内は実績の表示順で並ぶ。
	ListUnlockedByUser(ctx context.Context, userID string) ([]UnlockedRow, error)
}

// UnlockedRow は解除イベントとゲーム・実績情報を結合した1行を表す。
type UnlockedRow struct {
	GameID          string
	GameName        string
	AchievementID   string
	AchievementName string
	Description     string
	UnlockedAt      time.Time
}
