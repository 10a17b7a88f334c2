// Package model はドメインモデルを定義する。
package model

import "time"

// Game はカタログ上のゲームを表す。
// このサービスから見て読み取り専用であり、カタログ管理側でのみ更新される。
type Game struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ReleaseDate *time.Time
	AgeRating   string
	PublisherID *string
	DeveloperID *string
}

// GameSummary はゲーム一覧・検索結果に表示する最小限の情報を表す。
type GameSummary struct {
	ID    string
	Name  string
	Price float64
	Tags  []string
}

// GameDetail はゲーム詳細ページ用にカタログ情報を結合したビュー。
// PublisherNameとStudioはLEFT JOINの結果のため存在しない場合がある。
type GameDetail struct {
	Game
	PublisherName *string
	Studio        *string
}

// Tag はゲームに付与されるタグを表す。
type Tag struct {
	ID   string
	Name string
}

// Item はゲーム内アイテムを表す。読み取り専用。
type Item struct {
	ID          string
	GameID      string
	Name        string
	Description string
	Price       float64
}
