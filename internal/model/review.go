// Package model はドメインモデルを定義する。
package model

import "time"

// 評価値の有効範囲（両端を含む）。
const (
	RatingMin = 1
	RatingMax = 5
)

// IsValidRating は評価値が有効範囲内かどうかを返す。
func IsValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}

// Review はユーザーによるゲームレビューを表す。
// (UserID, GameID)ごとに高々1件。編集・削除は対象外。
type Review struct {
	ID        string
	UserID    string
	GameID    string
	Rating    int
	Body      string // サニタイズ済みテキスト
	CreatedAt time.Time
}

// ReviewWithAuthor はレビュー一覧表示用に投稿者名を結合したビュー。
type ReviewWithAuthor struct {
	Review
	AuthorName string
}
