// Package model はドメインモデルを定義する。
package model

import "time"

// OwnershipRecord はユーザーによるゲーム購入の事実を表す。
// (UserID, GameID)ごとに高々1件。作成後は更新も削除もされない（返金は対象外）。
type OwnershipRecord struct {
	ID          string
	UserID      string
	GameID      string
	PurchasedAt time.Time
}

// LibraryEntry はライブラリ一覧用に購入記録とゲーム情報を結合したビュー。
type LibraryEntry struct {
	OwnershipRecord
	GameName string
	Price    float64
}
