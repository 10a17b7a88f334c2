// Package model はドメインモデルを定義する。
package model

import "time"

// AchievementDefinition はゲームに定義された実績を表す。
// カタログ側で管理される読み取り専用データ。SortOrderが表示順を決める。
type AchievementDefinition struct {
	ID          string
	GameID      string
	Name        string
	Description string
	SortOrder   int
}

// UnlockEvent はユーザーが実績の条件を満たした事実を表す。
// (UserID, AchievementID)ごとに高々1件。生成元は外部のテレメトリであり、
// このサービスは参照のみを行う。
type UnlockEvent struct {
	ID            string
	UserID        string
	AchievementID string
	UnlockedAt    time.Time
}

// AchievementStatus は実績定義に解除状態を付与した導出ビュー。永続化されない。
type AchievementStatus struct {
	AchievementID string
	Name          string
	Description   string
	Unlocked      bool
}

// UnlockedAchievement は「自分の解除済み実績」一覧の1行を表す。
type UnlockedAchievement struct {
	AchievementID string
	Name          string
	Description   string
	UnlockedAt    time.Time
}

// GameUnlocks はユーザーの解除済み実績をゲーム単位にまとめたビュー。
// 解除済み実績が1件もないゲームはこのビューに現れない。
type GameUnlocks struct {
	GameID       string
	GameName     string
	Achievements []UnlockedAchievement
}
