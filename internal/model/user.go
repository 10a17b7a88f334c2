// Package model はドメインモデルを定義する。
package model

import "time"

// User はストア利用ユーザーを表す。
// PasswordHashはbcrypt済みの値のみを保持し、平文は永続化しない。
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	DateOfBirth  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Friend はフレンド一覧に表示するユーザー情報を表す。
// friendshipsテーブルの対称な関係から導出される。
type Friend struct {
	UserID string
	Name   string
}
