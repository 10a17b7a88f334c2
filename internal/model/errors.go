// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, store, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeAlreadyOwned       = "ALREADY_OWNED"
	ErrCodeDuplicateReview    = "DUPLICATE_REVIEW"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeInvalidReference   = "INVALID_REFERENCE"
	ErrCodeNotOwned           = "NOT_OWNED"
	ErrCodeGameNotFound       = "GAME_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// NewAlreadyOwnedError は重複購入エラーを生成する。
// user_libraryの(user_id, game_id)一意制約違反をレジャー境界で変換したもの。
func NewAlreadyOwnedError() *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyOwned,
		Message:  "このゲームは既に購入済みです。",
		Category: "store",
		Action:   "ライブラリから該当ゲームを確認してください。",
	}
}

// NewDuplicateReviewError は重複レビューエラーを生成する。
func NewDuplicateReviewError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateReview,
		Message:  "このゲームには既にレビューを投稿しています。",
		Category: "store",
		Action:   "1つのゲームに投稿できるレビューは1件までです。",
	}
}

// NewInvalidRatingError は評価値が範囲外の場合のエラーを生成する。
func NewInvalidRatingError(rating int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRating,
		Message:  fmt.Sprintf("無効な評価値です: %d", rating),
		Category: "validation",
		Action:   "評価は1から5の整数で指定してください。",
	}
}

// NewInvalidReferenceError は存在しないユーザー・ゲーム等を参照した場合のエラーを生成する。
func NewInvalidReferenceError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidReference,
		Message:  fmt.Sprintf("参照先が存在しません: %s", reason),
		Category: "validation",
		Action:   "指定したIDを確認してください。",
	}
}

// NewNotOwnedError は未購入ゲームへのレビュー投稿エラーを生成する。
func NewNotOwnedError() *APIError {
	return &APIError{
		Code:     ErrCodeNotOwned,
		Message:  "購入していないゲームにはレビューを投稿できません。",
		Category: "store",
		Action:   "ゲームを購入してからレビューを投稿してください。",
	}
}

// NewGameNotFoundError はゲーム未検出エラーを生成する。
func NewGameNotFoundError(gameID string) *APIError {
	return &APIError{
		Code:     ErrCodeGameNotFound,
		Message:  fmt.Sprintf("指定されたゲームが見つかりません: %s", gameID),
		Category: "store",
		Action:   "ゲームIDを確認してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
// usersテーブルのemail一意制約違反を変換したもの。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// ユーザー不在とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewStorageUnavailableError はストレージ障害エラーを生成する。
// 一意制約違反などの業務的な失敗とは異なり、呼び出し側のリトライ対象となる唯一の種別。
func NewStorageUnavailableError(err error) *APIError {
	return &APIError{
		Code:     ErrCodeStorageUnavailable,
		Message:  fmt.Sprintf("データストアにアクセスできません: %v", err),
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
