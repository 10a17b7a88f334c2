// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ReviewSanitizerService はレビュー本文をサニタイズし、
// ストアページに表示される際のXSS攻撃からユーザーを保護する。
// レビュー本文はプレーンテキストとして扱うため、bluemondayの
// StrictPolicyで全てのHTMLタグを除去する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ReviewSanitizerService はレビュー本文のサニタイズ機能のインターフェースを定義する。
// レビューの保存前に使用される。
type ReviewSanitizerService interface {
	// Sanitize はレビュー本文から全てのHTMLタグを除去し、前後の空白を落とす。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// reviewSanitizer はReviewSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type reviewSanitizer struct {
	policy *bluemonday.Policy
}

// NewReviewSanitizer はReviewSanitizerServiceの新しいインスタンスを生成する。
// レビュー本文はHTMLを許可しないため、タグを一切通さないStrictPolicyを使用する。
func NewReviewSanitizer() *reviewSanitizer {
	return &reviewSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はレビュー本文から全てのHTMLタグを除去する。
func (s *reviewSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}

// compile-time interface check
var _ ReviewSanitizerService = (*reviewSanitizer)(nil)
