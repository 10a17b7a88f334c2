package repository

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQLのSQLSTATEコード。
// 制約違反はストレージ層が一意性の最終的な判定者であることの通知であり、
// レジャー境界でドメインエラーに変換する。
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// asConstraintViolation はエラーが指定SQLSTATEの制約違反であれば制約名を返す。
func asConstraintViolation(err error, code string) (constraint string, ok bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if string(pqErr.Code) != code {
		return "", false
	}
	return pqErr.Constraint, true
}

// isUniqueViolation はエラーが一意制約違反かどうかを返す。
func isUniqueViolation(err error) bool {
	_, ok := asConstraintViolation(err, pgUniqueViolation)
	return ok
}

// isForeignKeyViolation はエラーが外部キー制約違反かどうかを返す。
func isForeignKeyViolation(err error) bool {
	_, ok := asConstraintViolation(err, pgForeignKeyViolation)
	return ok
}
