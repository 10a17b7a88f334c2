package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresUnlockRepo はPostgreSQLを使用した実績解除イベントリポジトリ。
// 解除イベントは外部のテレメトリが生成するため、書き込みは提供しない。
type PostgresUnlockRepo struct {
	db *sql.DB
}

// NewPostgresUnlockRepo はPostgresUnlockRepoを生成する。
func NewPostgresUnlockRepo(db *sql.DB) *PostgresUnlockRepo {
	return &PostgresUnlockRepo{db: db}
}

// ListUnlockedIDs は指定ユーザーが指定ゲームで解除済みの実績ID集合を返す。
func (r *PostgresUnlockRepo) ListUnlockedIDs(ctx context.Context, userID, gameID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ua.achievement_id
		 FROM user_achievements ua
		 JOIN achievements a ON a.id = ua.achievement_id
		 WHERE ua.user_id = $1 AND a.game_id = $2`,
		userID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("解除済み実績の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("解除済み実績行の読み取りに失敗しました: %w", err)
		}
		unlocked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("解除済み実績の走査に失敗しました: %w", err)
	}
	return unlocked, nil
}

// ListUnlockedByUser はユーザーの全解除イベントをゲーム情報付きで返す。
// ゲーム名昇順、同一ゲーム内は実績の表示順で並べる。
func (r *PostgresUnlockRepo) ListUnlockedByUser(ctx context.Context, userID string) ([]UnlockedRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.game_name, a.id, a.achievement_name, a.description, ua.unlocked_at
		 FROM user_achievements ua
		 JOIN achievements a ON a.id = ua.achievement_id
		 JOIN games g ON g.id = a.game_id
		 WHERE ua.user_id = $1
		 ORDER BY g.game_name ASC, a.sort_order ASC, a.id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("解除済み実績一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var results []UnlockedRow
	for rows.Next() {
		var row UnlockedRow
		if err := rows.Scan(&row.GameID, &row.GameName, &row.AchievementID, &row.AchievementName, &row.Description, &row.UnlockedAt); err != nil {
			return nil, fmt.Errorf("解除済み実績一覧行の読み取りに失敗しました: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("解除済み実績一覧の走査に失敗しました: %w", err)
	}
	return results, nil
}

// compile-time interface check
var _ UnlockRepository = (*PostgresUnlockRepo)(nil)
