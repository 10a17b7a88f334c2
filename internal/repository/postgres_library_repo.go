package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gamestore/internal/model"
)

// PostgresLibraryRepo はPostgreSQLを使用した所有レジャーリポジトリ。
// 重複購入の判定はuser_libraryの一意制約に委ね、挿入して違反を捕捉する。
type PostgresLibraryRepo struct {
	db *sql.DB
}

// NewPostgresLibraryRepo はPostgresLibraryRepoを生成する。
func NewPostgresLibraryRepo(db *sql.DB) *PostgresLibraryRepo {
	return &PostgresLibraryRepo{db: db}
}

// Create は購入記録を挿入する。
// (user_id, game_id)一意制約違反はALREADY_OWNED、外部キー違反はINVALID_REFERENCEに変換する。
// 同一ペアへの並行挿入はちょうど1件だけ成功する。
func (r *PostgresLibraryRepo) Create(ctx context.Context, record *model.OwnershipRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_library (id, user_id, game_id, purchased_at)
		 VALUES ($1, $2, $3, $4)`,
		record.ID, record.UserID, record.GameID, record.PurchasedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewAlreadyOwnedError()
		}
		if isForeignKeyViolation(err) {
			return model.NewInvalidReferenceError("ユーザーまたはゲーム")
		}
		return fmt.Errorf("購入記録の作成に失敗しました: %w", err)
	}
	return nil
}

// Exists は指定ユーザーが指定ゲームを所有しているかを返す。
// Createの成功は同一プロセス内で即座にこの読み取りへ反映される。
func (r *PostgresLibraryRepo) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_library WHERE user_id = $1 AND game_id = $2)`,
		userID, gameID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("所有状態の確認に失敗しました: %w", err)
	}
	return exists, nil
}

// ListByUserID はユーザーのライブラリをゲーム情報付きでゲーム名順に返す。
func (r *PostgresLibraryRepo) ListByUserID(ctx context.Context, userID string) ([]model.LibraryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ul.id, ul.user_id, ul.game_id, ul.purchased_at, g.game_name, g.price
		 FROM user_library ul
		 JOIN games g ON g.id = ul.game_id
		 WHERE ul.user_id = $1
		 ORDER BY g.game_name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ライブラリの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var entries []model.LibraryEntry
	for rows.Next() {
		var e model.LibraryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.GameID, &e.PurchasedAt, &e.GameName, &e.Price); err != nil {
			return nil, fmt.Errorf("ライブラリ行の読み取りに失敗しました: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ライブラリの走査に失敗しました: %w", err)
	}
	return entries, nil
}

// compile-time interface check
var _ LibraryRepository = (*PostgresLibraryRepo)(nil)
