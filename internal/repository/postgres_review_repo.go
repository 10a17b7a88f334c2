package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gamestore/internal/model"
)

// PostgresReviewRepo はPostgreSQLを使用したレビューレジャーリポジトリ。
// 重複レビューの判定はreviewsの一意制約に委ね、挿入して違反を捕捉する。
type PostgresReviewRepo struct {
	db *sql.DB
}

// NewPostgresReviewRepo はPostgresReviewRepoを生成する。
func NewPostgresReviewRepo(db *sql.DB) *PostgresReviewRepo {
	return &PostgresReviewRepo{db: db}
}

// Create はレビューを挿入する。
// (user_id, game_id)一意制約違反はDUPLICATE_REVIEW、外部キー違反はINVALID_REFERENCEに変換する。
func (r *PostgresReviewRepo) Create(ctx context.Context, review *model.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, user_id, game_id, rating, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		review.ID, review.UserID, review.GameID, review.Rating, review.Body, review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateReviewError()
		}
		if isForeignKeyViolation(err) {
			return model.NewInvalidReferenceError("ユーザーまたはゲーム")
		}
		return fmt.Errorf("レビューの作成に失敗しました: %w", err)
	}
	return nil
}

// ListByGameID は指定ゲームのレビューを投稿者名付きで新しい順に返す。
func (r *PostgresReviewRepo) ListByGameID(ctx context.Context, gameID string) ([]model.ReviewWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.game_id, r.rating, r.body, r.created_at, u.user_name
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.game_id = $1
		 ORDER BY r.created_at DESC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("レビュー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var reviews []model.ReviewWithAuthor
	for rows.Next() {
		var rv model.ReviewWithAuthor
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.GameID, &rv.Rating, &rv.Body, &rv.CreatedAt, &rv.AuthorName); err != nil {
			return nil, fmt.Errorf("レビュー行の読み取りに失敗しました: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("レビュー一覧の走査に失敗しました: %w", err)
	}
	return reviews, nil
}

// AverageRating は指定ゲームの平均評価とレビュー件数を返す。
// レビューが存在しない場合はaverageがnil（未評価）となる。ゼロ除算は発生しない。
func (r *PostgresReviewRepo) AverageRating(ctx context.Context, gameID string) (*float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE game_id = $1`,
		gameID,
	).Scan(&avg, &count)
	if err != nil {
		return nil, 0, fmt.Errorf("平均評価の取得に失敗しました: %w", err)
	}

	if !avg.Valid {
		return nil, 0, nil
	}
	return &avg.Float64, count, nil
}

// compile-time interface check
var _ ReviewRepository = (*PostgresReviewRepo)(nil)
