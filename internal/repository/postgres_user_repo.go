package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gamestore/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// Create はユーザーを作成する。
// email一意制約違反はEMAIL_TAKENに変換して返す。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, user_name, email, password_hash, date_of_birth, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.DateOfBirth, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewEmailTakenError()
		}
		return fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_name, email, password_hash, date_of_birth, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.DateOfBirth, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}

	return user, nil
}

// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_name, email, password_hash, date_of_birth, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.DateOfBirth, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("メールアドレスによるユーザーの検索に失敗しました: %w", err)
	}

	return user, nil
}

// ListFriends はユーザーのフレンド一覧を返す。
// friendshipsは対称な関係のため、両側のカラムを対象に検索する。
func (r *PostgresUserRepo) ListFriends(ctx context.Context, userID string) ([]model.Friend, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.user_name
		 FROM users u
		 JOIN friendships f
		   ON (u.id = f.user_id_b AND f.user_id_a = $1)
		   OR (u.id = f.user_id_a AND f.user_id_b = $1)
		 ORDER BY u.user_name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("フレンド一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var friends []model.Friend
	for rows.Next() {
		var f model.Friend
		if err := rows.Scan(&f.UserID, &f.Name); err != nil {
			return nil, fmt.Errorf("フレンド行の読み取りに失敗しました: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("フレンド一覧の走査に失敗しました: %w", err)
	}
	return friends, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
