package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/gamestore/internal/model"
)

// PostgresGameRepo はPostgreSQLを使用したカタログリポジトリ。読み取り専用。
type PostgresGameRepo struct {
	db *sql.DB
}

// NewPostgresGameRepo はPostgresGameRepoを生成する。
func NewPostgresGameRepo(db *sql.DB) *PostgresGameRepo {
	return &PostgresGameRepo{db: db}
}

// ゲーム一覧系クエリの共通SELECT句。タグは配列に集約して1行で返す。
const gameSummarySelect = `
	SELECT g.id, g.game_name, g.price,
	       COALESCE(ARRAY_AGG(t.tag_name ORDER BY t.tag_name) FILTER (WHERE t.tag_name IS NOT NULL), '{}')
	FROM games g
	LEFT JOIN game_tags gt ON gt.game_id = g.id
	LEFT JOIN tags t ON t.id = gt.tag_id`

// Exists は指定IDのゲームが存在するかを返す。
func (r *PostgresGameRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM games WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ゲームの存在確認に失敗しました: %w", err)
	}
	return exists, nil
}

// FindDetailByID はゲーム詳細をパブリッシャー・デベロッパー情報付きで取得する。
// 見つからない場合はnilを返す。
func (r *PostgresGameRepo) FindDetailByID(ctx context.Context, id string) (*model.GameDetail, error) {
	detail := &model.GameDetail{}
	err := r.db.QueryRowContext(ctx,
		`SELECT g.id, g.game_name, g.description, g.price, g.release_date, g.age_rating,
		        g.publisher_id, g.dev_id, p.publisher_name, d.studio
		 FROM games g
		 LEFT JOIN publishers p ON g.publisher_id = p.id
		 LEFT JOIN developers d ON g.dev_id = d.id
		 WHERE g.id = $1`,
		id,
	).Scan(
		&detail.ID, &detail.Name, &detail.Description, &detail.Price, &detail.ReleaseDate,
		&detail.AgeRating, &detail.PublisherID, &detail.DeveloperID, &detail.PublisherName, &detail.Studio,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ゲーム詳細の取得に失敗しました: %w", err)
	}

	return detail, nil
}

// List は全ゲームの一覧を名前順で返す。
func (r *PostgresGameRepo) List(ctx context.Context) ([]model.GameSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		gameSummarySelect+`
		 GROUP BY g.id
		 ORDER BY g.game_name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ゲーム一覧の取得に失敗しました: %w", err)
	}
	return scanGameSummaries(rows)
}

// Search はゲーム名またはタグ名の部分一致でゲームを検索する。
func (r *PostgresGameRepo) Search(ctx context.Context, query string) ([]model.GameSummary, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx,
		gameSummarySelect+`
		 WHERE g.id IN (
		     SELECT g2.id
		     FROM games g2
		     LEFT JOIN game_tags gt2 ON gt2.game_id = g2.id
		     LEFT JOIN tags t2 ON t2.id = gt2.tag_id
		     WHERE g2.game_name ILIKE $1 OR t2.tag_name ILIKE $1
		 )
		 GROUP BY g.id
		 ORDER BY g.game_name ASC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("ゲームの検索に失敗しました: %w", err)
	}
	return scanGameSummaries(rows)
}

// ListTags は全タグを名前順で返す。
func (r *PostgresGameRepo) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tag_name FROM tags ORDER BY tag_name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("タグ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("タグ行の読み取りに失敗しました: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("タグ一覧の走査に失敗しました: %w", err)
	}
	return tags, nil
}

// ListByTag は指定タグ名が付いたゲームの一覧を返す。
func (r *PostgresGameRepo) ListByTag(ctx context.Context, tagName string) ([]model.GameSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		gameSummarySelect+`
		 WHERE g.id IN (
		     SELECT gt2.game_id
		     FROM game_tags gt2
		     JOIN tags t2 ON t2.id = gt2.tag_id
		     WHERE t2.tag_name = $1
		 )
		 GROUP BY g.id
		 ORDER BY g.game_name ASC`,
		tagName,
	)
	if err != nil {
		return nil, fmt.Errorf("タグによるゲーム一覧の取得に失敗しました: %w", err)
	}
	return scanGameSummaries(rows)
}

// ListByDeveloper は指定デベロッパーのゲーム一覧を返す。
func (r *PostgresGameRepo) ListByDeveloper(ctx context.Context, devID string) ([]model.GameSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		gameSummarySelect+`
		 WHERE g.dev_id = $1
		 GROUP BY g.id
		 ORDER BY g.game_name ASC`,
		devID,
	)
	if err != nil {
		return nil, fmt.Errorf("デベロッパーによるゲーム一覧の取得に失敗しました: %w", err)
	}
	return scanGameSummaries(rows)
}

// ListByPublisher は指定パブリッシャーのゲーム一覧を返す。
func (r *PostgresGameRepo) ListByPublisher(ctx context.Context, publisherID string) ([]model.GameSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		gameSummarySelect+`
		 WHERE g.publisher_id = $1
		 GROUP BY g.id
		 ORDER BY g.game_name ASC`,
		publisherID,
	)
	if err != nil {
		return nil, fmt.Errorf("パブリッシャーによるゲーム一覧の取得に失敗しました: %w", err)
	}
	return scanGameSummaries(rows)
}

// ListItems は指定ゲームのアイテム一覧を返す。
func (r *PostgresGameRepo) ListItems(ctx context.Context, gameID string) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, item_name, description, price
		 FROM items WHERE game_id = $1 ORDER BY item_name ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("アイテム一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.GameID, &it.Name, &it.Description, &it.Price); err != nil {
			return nil, fmt.Errorf("アイテム行の読み取りに失敗しました: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("アイテム一覧の走査に失敗しました: %w", err)
	}
	return items, nil
}

// ListAchievementDefinitions は指定ゲームの実績定義を表示順で返す。
// sort_order昇順、同値はID昇順で安定させる。定義が無い場合は空スライスを返す。
func (r *PostgresGameRepo) ListAchievementDefinitions(ctx context.Context, gameID string) ([]model.AchievementDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, achievement_name, description, sort_order
		 FROM achievements WHERE game_id = $1
		 ORDER BY sort_order ASC, id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("実績定義一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	defs := []model.AchievementDefinition{}
	for rows.Next() {
		var d model.AchievementDefinition
		if err := rows.Scan(&d.ID, &d.GameID, &d.Name, &d.Description, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("実績定義行の読み取りに失敗しました: %w", err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("実績定義一覧の走査に失敗しました: %w", err)
	}
	return defs, nil
}

// scanGameSummaries はゲーム一覧クエリの結果行を読み取る。
func scanGameSummaries(rows *sql.Rows) ([]model.GameSummary, error) {
	defer rows.Close()

	var games []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.Price, pq.Array(&g.Tags)); err != nil {
			return nil, fmt.Errorf("ゲーム行の読み取りに失敗しました: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ゲーム一覧の走査に失敗しました: %w", err)
	}
	return games, nil
}

// compile-time interface check
var _ GameRepository = (*PostgresGameRepo)(nil)
