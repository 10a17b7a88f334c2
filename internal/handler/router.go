package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gamestore/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	LoggingMiddleware func(next http.Handler) http.Handler

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// カタログ
	CatalogService  CatalogServiceInterface
	GameViewService GameViewServiceInterface

	// ライブラリ
	LibraryService LibraryServiceInterface

	// レビュー
	ReviewService ReviewServiceInterface

	// 実績
	AchievementService AchievementServiceInterface

	// フレンド
	FriendLister FriendListerInterface

	// 運用エンドポイント
	HealthCheck    http.HandlerFunc
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → (Session → RateLimit)
//
// カタログ閲覧とレビュー閲覧は認証不要。ゲーム詳細は任意認証で、
// ログイン中のユーザーには所有状態を付与する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.LoggingMiddleware != nil {
		r.Use(deps.LoggingMiddleware)
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	catalogHandler := NewCatalogHandler(deps.CatalogService, deps.GameViewService)
	libraryHandler := NewLibraryHandler(deps.LibraryService)
	reviewHandler := NewReviewHandler(deps.ReviewService)
	achievementHandler := NewAchievementHandler(deps.AchievementService)
	userHandler := NewUserHandler(deps.FriendLister)

	// --- 運用エンドポイント ---

	if deps.HealthCheck != nil {
		r.Get("/healthz", deps.HealthCheck)
	}
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証不要のルート ---

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// カタログ閲覧（公開）
	r.Get("/api/games", catalogHandler.ListGames)
	r.Get("/api/tags", catalogHandler.ListTags)
	r.Get("/api/tags/{name}/games", catalogHandler.ListGamesByTag)
	r.Get("/api/developers/{id}/games", catalogHandler.ListGamesByDeveloper)
	r.Get("/api/publishers/{id}/games", catalogHandler.ListGamesByPublisher)

	// ゲーム詳細は任意認証: ログイン中なら所有状態を付与
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewOptionalSessionMiddleware(deps.SessionFinder))
		r.Get("/api/games/{id}", catalogHandler.GetGame)
	})

	// レビュー閲覧・アイテム一覧（公開）
	r.Get("/api/games/{id}/reviews", reviewHandler.ListByGame)
	r.Get("/api/games/{id}/items", catalogHandler.ListItems)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ライブラリ管理
		r.Route("/api/library", func(r chi.Router) {
			// POST /api/library - 購入（購入専用レート制限を追加）
			r.With(deps.RateLimiter.PurchaseMiddleware()).Post("/", libraryHandler.Purchase)
			r.Get("/", libraryHandler.ListLibrary)
		})

		// レビュー投稿
		r.Post("/api/games/{id}/reviews", reviewHandler.Submit)

		// 実績
		r.Get("/api/games/{id}/achievements", achievementHandler.ListForGame)
		r.Get("/api/achievements", achievementHandler.ListMine)

		// フレンド
		r.Get("/api/friends", userHandler.ListFriends)
	})

	return r
}
