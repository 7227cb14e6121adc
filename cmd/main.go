package main

import (
	"context"
	"fmt"
	"log"

	"PestPro-App/internal/config"
	"PestPro-App/internal/domain/repository"
	"PestPro-App/internal/domain/service"
	"PestPro-App/internal/handler"
	"PestPro-App/internal/infrastructure/atlas"
	"PestPro-App/internal/infrastructure/cache"
	"PestPro-App/internal/infrastructure/database"
	"PestPro-App/internal/infrastructure/firestore"
	repoImpl "PestPro-App/internal/repository"
	"PestPro-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	ctx := context.Background()

	zipSource, closeZipSource, err := newZipSource(ctx, cfg)
	if err != nil {
		log.Fatalf("ZIP対応表の取得元の初期化に失敗: %v", err)
	}
	defer closeZipSource()

	sessions, err := newSessionRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("セッションストアの初期化に失敗: %v", err)
	}

	catalog := repoImpl.NewMemoryCatalog()
	regionSource := atlas.NewAtlasClient(cfg.AtlasURL, cfg.HTTPTimeout)
	loader := usecase.NewAssetLoader(regionSource, zipSource, catalog)

	// アセットはバックグラウンドで1度だけ読み込む（失敗時は該当機能が利用不可のまま）
	go loader.LoadAll(ctx)

	mapUseCase := usecase.NewMapUseCase(catalog, sessions, service.NewViewportController(), cfg.CentroidMode)
	mapHandler := handler.NewMapHandler(mapUseCase)
	appHandler := handler.NewAppHandler(cfg.Members)

	router := handler.SetupRouter(cfg.CORSAllowOrigins, appHandler, mapHandler)

	fmt.Printf("PestPro-App server starting on :%s...\n", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}

// newZipSource 設定に応じたZIP対応表の取得元を作成する
func newZipSource(ctx context.Context, cfg *config.Config) (repository.ZipSource, func(), error) {
	noop := func() {}

	switch cfg.ZipSource {
	case config.ZipSourceHTTP:
		return repoImpl.NewHTTPZipSource(cfg.ZipTableURL, cfg.HTTPTimeout), noop, nil

	case config.ZipSourcePostgres:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			var err error
			dsn, err = database.BuildSupabaseDSN(cfg.SupabaseURL, cfg.SupabaseDBPassword)
			if err != nil {
				return nil, noop, err
			}
		}
		return newPostgresZipSource(dsn)

	case config.ZipSourceSupabase:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, noop, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, noop, err
		}
		log.Printf("✅ Supabase client initialized")
		return repoImpl.NewSupabaseZipSource(client), noop, nil

	case config.ZipSourceFirestore:
		client, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		return repoImpl.NewFirestoreZipSource(client.GetClient()), func() { client.Close() }, nil
	}

	return repoImpl.NewFileZipSource(cfg.ZipTablePath), noop, nil
}

func newPostgresZipSource(dsn string) (repository.ZipSource, func(), error) {
	client, err := database.NewPostgreSQLClient(dsn)
	if err != nil {
		return nil, func() {}, err
	}
	log.Printf("✅ PostgreSQL connection successful")
	return repoImpl.NewPostgresZipSource(client), func() { client.Close() }, nil
}

// newSessionRepository 設定に応じたセッションストアを作成する
func newSessionRepository(ctx context.Context, cfg *config.Config) (repository.ViewportSessionRepository, error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		client, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return repoImpl.NewRedisViewportSessionRepository(client, cfg.SessionTTL), nil
	}
	return repoImpl.NewMemoryViewportSessionRepository(cfg.SessionTTL), nil
}
