package app

import (
	"context"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"triphita/internal/config"
	"triphita/internal/handlers"
	"triphita/internal/logger"
	"triphita/internal/routes"
	"triphita/internal/services"
	"triphita/internal/storage"
	"triphita/internal/storage/memstore"
	"triphita/internal/storage/pgstore"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	store, err := newStorage(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	// Сервисы
	postService := services.NewPostService(store)
	userService := services.NewUserService(store)

	// Хендлеры
	postHandler := handlers.NewPostHandler(postService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(store)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, postHandler, userHandler, healthHandler)

	return router, nil
}

// newStorage — единственное место, где выбирается бэкенд хранилища.
// Решение принимается один раз на старте, дальше весь код работает
// только через порт storage.Storage.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if !cfg.UseDatabase {
		logger.Log.Info("Хранилище: память процесса (USE_DATABASE=false)")
		return memstore.New(), nil
	}

	logger.Log.Info("Хранилище: Postgres", zap.String("dsn", cfg.GetDSNSafe()))

	store, err := pgstore.New(ctx, cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.Seed(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
