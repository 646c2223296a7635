package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/you/storefront/pkg/cache"
	"github.com/you/storefront/pkg/config"
	"github.com/you/storefront/pkg/consumer"
	"github.com/you/storefront/pkg/httpapi"
	"github.com/you/storefront/pkg/service"
	"github.com/you/storefront/pkg/store"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Info().Msg("starting storefront-service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	storeManager, err := store.NewManager(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer storeManager.Close()

	if err := storeManager.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	// The cache is best-effort: if Redis is down the service still serves
	// every request from the database.
	cacheManager, err := cache.NewManager(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid cache configuration")
	}
	defer cacheManager.Close()
	if !cacheManager.Ping(context.Background()) {
		log.Warn().Str("addr", cfg.Cache.Addr()).Msg("cache unreachable, continuing without it")
	}

	users := service.NewUserService(store.NewUserStore(storeManager.DB()), cacheManager)
	products := service.NewProductService(store.NewProductStore(storeManager.DB()), cacheManager)
	orders := service.NewOrderService(storeManager.DB())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.New(cfg.Consumer, orders, products).Start(ctx)

	handlers := httpapi.NewHandlers(users, products, orders, storeManager, cacheManager)
	srv := httpapi.Start(cfg.HTTPAddr, handlers.Router())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Interface("cache_stats", cacheManager.Stats()).Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
