package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/api"
	"github.com/foodikal/ny-backend/internal/cache"
	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/notify"
	"github.com/foodikal/ny-backend/internal/repository/postgres"
	"github.com/foodikal/ny-backend/internal/service"
	"github.com/foodikal/ny-backend/internal/storage"
	"github.com/foodikal/ny-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
		logger.SetLevel("debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	limiter, err := cache.NewRateLimiter(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("rate limiter unavailable, running without limits")
		limiter = cache.NewNoopRateLimiter()
	}

	menuRepo := postgres.NewMenuRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	promoRepo := postgres.NewPromoRepository(db)
	bannerRepo := postgres.NewBannerRepository(db)

	telegram := notify.NewTelegram(cfg.Telegram)
	archive := storage.NewLocalArchive(cfg.Report.ArchiveDir)

	reportService, err := service.NewReportService(orderRepo, menuRepo, cfg.Report, archive)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("invalid report configuration")
	}

	services := &api.Services{
		MenuService:   service.NewMenuService(menuRepo),
		OrderService:  service.NewOrderService(orderRepo, menuRepo, promoRepo, telegram),
		ReportService: reportService,
		Promos:        promoRepo,
		Banners:       bannerRepo,
	}

	router := api.NewRouter(services, cfg, limiter)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}
