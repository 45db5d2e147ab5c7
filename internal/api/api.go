package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/api/handlers"
	"github.com/foodikal/ny-backend/internal/api/middleware"
	"github.com/foodikal/ny-backend/internal/cache"
	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/repository"
	"github.com/foodikal/ny-backend/internal/service"
)

type Services struct {
	MenuService   *service.MenuService
	OrderService  *service.OrderService
	ReportService *service.ReportService
	Promos        repository.PromoRepository
	Banners       repository.BannerRepository
}

func NewRouter(services *Services, cfg *config.Config, limiter cache.RateLimiter) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if normalized, allowAll := normalizeAllowedOrigins(cfg.Server.AllowedOrigins); allowAll {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else if len(normalized) > 0 {
		corsConfig.AllowOrigins = normalized
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	menuHandler := handlers.NewMenuHandler(services.MenuService)
	orderHandler := handlers.NewOrderHandler(services.OrderService)
	adminHandler := handlers.NewAdminHandler(services.Promos, services.Banners)
	reportHandler := handlers.NewReportHandler(services.ReportService)

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.RateLimit(limiter, cache.ScopePublicAPI))
	{
		apiGroup.GET("/menu", menuHandler.GetMenu)
		apiGroup.GET("/menu/category/:category", menuHandler.GetMenuByCategory)
		apiGroup.GET("/banners", adminHandler.ListBanners)
		apiGroup.POST("/create_order",
			middleware.RateLimit(limiter, cache.ScopeCreateOrder), orderHandler.CreateOrder)
		apiGroup.POST("/validate_promo",
			middleware.RateLimit(limiter, cache.ScopeValidatePromo), orderHandler.ValidatePromo)
	}

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.RateLimit(limiter, cache.ScopeAdmin))
	adminGroup.Use(middleware.AdminAuth(cfg.Admin.PasswordHash, limiter))
	{
		adminGroup.GET("/menu", menuHandler.ListItems)
		adminGroup.POST("/menu", menuHandler.CreateItem)
		adminGroup.PUT("/menu/:id", menuHandler.UpdateItem)
		adminGroup.DELETE("/menu/:id", menuHandler.DeleteItem)

		adminGroup.GET("/orders", orderHandler.ListOrders)
		adminGroup.GET("/orders/:id", orderHandler.GetOrder)
		adminGroup.PUT("/orders/:id/confirmations", orderHandler.UpdateConfirmations)
		adminGroup.DELETE("/orders/:id", orderHandler.DeleteOrder)

		adminGroup.GET("/promo_codes", adminHandler.ListPromoCodes)
		adminGroup.POST("/promo_codes", adminHandler.CreatePromoCode)
		adminGroup.DELETE("/promo_codes/:code", adminHandler.DeletePromoCode)

		adminGroup.POST("/banners", adminHandler.CreateBanner)
		adminGroup.PUT("/banners/:id", adminHandler.UpdateBanner)
		adminGroup.DELETE("/banners/:id", adminHandler.DeleteBanner)

		adminGroup.GET("/weekly_workbook_data", reportHandler.GetWorkbookData)
		adminGroup.GET("/generate_weekly_workbook", reportHandler.GenerateWorkbook)
		adminGroup.GET("/workbook_archive", reportHandler.ListArchivedWorkbooks)
		adminGroup.GET("/workbook_archive/download", reportHandler.GetArchivedWorkbook)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
