package router

import (
	"fmt"
	"strings"

	"github.com/bgsport/backoffice/internal/cache"
	"github.com/bgsport/backoffice/internal/config"
	adminhandlers "github.com/bgsport/backoffice/internal/http/handlers/admin"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/metrics"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bg"
	}
	importRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:import", redisPrefix),
		WindowSeconds: cfg.Import.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Import.RateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}
	importLimiter := RateLimitMiddleware(cache.Client(), importRule, KeyByIPAndPath)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	apiV1 := r.Group("/api/v1")
	admin := apiV1.Group("/admin")
	{
		admin.GET("/fabrics", adminHandler.ListFabrics)
		admin.GET("/fabrics/active", adminHandler.ListActiveFabrics)
		admin.POST("/fabrics", adminHandler.CreateFabric)
		admin.PUT("/fabrics/:id", adminHandler.UpdateFabric)
		admin.PATCH("/fabrics/:id/active", adminHandler.SetFabricActive)
		admin.DELETE("/fabrics/:id", adminHandler.DeleteFabric)

		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/options", adminHandler.ListUserOptions)
		admin.POST("/users", adminHandler.CreateUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.PATCH("/users/:id/active", adminHandler.SetUserActive)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/search", adminHandler.SearchOrders)
		admin.POST("/orders/preview", adminHandler.PreviewOrder)
		admin.POST("/orders/bulk-delete", adminHandler.BulkDeleteOrders)
		admin.POST("/orders", adminHandler.CreateOrder)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PUT("/orders/:id", adminHandler.UpdateOrder)
		admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
		admin.POST("/orders/:id/production-complete", adminHandler.MarkProductionCompleted)
		admin.POST("/orders/:id/close", adminHandler.CloseOrder)
		admin.POST("/orders/:id/customer-payments", adminHandler.RecordCustomerPayment)
		admin.POST("/orders/:id/factory-payments", adminHandler.RecordFactoryPayment)

		admin.GET("/payments", adminHandler.ListPayments)
		admin.GET("/dashboard", adminHandler.GetDashboardOverview)

		admin.GET("/reports/:kind", adminHandler.GetReport)
		admin.GET("/reports/:kind/export", adminHandler.ExportReport)

		admin.GET("/imports/template", adminHandler.GetImportTemplate)
		admin.POST("/imports/preview", importLimiter, adminHandler.PreviewImport)
		admin.POST("/imports/apply", importLimiter, adminHandler.ApplyImport)
	}

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		if err := pingDatabase(); err != nil {
			c.JSON(503, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func pingDatabase() error {
	if models.DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
