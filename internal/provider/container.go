package provider

import (
	"time"

	"github.com/bgsport/backoffice/internal/cache"
	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/queue"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	FabricRepo    repository.FabricRepository
	UserRepo      repository.UserRepository
	OrderRepo     repository.OrderRepository
	PaymentRepo   repository.PaymentRepository
	HistoryRepo   repository.OrderHistoryRepository
	ReportRepo    repository.ReportRepository
	DashboardRepo repository.DashboardRepository

	// Services
	HistoryService   *service.OrderHistoryService
	FabricService    *service.FabricService
	UserService      *service.UserService
	OrderService     *service.OrderService
	PaymentService   *service.PaymentService
	DashboardService *service.DashboardService
	ReportService    *service.ReportService
	ImportService    *service.ImportService
	OverdueService   *service.OverdueService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 使用指定数据库连接组装容器（不初始化缓存）
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.FabricRepo = repository.NewFabricRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.HistoryRepo = repository.NewOrderHistoryRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	cacheTTL := time.Duration(c.Config.Dashboard.CacheTTLSeconds) * time.Second

	c.HistoryService = service.NewOrderHistoryService(c.HistoryRepo, c.QueueClient)
	c.FabricService = service.NewFabricService(c.FabricRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.PaymentRepo, c.FabricRepo, c.UserRepo, c.HistoryService, c.Config.Settlement)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.PaymentRepo, c.HistoryService, cacheTTL)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, cacheTTL, c.Config.Dashboard.RecentOrders)
	c.ReportService = service.NewReportService(c.ReportRepo, c.UserRepo)
	c.ImportService = service.NewImportService(c.OrderRepo, c.PaymentRepo, c.FabricRepo, c.UserRepo, c.HistoryService,
		c.Config.Settlement, c.Config.Import.MaxRows)
	c.OverdueService = service.NewOverdueService(c.OrderRepo, c.HistoryService, c.QueueClient, c.Config.Reminder.BatchSize)
}
