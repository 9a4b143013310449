package main

import (
	"context"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/provider"
	"github.com/bgsport/backoffice/internal/service"
)

type seedOrder struct {
	code        string
	phone       string
	date        string
	fabric      string
	shortQty    int
	longQty     int
	qty3XL      int
	extra       int64
	design      int64
	factoryCost int64
	deposit     int64
	factoryPaid int64
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	cfg.Queue.Enabled = false
	c := provider.NewContainerWithDB(cfg, models.DB, nil)
	ctx := context.Background()

	// 面料
	fabrics := []service.FabricInput{
		{Name: "Sport Dry", ShortPrice: 50000, LongAdd: 20000},
		{Name: "Micro Mesh", ShortPrice: 60000, LongAdd: 20000},
		{Name: "Cotton Spandex", ShortPrice: 75000, LongAdd: 25000},
	}
	fabricIDs := map[string]uint{}
	for _, input := range fabrics {
		existing, err := c.FabricRepo.GetByName(input.Name)
		if err != nil {
			stdLog.Fatalf("Failed to load fabric %s: %v", input.Name, err)
		}
		if existing != nil {
			fabricIDs[input.Name] = existing.ID
			stdLog.Printf("Fabric already exists: %s", input.Name)
			continue
		}
		fabric, err := c.FabricService.Create(input)
		if err != nil {
			stdLog.Fatalf("Failed to create fabric %s: %v", input.Name, err)
		}
		fabricIDs[input.Name] = fabric.ID
		stdLog.Printf("Created fabric: %s", input.Name)
	}

	// 人员
	adminID := ensureUser(c, stdLog.Printf, service.UserInput{FullName: "Noy", Phone: "020 5555 0001", Role: constants.UserRoleAdmin})
	graphicID := ensureUser(c, stdLog.Printf, service.UserInput{FullName: "Kham", Phone: "020 5555 0002", Role: constants.UserRoleGraphic})
	ensureUser(c, stdLog.Printf, service.UserInput{FullName: "Vone", Role: constants.UserRoleAccountant})
	if adminID == 0 || graphicID == 0 {
		stdLog.Fatalf("Failed to prepare seed users")
	}

	// 订单
	orders := []seedOrder{
		{code: "PKF26-001", phone: "020 7777 1001", date: "2026-01-05", fabric: "Sport Dry", shortQty: 10, longQty: 5, qty3XL: 2, extra: 10000, design: 20000, factoryCost: 600000, deposit: 300000},
		{code: "PKLF26-001", phone: "020 7777 1002", date: "2026-01-12", fabric: "Micro Mesh", shortQty: 0, longQty: 20, factoryCost: 1100000, deposit: 1600000, factoryPaid: 1100000},
		{code: "MKF26-001", phone: "020 7777 1003", date: "2026-02-02", fabric: "Cotton Spandex", shortQty: 30, qty3XL: 4, design: 50000, factoryCost: 1500000},
		{code: "PMF26-001", phone: "020 7777 1004", date: "2026-02-18", fabric: "Sport Dry", shortQty: 15, factoryCost: 500000, deposit: 750000, factoryPaid: 200000},
	}
	for _, seed := range orders {
		existing, err := c.OrderRepo.GetByCode(seed.code)
		if err != nil {
			stdLog.Fatalf("Failed to load order %s: %v", seed.code, err)
		}
		if existing != nil {
			stdLog.Printf("Order already exists: %s", seed.code)
			continue
		}
		orderDate, err := service.ParseDate(seed.date)
		if err != nil {
			stdLog.Fatalf("Invalid seed date %s: %v", seed.date, err)
		}
		view, err := c.OrderService.Create(ctx, service.CreateOrderInput{
			OrderCode:     seed.code,
			OrderDate:     orderDate,
			CustomerPhone: seed.phone,
			FabricID:      fabricIDs[seed.fabric],
			AdminUserID:   adminID,
			GraphicUserID: graphicID,
			Charges: service.OrderChargesInput{
				ShortQty:      seed.shortQty,
				LongQty:       seed.longQty,
				Qty3XL:        seed.qty3XL,
				ExtraCharge:   seed.extra,
				DesignDeposit: seed.design,
				FactoryCost:   seed.factoryCost,
			},
			InitialDeposit: seed.deposit,
		})
		if err != nil {
			stdLog.Fatalf("Failed to create order %s: %v", seed.code, err)
		}
		if seed.factoryPaid > 0 {
			if _, err := c.PaymentService.RecordFactoryPayment(ctx, service.RecordPaymentInput{
				OrderID: view.Order.ID,
				Amount:  seed.factoryPaid,
				PaidAt:  orderDate.Add(72 * time.Hour),
				Note:    "seed factory payment",
			}); err != nil {
				stdLog.Printf("Failed to record factory payment for %s: %v", seed.code, err)
			}
		}
		stdLog.Printf("Created order: %s (net %d)", seed.code, view.Settlement.NetTotal)
	}

	stdLog.Println("Seed completed")
}

func ensureUser(c *provider.Container, printf func(string, ...interface{}), input service.UserInput) uint {
	users, err := c.UserRepo.ListByRole(input.Role, false)
	if err != nil {
		printf("Failed to list users for role %s: %v", input.Role, err)
		return 0
	}
	for _, user := range users {
		if strings.EqualFold(user.FullName, input.FullName) {
			printf("User already exists: %s", input.FullName)
			return user.ID
		}
	}
	user, err := c.UserService.Create(input)
	if err != nil {
		printf("Failed to create user %s: %v", input.FullName, err)
		return 0
	}
	printf("Created user: %s", input.FullName)
	return user.ID
}
