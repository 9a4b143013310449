package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db       *gorm.DB
	orders   *OrderService
	payments *PaymentService
	history  *OrderHistoryService
	fabric   *models.Fabric
	admin    *models.User
	graphic  *models.User
}

func setupServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newServiceTestEnv(t *testing.T, name string) *serviceTestEnv {
	t.Helper()
	db := setupServiceTestDB(t, name)
	fabric := &models.Fabric{
		Name:       "Sport Dry",
		ShortPrice: models.NewMoney(50000),
		LongAdd:    models.NewMoney(20000),
		IsActive:   true,
	}
	fabric.RecomputeLongPrice()
	if err := db.Create(fabric).Error; err != nil {
		t.Fatalf("create fabric failed: %v", err)
	}
	admin := &models.User{FullName: "Noy", Role: constants.UserRoleAdmin, IsActive: true}
	graphic := &models.User{FullName: "Kham", Role: constants.UserRoleGraphic, IsActive: true}
	for _, user := range []*models.User{admin, graphic} {
		if err := db.Create(user).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	history := NewOrderHistoryService(repository.NewOrderHistoryRepository(db), nil)
	orders := NewOrderService(orderRepo, paymentRepo, repository.NewFabricRepository(db), repository.NewUserRepository(db), history, config.SettlementConfig{
		DefaultSizeUpcharge:   20000,
		RequireFactorySettled: true,
	})
	payments := NewPaymentService(orderRepo, paymentRepo, history, time.Minute)
	return &serviceTestEnv{
		db:       db,
		orders:   orders,
		payments: payments,
		history:  history,
		fabric:   fabric,
		admin:    admin,
		graphic:  graphic,
	}
}

// exampleCharges 10 短袖 + 5 长袖 + 2 件 3XL，净额 880000
func exampleCharges() OrderChargesInput {
	return OrderChargesInput{
		ShortQty:      10,
		LongQty:       5,
		Qty3XL:        2,
		SizeUpcharge:  20000,
		ExtraCharge:   10000,
		DesignDeposit: 20000,
		FactoryCost:   600000,
	}
}

func (e *serviceTestEnv) createOrder(t *testing.T, code string, deposit int64) *OrderView {
	t.Helper()
	view, err := e.orders.Create(context.Background(), CreateOrderInput{
		OrderCode:      code,
		OrderDate:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		CustomerPhone:  "02055555555",
		FabricID:       e.fabric.ID,
		AdminUserID:    e.admin.ID,
		GraphicUserID:  e.graphic.ID,
		Charges:        exampleCharges(),
		InitialDeposit: deposit,
	})
	if err != nil {
		t.Fatalf("create order %s failed: %v", code, err)
	}
	return view
}
