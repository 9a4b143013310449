package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T, name string) *gorm.DB {
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

func mustCreateOrder(t *testing.T, db *gorm.DB, code string, orderDate time.Time, mutate func(o *models.Order)) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderCode:        code,
		OrderDate:        orderDate.UTC(),
		FabricName:       "Sport",
		FabricShortPrice: models.NewMoney(50000),
		FabricLongPrice:  models.NewMoney(70000),
		ShortQty:         10,
		SizeUpcharge:     models.NewMoney(constants.DefaultSizeUpcharge),
		GrossTotal:       models.NewMoney(500000),
		NetTotal:         models.NewMoney(500000),
		Balance:          models.NewMoney(500000),
		Status:           constants.OrderStatusInProgress,
	}
	if mutate != nil {
		mutate(order)
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order %s failed: %v", code, err)
	}
	return order
}
