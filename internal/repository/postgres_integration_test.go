//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AllModels()
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(cleanupModels...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresOrderSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	mustCreateOrder(t, db, "PKF26-900", time.Now(), func(o *models.Order) {
		o.FactoryBillCode = "fb-Lower"
	})

	repo := NewOrderRepository(db)
	orders, total, err := repo.List(OrderListFilter{Search: "FB-LOWER"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || orders[0].OrderCode != "PKF26-900" {
		t.Fatalf("ILIKE search should match, total=%d", total)
	}

	orders, _, err = repo.List(OrderListFilter{Prefix: constants.OrderPrefixOther})
	if err != nil {
		t.Fatalf("list other failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("OTHER prefix should not match letter codes")
	}
}

func TestPostgresLedgerSums(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	order := mustCreateOrder(t, db, "PKF26-901", time.Now(), nil)
	repo := NewPaymentRepository(db)
	if err := repo.CreateCustomer(&models.CustomerPayment{OrderID: order.ID, Amount: models.NewMoney(120000), PaidAt: time.Now()}); err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	total, err := repo.SumCustomer(order.ID)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if total.Total != 120000 || total.Entries != 1 {
		t.Fatalf("unexpected total %+v", total)
	}
}
