package repository

import (
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"
)

func TestReportRepositoryAggregates(t *testing.T) {
	db := setupRepositoryTestDB(t, "report_repo")
	repo := NewReportRepository(db)
	march := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	adminID := uint(7)
	graphicID := uint(9)

	mustCreateOrder(t, db, "PKF26-200", march, func(o *models.Order) {
		o.AdminUserID = &adminID
		o.GraphicUserID = &graphicID
		o.LongQty = 5
		o.FreeQty = 3
		o.NetTotal = models.NewMoney(850000)
		o.FactoryCost = models.NewMoney(600000)
		o.ProductionCompletedAt = &april
	})
	mustCreateOrder(t, db, "PKF26-201", march, func(o *models.Order) {
		o.AdminUserID = &adminID
		o.NetTotal = models.NewMoney(150000)
		o.FactoryCost = models.NewMoney(100000)
		o.ProductionCompletedAt = &march
	})
	mustCreateOrder(t, db, "MKF26-202", march, nil)

	marchFilter := OrderPeriodFilter{
		From:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Prefix: "PKF26",
	}
	sales, err := repo.GetSalesTotals(marchFilter)
	if err != nil {
		t.Fatalf("sales totals failed: %v", err)
	}
	if sales.TotalOrders != 2 || sales.TotalSales != 1000000 || sales.TotalShirts != 25 {
		t.Fatalf("unexpected sales totals: %+v", sales)
	}

	profit, err := repo.GetCompletedProfit(marchFilter)
	if err != nil {
		t.Fatalf("profit failed: %v", err)
	}
	if profit.TotalProfit != 50000 || profit.OrderCount != 1 {
		t.Fatalf("profit should only include orders completed in march: %+v", profit)
	}

	admins, err := repo.GroupByAdmin(marchFilter, 0)
	if err != nil {
		t.Fatalf("group by admin failed: %v", err)
	}
	if len(admins) != 1 || admins[0].UserID != adminID || admins[0].OrdersTotal != 2 {
		t.Fatalf("unexpected admin rows: %+v", admins)
	}

	graphics, err := repo.GroupByGraphic(OrderPeriodFilter{From: marchFilter.From, To: marchFilter.To, Prefix: constants.OrderPrefixAll}, 0)
	if err != nil {
		t.Fatalf("group by graphic failed: %v", err)
	}
	if len(graphics) != 1 || graphics[0].UserID != graphicID {
		t.Fatalf("orders without graphic should be skipped: %+v", graphics)
	}

	orders, err := repo.ListOrders(OrderPeriodFilter{From: marchFilter.From, To: marchFilter.To})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 march orders, got %d", len(orders))
	}
}

func TestDashboardRepositoryOverview(t *testing.T) {
	db := setupRepositoryTestDB(t, "dashboard_repo")
	repo := NewDashboardRepository(db)
	day := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	mustCreateOrder(t, db, "PKF26-300", day, func(o *models.Order) {
		o.Status = constants.OrderStatusCompleted
		o.Balance = models.NewMoney(0)
		o.NetTotal = models.NewMoney(900000)
		o.FactoryCost = models.NewMoney(700000)
		o.FreeQty = 2
	})
	mustCreateOrder(t, db, "PKF26-301", day, func(o *models.Order) {
		o.FactoryCost = models.NewMoney(300000)
		o.FactoryBalance = models.NewMoney(100000)
		o.LongQty = 4
	})

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	overview, err := repo.GetOverview(start, end)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.TotalProfit != 200000 {
		t.Fatalf("profit want 200000 got %d", overview.TotalProfit)
	}
	if overview.CustomerBalance != 500000 || overview.FactoryBalance != 100000 {
		t.Fatalf("unexpected balances: %+v", overview)
	}
	if overview.TotalOrders != 2 || overview.CompletedOrders != 1 || overview.InProgressOrders != 1 {
		t.Fatalf("unexpected counts: %+v", overview)
	}
	if overview.ShortSleeves != 20 || overview.LongSleeves != 4 || overview.GiveawayShirts != 2 {
		t.Fatalf("unexpected shirt counts: %+v", overview)
	}

	recent, err := repo.GetRecentOrders(start, end, 1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("recent orders failed: %v len=%d", err, len(recent))
	}
}
