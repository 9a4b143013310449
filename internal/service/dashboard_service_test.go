package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/repository"
)

func TestResolveDashboardWindow(t *testing.T) {
	now := time.Date(2026, 3, 31, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input DashboardQueryInput
		from  string
		to    string
	}{
		{"default one month clamps to month end", DashboardQueryInput{}, "2026-02-28", "2026-04-01"},
		{"today", DashboardQueryInput{Range: "today"}, "2026-03-31", "2026-04-01"},
		{"seven days", DashboardQueryInput{Range: "7days"}, "2026-03-24", "2026-04-01"},
		{"custom inclusive", DashboardQueryInput{Range: "custom", From: "2026-01-01", To: "2026-01-31"}, "2026-01-01", "2026-02-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := resolveDashboardWindow(tt.input, now)
			if err != nil {
				t.Fatalf("resolve window failed: %v", err)
			}
			if window.startAt.Format(dateLayout) != tt.from || window.endAt.Format(dateLayout) != tt.to {
				t.Fatalf("unexpected window: %s - %s", window.startAt.Format(dateLayout), window.endAt.Format(dateLayout))
			}
		})
	}

	invalid := []DashboardQueryInput{
		{Range: "quarter"},
		{Range: "custom", From: "2026-02-01", To: "2026-01-01"},
		{Range: "custom", From: "2024-01-01", To: "2026-01-01"},
		{Range: "custom", From: "bad", To: "2026-01-01"},
	}
	for _, input := range invalid {
		if _, err := resolveDashboardWindow(input, now); !errors.Is(err, ErrDashboardRangeInvalid) {
			t.Fatalf("expected invalid range for %+v, got %v", input, err)
		}
	}
}

func TestDashboardServiceOverview(t *testing.T) {
	env := newServiceTestEnv(t, "dashboard_overview")
	ctx := context.Background()
	view := env.createOrder(t, "PKF26-200", 880000)
	if _, err := env.payments.RecordFactoryPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 600000}); err != nil {
		t.Fatalf("record factory payment failed: %v", err)
	}
	if _, err := env.orders.Close(ctx, view.Order.ID); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	env.createOrder(t, "PKF26-201", 80000)

	svc := NewDashboardService(repository.NewDashboardRepository(env.db), time.Minute, 5)
	overview, err := svc.GetOverview(ctx, DashboardQueryInput{Range: "custom", From: "2026-01-01", To: "2026-01-31"})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.TotalOrders != 2 || overview.CompletedOrders != 1 || overview.InProgressOrders != 1 {
		t.Fatalf("unexpected order counts: %+v", overview)
	}
	if overview.TotalProfit != 280000 {
		t.Fatalf("expected completed profit 280000, got %d", overview.TotalProfit)
	}
	if overview.CustomerBalance != 800000 || overview.FactoryBalance != 600000 {
		t.Fatalf("unexpected balances: customer=%d factory=%d", overview.CustomerBalance, overview.FactoryBalance)
	}
	if overview.TotalShirts != 30 || len(overview.RecentOrders) != 2 {
		t.Fatalf("unexpected shirts/recent: %d/%d", overview.TotalShirts, len(overview.RecentOrders))
	}
}
