package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/repository"
)

func TestBuildReportFilter(t *testing.T) {
	filter, period, err := buildReportFilter(ReportQueryInput{Year: 2026, Month: "2", Prefix: "pkf26"})
	if err != nil {
		t.Fatalf("build filter failed: %v", err)
	}
	if filter.From.Format(dateLayout) != "2026-02-01" || filter.To.Format(dateLayout) != "2026-03-01" {
		t.Fatalf("unexpected window: %v - %v", filter.From, filter.To)
	}
	if period.Label != "2026-02" || period.To != "2026-02-28" || filter.Prefix != "PKF26" {
		t.Fatalf("unexpected period: %+v prefix=%s", period, filter.Prefix)
	}

	_, period, err = buildReportFilter(ReportQueryInput{Year: 2026, Month: "all"})
	if err != nil || period.Label != "2026-ALL" || period.To != "2026-12-31" {
		t.Fatalf("unexpected full year period: %+v err=%v", period, err)
	}

	tests := []struct {
		input ReportQueryInput
		want  error
	}{
		{ReportQueryInput{Year: 1999}, ErrReportPeriodInvalid},
		{ReportQueryInput{Year: 2026, Month: "13"}, ErrReportPeriodInvalid},
		{ReportQueryInput{Year: 2026, Prefix: "XYZ"}, ErrReportPrefixInvalid},
	}
	for _, tt := range tests {
		if _, _, err := buildReportFilter(tt.input); !errors.Is(err, tt.want) {
			t.Fatalf("expected %v for %+v, got %v", tt.want, tt.input, err)
		}
	}
}

func TestReportServiceAggregates(t *testing.T) {
	env := newServiceTestEnv(t, "report_aggregates")
	ctx := context.Background()
	closed := env.createOrder(t, "PKF26-300", 880000)
	if _, err := env.payments.RecordFactoryPayment(ctx, RecordPaymentInput{OrderID: closed.Order.ID, Amount: 600000}); err != nil {
		t.Fatalf("record factory payment failed: %v", err)
	}
	if _, err := env.orders.Close(ctx, closed.Order.ID); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := env.orders.MarkProductionCompleted(ctx, closed.Order.ID, time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("mark production completed failed: %v", err)
	}
	env.createOrder(t, "MKF26-301", 100000)

	svc := NewReportService(repository.NewReportRepository(env.db), repository.NewUserRepository(env.db))

	sales, err := svc.SalesProfit(ReportQueryInput{Year: 2026, Month: "1"})
	if err != nil {
		t.Fatalf("sales profit failed: %v", err)
	}
	if sales.Summary.TotalSales != 1760000 || sales.Summary.TotalOrders != 2 || sales.Summary.TotalShirts != 30 {
		t.Fatalf("unexpected sales summary: %+v", sales.Summary)
	}
	if sales.Summary.TotalProfit != 280000 || sales.Summary.ProfitOrders != 1 {
		t.Fatalf("profit must only count orders finished in the period: %+v", sales.Summary)
	}

	admins, err := svc.AdminSales(ReportQueryInput{Year: 2026, Month: "1"})
	if err != nil {
		t.Fatalf("admin sales failed: %v", err)
	}
	if len(admins.Rows) != 1 || admins.Rows[0].Name != "Noy" || admins.Rows[0].OrdersTotal != 2 {
		t.Fatalf("unexpected admin rows: %+v", admins.Rows)
	}

	unpaid, err := svc.Orders(ReportQueryInput{Year: 2026, Month: "1", PaymentStatus: constants.PaymentFilterUnpaid})
	if err != nil {
		t.Fatalf("orders report failed: %v", err)
	}
	if unpaid.Summary.TotalOrders != 1 || unpaid.Summary.OutstandingAmount != 780000 || unpaid.Rows[0].OrderCode != "MKF26-301" {
		t.Fatalf("unexpected unpaid report: %+v", unpaid.Summary)
	}

	export, err := svc.BuildExport(ReportOrders, ReportQueryInput{Year: 2026, Month: "1"})
	if err != nil {
		t.Fatalf("build export failed: %v", err)
	}
	if len(export.Table.Rows) != 2 || len(export.Table.Summary) == 0 {
		t.Fatalf("unexpected export table: %+v", export.Table)
	}
	if _, err := svc.BuildExport("unknown", ReportQueryInput{Year: 2026}); !errors.Is(err, ErrReportTypeInvalid) {
		t.Fatalf("expected invalid report type, got %v", err)
	}
}
