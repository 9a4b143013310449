package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
)

func TestPaymentServiceSettlesExampleOrder(t *testing.T) {
	env := newServiceTestEnv(t, "payment_example")
	ctx := context.Background()
	view := env.createOrder(t, "PKF26-100", 0)

	result, err := env.payments.RecordCustomerPayment(ctx, RecordPaymentInput{
		OrderID: view.Order.ID,
		Amount:  880000,
		PaidAt:  time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC),
		Note:    "bank transfer",
	})
	if err != nil {
		t.Fatalf("record payment failed: %v", err)
	}
	if result.Settlement.CustomerBalance != 0 {
		t.Fatalf("expected balance 0, got %d", result.Settlement.CustomerBalance)
	}
	if result.Order.CustomerPaidFullAt == nil || result.Order.CustomerPaidFullAt.Format(dateLayout) != "2026-01-20" {
		t.Fatalf("unexpected paid full stamp: %v", result.Order.CustomerPaidFullAt)
	}

	if _, err := env.payments.RecordCustomerPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 1}); !errors.Is(err, ErrPaymentExceedsOutstanding) {
		t.Fatalf("expected exceeds outstanding, got %v", err)
	}
}

func TestPaymentServiceRejectsOverpaymentWithoutSideEffects(t *testing.T) {
	env := newServiceTestEnv(t, "payment_overpay")
	ctx := context.Background()
	view := env.createOrder(t, "PKF26-101", 300000)

	if _, err := env.payments.RecordCustomerPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 580001}); !errors.Is(err, ErrPaymentExceedsOutstanding) {
		t.Fatalf("expected exceeds outstanding, got %v", err)
	}
	if _, err := env.payments.RecordFactoryPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 600001}); !errors.Is(err, ErrPaymentExceedsOutstanding) {
		t.Fatalf("expected factory exceeds outstanding, got %v", err)
	}
	if _, err := env.payments.RecordCustomerPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 0}); !errors.Is(err, ErrPaymentAmountInvalid) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	var customerRows, factoryRows int64
	env.db.Model(&models.CustomerPayment{}).Where("order_id = ?", view.Order.ID).Count(&customerRows)
	env.db.Model(&models.FactoryPayment{}).Where("order_id = ?", view.Order.ID).Count(&factoryRows)
	if customerRows != 1 || factoryRows != 0 {
		t.Fatalf("ledger changed after rejection: customer=%d factory=%d", customerRows, factoryRows)
	}
	var order models.Order
	if err := env.db.First(&order, view.Order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.Balance.Int64() != 580000 || order.FactoryBalance.Int64() != 600000 {
		t.Fatalf("cached balances changed: balance=%s factory=%s", order.Balance.String(), order.FactoryBalance.String())
	}
}

func TestPaymentServiceLegacyDepositOpening(t *testing.T) {
	env := newServiceTestEnv(t, "payment_legacy")
	ctx := context.Background()
	fabricID := env.fabric.ID
	legacy := &models.Order{
		OrderCode:        "PKF26-102",
		OrderDate:        time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC),
		FabricID:         &fabricID,
		FabricName:       env.fabric.Name,
		FabricShortPrice: models.NewMoney(50000),
		FabricLongPrice:  models.NewMoney(70000),
		ShortQty:         10,
		SizeUpcharge:     models.NewMoney(20000),
		InitialDeposit:   models.NewMoney(200000),
		GrossTotal:       models.NewMoney(500000),
		NetTotal:         models.NewMoney(500000),
		Balance:          models.NewMoney(300000),
		Status:           constants.OrderStatusInProgress,
	}
	if err := env.db.Create(legacy).Error; err != nil {
		t.Fatalf("create legacy order failed: %v", err)
	}

	result, err := env.payments.RecordCustomerPayment(ctx, RecordPaymentInput{OrderID: legacy.ID, Amount: 100000})
	if err != nil {
		t.Fatalf("record payment failed: %v", err)
	}
	if result.Settlement.CustomerPaid != 300000 || result.Settlement.CustomerBalance != 200000 {
		t.Fatalf("legacy deposit not carried into ledger: %+v", result.Settlement)
	}

	var rows []models.CustomerPayment
	if err := env.db.Where("order_id = ?", legacy.ID).Order("id asc").Find(&rows).Error; err != nil {
		t.Fatalf("load ledger failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Note != constants.HistoryDetailLegacyDepositOpening || rows[0].Amount.Int64() != 200000 {
		t.Fatalf("expected opening row then payment, got %+v", rows)
	}
}

func TestPaymentServiceSummary(t *testing.T) {
	env := newServiceTestEnv(t, "payment_summary")
	ctx := context.Background()
	paid := env.createOrder(t, "PKF26-110", 880000)
	env.createOrder(t, "MKF26-111", 80000)

	result, err := env.payments.List(ctx, ListOrdersInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if result.Total != 2 || len(result.Orders) != 2 {
		t.Fatalf("unexpected list size: %d/%d", result.Total, len(result.Orders))
	}
	summary := result.Summary
	if summary.TotalBilled != 1760000 || summary.TotalReceived != 960000 || summary.TotalOutstanding != 800000 {
		t.Fatalf("unexpected summary totals: %+v", summary)
	}
	if summary.PaidOrders != 1 || summary.ReadyToClose != 1 || summary.TxCount != 2 {
		t.Fatalf("unexpected summary counts: %+v", summary)
	}
	if summary.CollectionRate != "54.55" {
		t.Fatalf("unexpected collection rate: %s", summary.CollectionRate)
	}

	scoped, err := env.payments.Summary(ctx, repository.OrderListFilter{Prefix: "PKF26"})
	if err != nil {
		t.Fatalf("scoped summary failed: %v", err)
	}
	if scoped.OrderCount != 1 || scoped.TotalOutstanding != 0 {
		t.Fatalf("summary must follow filter: %+v", scoped)
	}
	_ = paid
}
