package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"
)

func TestOrderServiceCreateComputesTotals(t *testing.T) {
	env := newServiceTestEnv(t, "order_create")
	view := env.createOrder(t, "PKF26-001", 300000)

	s := view.Settlement
	if s.ShirtsTotal != 850000 || s.PlusSizeTotal != 40000 || s.GrossTotal != 900000 || s.NetTotal != 880000 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.CustomerPaid != 300000 || s.CustomerBalance != 580000 {
		t.Fatalf("unexpected customer side: %+v", s)
	}
	if view.Order.FabricLongPrice.Int64() != 70000 {
		t.Fatalf("expected long price snapshot 70000, got %s", view.Order.FabricLongPrice.String())
	}

	var rows []models.CustomerPayment
	if err := env.db.Where("order_id = ?", view.Order.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load ledger failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Amount.Int64() != 300000 {
		t.Fatalf("expected one opening ledger row, got %+v", rows)
	}
}

func TestOrderServiceCreateClampsDeposit(t *testing.T) {
	env := newServiceTestEnv(t, "order_clamp")
	view := env.createOrder(t, "PKF26-002", 2000000)
	if view.Settlement.CustomerPaid != 880000 || view.Settlement.CustomerBalance != 0 {
		t.Fatalf("expected deposit clamped to net total, got %+v", view.Settlement)
	}
	if view.Order.CustomerPaidFullAt == nil {
		t.Fatalf("expected customer paid full stamp")
	}
}

func TestOrderServiceCreateValidation(t *testing.T) {
	env := newServiceTestEnv(t, "order_validate")
	env.createOrder(t, "PKF26-003", 0)

	base := CreateOrderInput{
		OrderCode:     "PKF26-004",
		OrderDate:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		FabricID:      env.fabric.ID,
		AdminUserID:   env.admin.ID,
		GraphicUserID: env.graphic.ID,
		Charges:       exampleCharges(),
	}
	tests := []struct {
		name   string
		mutate func(in *CreateOrderInput)
		want   error
	}{
		{"duplicate code", func(in *CreateOrderInput) { in.OrderCode = " PKF26-003 " }, ErrOrderCodeExists},
		{"missing code", func(in *CreateOrderInput) { in.OrderCode = "" }, ErrOrderCodeRequired},
		{"missing date", func(in *CreateOrderInput) { in.OrderDate = time.Time{} }, ErrOrderDateRequired},
		{"admin with graphic role", func(in *CreateOrderInput) { in.AdminUserID = env.graphic.ID }, ErrOrderAdminRequired},
		{"graphic with admin role", func(in *CreateOrderInput) { in.GraphicUserID = env.admin.ID }, ErrOrderGraphicRequired},
		{"negative qty", func(in *CreateOrderInput) { in.Charges.ShortQty = -1 }, ErrOrderInvalid},
		{"unknown fabric", func(in *CreateOrderInput) { in.FabricID = 999 }, ErrFabricNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			if _, err := env.orders.Create(context.Background(), input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOrderServiceSnapshotIsolation(t *testing.T) {
	env := newServiceTestEnv(t, "order_snapshot")
	view := env.createOrder(t, "PKF26-010", 0)

	if err := env.db.Model(&models.Fabric{}).Where("id = ?", env.fabric.ID).Updates(map[string]interface{}{
		"short_price": 90000,
		"long_price":  120000,
	}).Error; err != nil {
		t.Fatalf("update fabric failed: %v", err)
	}

	detail, err := env.orders.Get(view.Order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if detail.Settlement.NetTotal != 880000 {
		t.Fatalf("expected snapshot pricing to hold, got %d", detail.Settlement.NetTotal)
	}

	updated, err := env.orders.Update(context.Background(), view.Order.ID, UpdateOrderInput{
		OrderCode:     "PKF26-010",
		OrderDate:     view.Order.OrderDate,
		AdminUserID:   env.admin.ID,
		GraphicUserID: env.graphic.ID,
		Charges:       exampleCharges(),
	})
	if err != nil {
		t.Fatalf("update order failed: %v", err)
	}
	if updated.Settlement.NetTotal != 880000 || updated.Order.FabricShortPrice.Int64() != 50000 {
		t.Fatalf("edit must reuse snapshot prices, got %+v", updated.Settlement)
	}
}

func TestOrderServiceUpdateKeepsLedger(t *testing.T) {
	env := newServiceTestEnv(t, "order_update_ledger")
	view := env.createOrder(t, "PKF26-011", 880000)

	charges := exampleCharges()
	charges.ShortQty = 12
	updated, err := env.orders.Update(context.Background(), view.Order.ID, UpdateOrderInput{
		OrderCode:     "PKF26-011",
		OrderDate:     view.Order.OrderDate,
		AdminUserID:   env.admin.ID,
		GraphicUserID: env.graphic.ID,
		Charges:       charges,
	})
	if err != nil {
		t.Fatalf("update order failed: %v", err)
	}
	if updated.Settlement.NetTotal != 980000 || updated.Settlement.CustomerBalance != 100000 {
		t.Fatalf("unexpected settlement after edit: %+v", updated.Settlement)
	}
	if updated.Order.CustomerPaidFullAt != nil {
		t.Fatalf("expected paid full stamp cleared after balance reopened")
	}
}

func TestOrderServiceCloseGuards(t *testing.T) {
	env := newServiceTestEnv(t, "order_close")
	ctx := context.Background()
	view := env.createOrder(t, "PKF26-020", 0)

	if _, err := env.orders.Close(ctx, view.Order.ID); !errors.Is(err, ErrOrderCustomerOutstanding) {
		t.Fatalf("expected customer outstanding, got %v", err)
	}
	if _, err := env.payments.RecordCustomerPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 880000}); err != nil {
		t.Fatalf("record customer payment failed: %v", err)
	}
	if _, err := env.orders.Close(ctx, view.Order.ID); !errors.Is(err, ErrOrderFactoryOutstanding) {
		t.Fatalf("expected factory outstanding, got %v", err)
	}
	if _, err := env.payments.RecordFactoryPayment(ctx, RecordPaymentInput{OrderID: view.Order.ID, Amount: 600000}); err != nil {
		t.Fatalf("record factory payment failed: %v", err)
	}
	closed, err := env.orders.Close(ctx, view.Order.ID)
	if err != nil {
		t.Fatalf("close order failed: %v", err)
	}
	if closed.Order.Status != constants.OrderStatusCompleted || closed.Order.ClosedAt == nil {
		t.Fatalf("unexpected closed order: %+v", closed.Order)
	}
	if closed.Settlement.Profit != 280000 {
		t.Fatalf("expected profit 280000, got %d", closed.Settlement.Profit)
	}
	if _, err := env.orders.Close(ctx, view.Order.ID); !errors.Is(err, ErrOrderAlreadyCompleted) {
		t.Fatalf("expected already completed, got %v", err)
	}

	history, err := env.history.List(view.Order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	if len(history) == 0 || history[0].Action != constants.HistoryActionCloseOrder {
		t.Fatalf("expected close_order as latest history, got %+v", history)
	}
}

func TestOrderServiceBulkDelete(t *testing.T) {
	env := newServiceTestEnv(t, "order_bulk_delete")
	first := env.createOrder(t, "PKF26-030", 100000)
	second := env.createOrder(t, "PKF26-031", 0)

	if _, err := env.orders.BulkDelete(context.Background(), []uint{0}); !errors.Is(err, ErrBulkDeleteEmpty) {
		t.Fatalf("expected empty selection error, got %v", err)
	}
	deleted, err := env.orders.BulkDelete(context.Background(), []uint{first.Order.ID, second.Order.ID, first.Order.ID})
	if err != nil {
		t.Fatalf("bulk delete failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}
	var ledgerCount int64
	env.db.Model(&models.CustomerPayment{}).Count(&ledgerCount)
	if ledgerCount != 0 {
		t.Fatalf("expected ledger rows removed, got %d", ledgerCount)
	}
}

func TestResolveSearchWindow(t *testing.T) {
	from, to, err := resolveSearchWindow("month", "2026-02")
	if err != nil {
		t.Fatalf("resolve month failed: %v", err)
	}
	if from.Format(dateLayout) != "2026-02-01" || to.Format(dateLayout) != "2026-03-01" {
		t.Fatalf("unexpected month window: %v - %v", from, to)
	}
	if _, _, err := resolveSearchWindow("week", "2026-02"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestSnapshotFabricCopiesStoredPrices(t *testing.T) {
	// 历史数据里长袖单价可能与 短袖+加价 不一致，以存储值为准
	fabric := &models.Fabric{
		ID:         3,
		Name:       "Legacy Mesh",
		ShortPrice: models.NewMoney(50000),
		LongAdd:    models.NewMoney(20000),
		LongPrice:  models.NewMoney(75000),
	}
	var order models.Order
	snapshotFabric(&order, fabric)
	if order.FabricID == nil || *order.FabricID != 3 || order.FabricName != "Legacy Mesh" {
		t.Fatalf("unexpected fabric reference: %+v", order)
	}
	if order.FabricShortPrice.Int64() != 50000 || order.FabricLongPrice.Int64() != 75000 {
		t.Fatalf("snapshot should copy stored prices, got %d/%d", order.FabricShortPrice.Int64(), order.FabricLongPrice.Int64())
	}
}
