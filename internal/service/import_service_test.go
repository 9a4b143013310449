package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImportService(env *serviceTestEnv) *ImportService {
	return NewImportService(
		repository.NewOrderRepository(env.db),
		repository.NewPaymentRepository(env.db),
		repository.NewFabricRepository(env.db),
		repository.NewUserRepository(env.db),
		env.history,
		config.SettlementConfig{DefaultSizeUpcharge: 20000, RequireFactorySettled: true},
		100,
	)
}

var importTestHeaders = []string{"Order Date", "order_code", "fabric_name", "short_qty", "long_qty", "initial_deposit", "factory_cost", "admin_name", "graphic_name"}

func buildImportWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	return buildImportWorkbookWithHeaders(t, importTestHeaders, rows)
}

func buildImportWorkbookWithHeaders(t *testing.T, headers []string, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.Write(&buf, spreadsheet.Table{
		Sheet:   "orders",
		Headers: headers,
		Rows:    rows,
	}))
	return bytes.NewReader(buf.Bytes())
}

func TestImportServiceInsertOnlySkipsExisting(t *testing.T) {
	env := newServiceTestEnv(t, "import_insert_only")
	env.createOrder(t, "PKF26-400", 0)
	svc := newTestImportService(env)

	workbook := buildImportWorkbook(t, [][]interface{}{
		{"2026-01-10", "PKF26-400", "Sport Dry", 1, 0, 0, 0, "Noy", "Kham"},
		{"2026-01-10", "PKF26-401", "Sport Dry", 10, 5, 200000, 500000, "Noy", "Kham"},
		{"2026-01-11", "PKF26-402", "Unknown Fabric", 1, 0, 0, 0, "Noy", "Kham"},
		{"2026-01-12", "PKF26-401", "Sport Dry", 10, 0, 100000, 300000, "Noy", "Kham"},
	})
	result, err := svc.Apply(context.Background(), workbook, constants.ImportModeInsertOnly, "en-US")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 4, result.Rows[0].Row)

	var order models.Order
	require.NoError(t, env.db.Where("order_code = ?", "PKF26-401").First(&order).Error)
	// 同一编码以最后一行为准
	assert.Equal(t, 10, order.ShortQty)
	assert.Equal(t, 0, order.LongQty)
	assert.Equal(t, int64(500000), order.NetTotal.Int64())
	assert.Equal(t, int64(400000), order.Balance.Int64())

	var ledger []models.CustomerPayment
	require.NoError(t, env.db.Where("order_id = ?", order.ID).Find(&ledger).Error)
	require.Len(t, ledger, 1)
	assert.Equal(t, int64(100000), ledger[0].Amount.Int64())
}

func TestImportServiceUpsertKeepsLedger(t *testing.T) {
	env := newServiceTestEnv(t, "import_upsert")
	existing := env.createOrder(t, "PKF26-410", 300000)
	svc := newTestImportService(env)

	workbook := buildImportWorkbook(t, [][]interface{}{
		{"2026-01-10", "PKF26-410", "Sport Dry", 20, 0, 999999, 800000, "Noy", "Kham"},
	})
	result, err := svc.Apply(context.Background(), workbook, constants.ImportModeUpsert, "en-US")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	var order models.Order
	require.NoError(t, env.db.First(&order, existing.Order.ID).Error)
	assert.Equal(t, 20, order.ShortQty)
	assert.Equal(t, int64(1000000), order.NetTotal.Int64())
	assert.Equal(t, int64(300000), order.InitialDeposit.Int64())
	assert.Equal(t, int64(700000), order.Balance.Int64())
	assert.Equal(t, int64(800000), order.FactoryBalance.Int64())
}

func TestImportServiceRejectsBadInput(t *testing.T) {
	env := newServiceTestEnv(t, "import_bad_input")
	svc := newTestImportService(env)

	_, err := svc.Apply(context.Background(), bytes.NewReader([]byte("not a workbook")), constants.ImportModeUpsert, "en-US")
	assert.True(t, errors.Is(err, ErrImportFileInvalid))

	_, err = svc.Apply(context.Background(), buildImportWorkbook(t, nil), "replace", "en-US")
	assert.True(t, errors.Is(err, ErrImportModeInvalid))
}

func TestImportServicePreviewAndTemplate(t *testing.T) {
	env := newServiceTestEnv(t, "import_preview")
	svc := newTestImportService(env)

	preview, err := svc.Preview(buildImportWorkbook(t, [][]interface{}{
		{"46032", "PKF26-420", "sport dry", 2, 0, 0, 0, "noy", "kham"},
		{"", "PKF26-421", "Sport Dry", 2, 0, 0, 0, "Noy", "Kham"},
	}), "en-US")
	require.NoError(t, err)
	assert.Equal(t, 2, preview.TotalRows)
	require.Len(t, preview.Accepted, 1)
	assert.Equal(t, "2026-01-10", preview.Accepted[0].OrderDate)
	require.Len(t, preview.Rejected, 1)
	assert.Equal(t, "Missing order date", preview.Rejected[0].Reason)

	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)

	template, err := svc.Template()
	require.NoError(t, err)
	assert.Equal(t, "orders-import-template.xlsx", template.Filename)
	require.Len(t, template.Table.Rows, 1)
	assert.Equal(t, "Sport Dry", template.Table.Rows[0][4])
	assert.Equal(t, "Noy", template.Table.Rows[0][15])
}

func TestImportServiceUpsertKeepsFabricSnapshot(t *testing.T) {
	env := newServiceTestEnv(t, "import_upsert_snapshot")
	existing := env.createOrder(t, "PKF26-430", 0)
	mesh := &models.Fabric{Name: "Micro Mesh", ShortPrice: models.NewMoney(60000), LongAdd: models.NewMoney(20000), IsActive: true}
	mesh.RecomputeLongPrice()
	require.NoError(t, env.db.Create(mesh).Error)
	require.NoError(t, env.db.Model(&models.Fabric{}).Where("id = ?", env.fabric.ID).Updates(map[string]interface{}{
		"short_price": 90000,
		"long_price":  110000,
	}).Error)
	svc := newTestImportService(env)

	result, err := svc.Apply(context.Background(), buildImportWorkbook(t, [][]interface{}{
		{"2026-01-05", "PKF26-430", "Sport Dry", 10, 5, 0, 600000, "Noy", "Kham"},
	}), constants.ImportModeUpsert, "en-US")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	var order models.Order
	require.NoError(t, env.db.First(&order, existing.Order.ID).Error)
	assert.Equal(t, int64(50000), order.FabricShortPrice.Int64())
	assert.Equal(t, int64(70000), order.FabricLongPrice.Int64())
	// 10*50000 + 5*70000，沿用下单时的价格
	assert.Equal(t, int64(850000), order.GrossTotal.Int64())

	// 换成另一种面料时按该面料当前价格重新快照
	_, err = svc.Apply(context.Background(), buildImportWorkbook(t, [][]interface{}{
		{"2026-01-05", "PKF26-430", "Micro Mesh", 10, 5, 0, 600000, "Noy", "Kham"},
	}), constants.ImportModeUpsert, "en-US")
	require.NoError(t, err)
	require.NoError(t, env.db.First(&order, existing.Order.ID).Error)
	assert.Equal(t, "Micro Mesh", order.FabricName)
	assert.Equal(t, int64(60000), order.FabricShortPrice.Int64())
	assert.Equal(t, int64(1000000), order.GrossTotal.Int64())
}

func TestImportServiceUpsertSkipsCompletedOrder(t *testing.T) {
	env := newServiceTestEnv(t, "import_upsert_completed")
	ctx := context.Background()
	existing := env.createOrder(t, "PKF26-440", 880000)
	_, err := env.payments.RecordFactoryPayment(ctx, RecordPaymentInput{
		OrderID: existing.Order.ID,
		Amount:  600000,
		PaidAt:  time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = env.orders.Close(ctx, existing.Order.ID)
	require.NoError(t, err)
	svc := newTestImportService(env)

	result, err := svc.Apply(ctx, buildImportWorkbook(t, [][]interface{}{
		{"2026-01-05", "PKF26-440", "Sport Dry", 20, 0, 0, 600000, "Noy", "Kham"},
	}), constants.ImportModeUpsert, "en-US")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Existing, 1)
	assert.Equal(t, "Order is already completed (skipped)", result.Existing[0].Reason)

	var order models.Order
	require.NoError(t, env.db.First(&order, existing.Order.ID).Error)
	assert.Equal(t, constants.OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.CompletedAt)
	assert.Equal(t, 10, order.ShortQty)
}

func TestImportServiceCompletedStatusFollowsCloseRule(t *testing.T) {
	env := newServiceTestEnv(t, "import_completed_rule")
	svc := newTestImportService(env)
	headers := append(append([]string{}, importTestHeaders...), "status")

	result, err := svc.Apply(context.Background(), buildImportWorkbookWithHeaders(t, headers, [][]interface{}{
		{"2026-01-10", "PKF26-450", "Sport Dry", 10, 0, 500000, 300000, "Noy", "Kham", "completed"},
		{"2026-01-10", "PKF26-451", "Sport Dry", 10, 0, 500000, 0, "Noy", "Kham", "completed"},
	}), constants.ImportModeInsertOnly, "en-US")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	var owed, settled models.Order
	require.NoError(t, env.db.Where("order_code = ?", "PKF26-450").First(&owed).Error)
	assert.Equal(t, constants.OrderStatusInProgress, owed.Status)
	assert.Equal(t, int64(300000), owed.FactoryBalance.Int64())
	assert.Nil(t, owed.CompletedAt)

	require.NoError(t, env.db.Where("order_code = ?", "PKF26-451").First(&settled).Error)
	assert.Equal(t, constants.OrderStatusCompleted, settled.Status)
	assert.NotNil(t, settled.CompletedAt)
}
