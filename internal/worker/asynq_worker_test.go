package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/provider"
	"github.com/bgsport/backoffice/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_consumer_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Settlement: config.SettlementConfig{DefaultSizeUpcharge: 20000, RequireFactorySettled: true},
		Reminder:   config.ReminderConfig{BatchSize: 10},
	}
	return NewConsumer(provider.NewContainerWithDB(cfg, db, nil)), db
}

func TestHandleOrderHistoryAppend(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	task, err := queue.NewOrderHistoryAppendTask(queue.OrderHistoryAppendPayload{
		OrderID:  7,
		Action:   constants.HistoryActionCreateOrder,
		Detail:   "Created order PKF26-900",
		ActionAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderHistoryAppend(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var rows []models.OrderStatusHistory
	if err := db.Where("order_id = ?", 7).Find(&rows).Error; err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Action != constants.HistoryActionCreateOrder {
		t.Fatalf("expected one create_order row, got %+v", rows)
	}
}

func TestHandleOrderHistoryAppendBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	task := asynq.NewTask(queue.TaskOrderHistoryAppend, []byte("{broken"))
	err := consumer.handleOrderHistoryAppend(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for corrupt payload, got %v", err)
	}
}

func TestHandleOrderOverdueReminderRecordsOnce(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	due := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		OrderCode:              "PKF26-901",
		OrderDate:              time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
		NetTotal:               models.NewMoney(500000),
		Balance:                models.NewMoney(200000),
		Status:                 constants.OrderStatusInProgress,
		CustomerRemainingDueAt: &due,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderOverdueReminderTask(queue.OrderOverdueReminderPayload{
		OrderID: order.ID,
		Side:    constants.LedgerSideCustomer,
		DueAt:   due,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := consumer.handleOrderOverdueReminder(context.Background(), task); err != nil {
			t.Fatalf("handle task failed: %v", err)
		}
	}

	var count int64
	if err := db.Model(&models.OrderStatusHistory{}).
		Where("order_id = ? AND action = ?", order.ID, constants.HistoryActionPaymentOverdue).
		Count(&count).Error; err != nil {
		t.Fatalf("count history failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single overdue row, got %d", count)
	}
}

type stubScanner struct {
	calls atomic.Int32
	err   error
}

func (s *stubScanner) Scan(time.Time) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestNewReminderServiceDisabled(t *testing.T) {
	if _, err := NewReminderService(&config.ReminderConfig{Enabled: false}, &stubScanner{}); err == nil {
		t.Fatalf("expected error for disabled reminder")
	}
	if _, err := NewReminderService(&config.ReminderConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("expected error for nil scanner")
	}
}

func TestReminderServiceScansOnStartAndStopsWithContext(t *testing.T) {
	scanner := &stubScanner{err: errors.New("db down")}
	svc, err := NewReminderService(&config.ReminderConfig{Enabled: true, IntervalSeconds: 3600}, scanner)
	if err != nil {
		t.Fatalf("new reminder service failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for scanner.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start should return nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("reminder service did not stop")
	}
	if scanner.calls.Load() != 1 {
		t.Fatalf("expected one scan on start, got %d", scanner.calls.Load())
	}
}
