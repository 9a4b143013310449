package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/provider"
	"github.com/bgsport/backoffice/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderHistoryAppend, c.handleOrderHistoryAppend)
	mux.HandleFunc(queue.TaskOrderOverdueReminder, c.handleOrderOverdueReminder)
}

func (c *Consumer) handleOrderHistoryAppend(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.HistoryService == nil {
		logger.Debugw("worker_order_history_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderHistoryAppendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_history_unmarshal_failed", "error", err)
		// 载荷损坏重试无意义
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == 0 || payload.Action == "" {
		logger.Debugw("worker_order_history_skip_invalid_payload", "order_id", payload.OrderID, "action", payload.Action)
		return nil
	}
	if err := c.HistoryService.Append(payload); err != nil {
		logger.Warnw("worker_order_history_append_failed",
			"order_id", payload.OrderID,
			"action", payload.Action,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderOverdueReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.OverdueService == nil {
		logger.Debugw("worker_overdue_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderOverdueReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_overdue_reminder_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_overdue_reminder_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	recorded, err := c.OverdueService.Remind(payload.OrderID, payload.Side)
	if err != nil {
		logger.Warnw("worker_overdue_reminder_failed",
			"order_id", payload.OrderID,
			"side", payload.Side,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_overdue_reminder_done",
		"order_id", payload.OrderID,
		"side", payload.Side,
		"recorded", recorded,
	)
	return nil
}
