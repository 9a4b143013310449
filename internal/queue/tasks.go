package queue

import (
	"encoding/json"
	"time"

	"github.com/bgsport/backoffice/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderHistoryAppend 订单历史追加任务
	TaskOrderHistoryAppend = constants.TaskOrderHistoryAppend
	// TaskOrderOverdueReminder 订单逾期提醒任务
	TaskOrderOverdueReminder = constants.TaskOrderOverdueReminder
)

// OrderHistoryAppendPayload 订单历史追加任务载荷
type OrderHistoryAppendPayload struct {
	OrderID  uint      `json:"order_id"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail"`
	ActionAt time.Time `json:"action_at"`
}

// OrderOverdueReminderPayload 订单逾期提醒任务载荷
type OrderOverdueReminderPayload struct {
	OrderID uint      `json:"order_id"`
	Side    string    `json:"side"`
	DueAt   time.Time `json:"due_at"`
}

// NewOrderHistoryAppendTask 创建订单历史追加任务
func NewOrderHistoryAppendTask(payload OrderHistoryAppendPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderHistoryAppend, body), nil
}

// NewOrderOverdueReminderTask 创建订单逾期提醒任务
func NewOrderOverdueReminderTask(payload OrderOverdueReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderOverdueReminder, body), nil
}
