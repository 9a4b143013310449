package service

import (
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/queue"
	"github.com/bgsport/backoffice/internal/repository"
)

// OrderHistoryService 订单操作历史
// 说明：写入为尽力而为，失败只记录日志，不影响主流程。
type OrderHistoryService struct {
	repo        repository.OrderHistoryRepository
	queueClient *queue.Client
}

// NewOrderHistoryService 创建订单历史服务
func NewOrderHistoryService(repo repository.OrderHistoryRepository, queueClient *queue.Client) *OrderHistoryService {
	return &OrderHistoryService{repo: repo, queueClient: queueClient}
}

// Record 记录一条历史；队列可用时异步写入，否则同步写入
func (s *OrderHistoryService) Record(orderID uint, action, detail string, actionAt time.Time) {
	if s == nil || orderID == 0 {
		return
	}
	if actionAt.IsZero() {
		actionAt = time.Now()
	}
	payload := queue.OrderHistoryAppendPayload{
		OrderID:  orderID,
		Action:   strings.TrimSpace(action),
		Detail:   strings.TrimSpace(detail),
		ActionAt: actionAt.UTC(),
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderHistoryAppend(payload)
		if err == nil {
			return
		}
		logger.Warnw("order_history_enqueue_failed",
			"order_id", orderID,
			"action", payload.Action,
			"error", err,
		)
	}
	if err := s.Append(payload); err != nil {
		logger.Warnw("order_history_write_failed",
			"order_id", orderID,
			"action", payload.Action,
			"error", err,
		)
	}
}

// Append 落库一条历史，历史表不存在时视为未启用
func (s *OrderHistoryService) Append(payload queue.OrderHistoryAppendPayload) error {
	if s == nil || s.repo == nil {
		return nil
	}
	row := &models.OrderStatusHistory{
		OrderID:  payload.OrderID,
		Action:   payload.Action,
		Detail:   payload.Detail,
		ActionAt: payload.ActionAt.UTC(),
	}
	if err := s.repo.Create(row); err != nil {
		if repository.IsMissingTableError(err) {
			logger.Debugw("order_history_table_missing", "order_id", payload.OrderID)
			return nil
		}
		return err
	}
	return nil
}

// List 订单历史（倒序）
func (s *OrderHistoryService) List(orderID uint) ([]models.OrderStatusHistory, error) {
	if s == nil || s.repo == nil {
		return []models.OrderStatusHistory{}, nil
	}
	return s.repo.ListByOrder(orderID)
}

// Exists 判断某动作历史是否已存在
func (s *OrderHistoryService) Exists(orderID uint, action, detailPrefix string) (bool, error) {
	if s == nil || s.repo == nil {
		return false, nil
	}
	return s.repo.Exists(orderID, action, detailPrefix)
}
