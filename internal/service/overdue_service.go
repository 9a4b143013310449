package service

import (
	"fmt"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/metrics"
	"github.com/bgsport/backoffice/internal/queue"
	"github.com/bgsport/backoffice/internal/repository"
)

// OverdueService 扫描到期未付清的订单并记录逾期提醒
type OverdueService struct {
	orderRepo      repository.OrderRepository
	historyService *OrderHistoryService
	queueClient    *queue.Client
	batchSize      int
}

// NewOverdueService 创建逾期提醒服务
func NewOverdueService(orderRepo repository.OrderRepository, historyService *OrderHistoryService, queueClient *queue.Client, batchSize int) *OverdueService {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &OverdueService{
		orderRepo:      orderRepo,
		historyService: historyService,
		queueClient:    queueClient,
		batchSize:      batchSize,
	}
}

// Scan 扫描两侧逾期订单；队列可用时投递任务，否则直接记录。返回处理数量
func (s *OverdueService) Scan(now time.Time) (int, error) {
	handled := 0
	for _, side := range []string{constants.LedgerSideCustomer, constants.LedgerSideFactory} {
		rows, err := s.orderRepo.ListOverdue(side, now.UTC(), s.batchSize)
		if err != nil {
			return handled, err
		}
		for _, row := range rows {
			if s.queueClient.Enabled() {
				err := s.queueClient.EnqueueOrderOverdueReminder(queue.OrderOverdueReminderPayload{
					OrderID: row.OrderID,
					Side:    side,
					DueAt:   row.DueAt.UTC(),
				})
				if err == nil {
					handled++
					continue
				}
				logger.Warnw("overdue_reminder_enqueue_failed",
					"order_id", row.OrderID,
					"side", side,
					"error", err,
				)
			}
			recorded, err := s.Remind(row.OrderID, side)
			if err != nil {
				logger.Warnw("overdue_reminder_failed",
					"order_id", row.OrderID,
					"side", side,
					"error", err,
				)
				continue
			}
			if recorded {
				handled++
			}
		}
	}
	return handled, nil
}

// Remind 复核订单后写入一条逾期历史；已提醒过或已不再逾期时返回 false
func (s *OverdueService) Remind(orderID uint, side string) (bool, error) {
	if side != constants.LedgerSideCustomer && side != constants.LedgerSideFactory {
		return false, ErrPaymentSideInvalid
	}
	exists, err := s.historyService.Exists(orderID, constants.HistoryActionPaymentOverdue, side)
	if err != nil && !repository.IsMissingTableError(err) {
		return false, err
	}
	if exists {
		return false, nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return false, err
	}
	if order == nil || order.Status != constants.OrderStatusInProgress {
		return false, nil
	}
	dueAt := order.CustomerRemainingDueAt
	balance := order.Balance.Int64()
	if side == constants.LedgerSideFactory {
		dueAt = order.FactoryPaymentDueAt
		balance = order.FactoryBalance.Int64()
	}
	if dueAt == nil || balance <= 0 {
		return false, nil
	}

	detail := fmt.Sprintf("%s payment overdue (due %s)", side, dueAt.UTC().Format(dateLayout))
	if err := s.historyService.Append(queue.OrderHistoryAppendPayload{
		OrderID:  orderID,
		Action:   constants.HistoryActionPaymentOverdue,
		Detail:   detail,
		ActionAt: time.Now().UTC(),
	}); err != nil {
		return false, err
	}
	metrics.OverdueReminders.WithLabelValues(side).Inc()
	logger.Infow("order_payment_overdue",
		"order_id", orderID,
		"order_code", order.OrderCode,
		"side", side,
		"balance", balance,
	)
	return true, nil
}
