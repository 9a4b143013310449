package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/cache"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/metrics"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/settlement"

	"gorm.io/gorm"
)

// PaymentService 客户收款与工厂付款服务
// 说明：记录付款与重算缓存余额在同一事务内完成。
type PaymentService struct {
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	historyService *OrderHistoryService
	cacheTTL       time.Duration
}

// NewPaymentService 创建付款服务
func NewPaymentService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, historyService *OrderHistoryService, cacheTTL time.Duration) *PaymentService {
	return &PaymentService{
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		historyService: historyService,
		cacheTTL:       cacheTTL,
	}
}

// RecordPaymentInput 付款输入
type RecordPaymentInput struct {
	OrderID uint
	Amount  int64
	PaidAt  time.Time
	Note    string
}

// RecordPaymentResult 付款结果
type RecordPaymentResult struct {
	PaymentID  uint              `json:"payment_id"`
	Side       string            `json:"side"`
	Amount     int64             `json:"amount"`
	PaidAt     time.Time         `json:"paid_at"`
	Order      models.Order      `json:"order"`
	Settlement settlement.Result `json:"settlement"`
}

// PaymentSummary 收款页汇总
type PaymentSummary struct {
	OrderCount       int64  `json:"order_count"`
	TotalBilled      int64  `json:"total_billed"`
	TotalReceived    int64  `json:"total_received"`
	TotalOutstanding int64  `json:"total_outstanding"`
	PaidOrders       int64  `json:"paid_orders"`
	InProgress       int64  `json:"in_progress"`
	ReadyToClose     int64  `json:"ready_to_close"`
	CollectionRate   string `json:"collection_rate"`
	TxCount          int64  `json:"tx_count"`
}

// PaymentListResult 收款页结果
type PaymentListResult struct {
	Orders  []OrderView    `json:"orders"`
	Total   int64          `json:"total"`
	Summary PaymentSummary `json:"summary"`
}

// RecordCustomerPayment 记录客户收款
func (s *PaymentService) RecordCustomerPayment(ctx context.Context, input RecordPaymentInput) (*RecordPaymentResult, error) {
	return s.record(ctx, constants.LedgerSideCustomer, input)
}

// RecordFactoryPayment 记录工厂付款
func (s *PaymentService) RecordFactoryPayment(ctx context.Context, input RecordPaymentInput) (*RecordPaymentResult, error) {
	return s.record(ctx, constants.LedgerSideFactory, input)
}

func (s *PaymentService) record(ctx context.Context, side string, input RecordPaymentInput) (*RecordPaymentResult, error) {
	if side != constants.LedgerSideCustomer && side != constants.LedgerSideFactory {
		return nil, ErrPaymentSideInvalid
	}
	if input.Amount <= 0 {
		metrics.PaymentsRejected.WithLabelValues(side, "not_positive").Inc()
		return nil, ErrPaymentAmountInvalid
	}
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	paidAt = dateOnly(paidAt)
	note := strings.TrimSpace(input.Note)

	var result RecordPaymentResult
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		customer, err := paymentRepo.SumCustomer(order.ID)
		if err != nil {
			return err
		}
		factory, err := paymentRepo.SumFactory(order.ID)
		if err != nil {
			return err
		}

		// 旧版订单只有 initial_deposit，首次记账前补一条期初流水
		if side == constants.LedgerSideCustomer && customer.Entries == 0 && order.InitialDeposit.Int64() > 0 {
			opening := &models.CustomerPayment{
				OrderID: order.ID,
				Amount:  models.NewMoney(order.InitialDeposit.Int64()),
				PaidAt:  order.OrderDate,
				Note:    constants.HistoryDetailLegacyDepositOpening,
			}
			if err := paymentRepo.CreateCustomer(opening); err != nil {
				return err
			}
			customer = repository.LedgerTotal{Total: opening.Amount.Int64(), Entries: 1}
		}

		before := computeOrderSettlement(order, customer, factory)
		outstanding := before.CustomerBalance
		if side == constants.LedgerSideFactory {
			outstanding = before.FactoryBalance
		}
		if err := settlement.ValidatePayment(input.Amount, outstanding); err != nil {
			if errors.Is(err, settlement.ErrAmountExceedsOutstanding) {
				return ErrPaymentExceedsOutstanding
			}
			return ErrPaymentAmountInvalid
		}

		updates := map[string]interface{}{}
		if side == constants.LedgerSideCustomer {
			row := &models.CustomerPayment{OrderID: order.ID, Amount: models.NewMoney(input.Amount), PaidAt: paidAt, Note: note}
			if err := paymentRepo.CreateCustomer(row); err != nil {
				return err
			}
			result.PaymentID = row.ID
			customer.Total += input.Amount
			customer.Entries++
		} else {
			row := &models.FactoryPayment{OrderID: order.ID, Amount: models.NewMoney(input.Amount), PaidAt: paidAt, Note: note}
			if err := paymentRepo.CreateFactory(row); err != nil {
				return err
			}
			result.PaymentID = row.ID
			factory.Total += input.Amount
			factory.Entries++
		}

		after := computeOrderSettlement(order, customer, factory)
		applySettlementCache(order, after)
		now := time.Now()
		if side == constants.LedgerSideCustomer {
			order.CustomerPaidFullAt = settlement.PaidFullAt(after.CustomerBalance, paidAt)
			updates["customer_paid_full_at"] = order.CustomerPaidFullAt
		} else {
			order.FactoryPaidFullAt = settlement.PaidFullAt(after.FactoryBalance, paidAt)
			updates["factory_paid_full_at"] = order.FactoryPaidFullAt
		}
		updates["balance"] = order.Balance
		updates["factory_balance"] = order.FactoryBalance
		updates["initial_deposit"] = order.InitialDeposit
		updates["updated_at"] = now
		if err := orderRepo.UpdateFields(order.ID, updates); err != nil {
			return err
		}
		order.UpdatedAt = now

		result.Side = side
		result.Amount = input.Amount
		result.PaidAt = paidAt
		result.Order = *order
		result.Settlement = after
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentExceedsOutstanding) {
			metrics.PaymentsRejected.WithLabelValues(side, "exceeds_outstanding").Inc()
		}
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(side).Inc()
	action := constants.HistoryActionReceiveCustomerPay
	if side == constants.LedgerSideFactory {
		action = constants.HistoryActionPayFactory
	}
	detail := fmt.Sprintf("amount=%d paid_at=%s", input.Amount, paidAt.Format(dateLayout))
	if note != "" {
		detail += " note=" + note
	}
	s.historyService.Record(input.OrderID, action, detail, time.Now())
	invalidateDashboardCache(ctx)
	logger.Infow("order_payment_recorded",
		"order_id", input.OrderID,
		"side", side,
		"amount", input.Amount,
		"customer_balance", result.Settlement.CustomerBalance,
		"factory_balance", result.Settlement.FactoryBalance,
	)
	return &result, nil
}

// List 收款页：订单列表与按同一过滤条件的汇总
func (s *PaymentService) List(ctx context.Context, input ListOrdersInput) (*PaymentListResult, error) {
	filter, err := buildOrderListFilter(input)
	if err != nil {
		return nil, err
	}
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	views, err := buildOrderViews(s.paymentRepo, orders)
	if err != nil {
		return nil, err
	}
	summary, err := s.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PaymentListResult{Orders: views, Total: total, Summary: *summary}, nil
}

// Summary 汇总；有客户流水时以流水为准，否则使用 initial_deposit 合计
func (s *PaymentService) Summary(ctx context.Context, filter repository.OrderListFilter) (*PaymentSummary, error) {
	cacheKey := fmt.Sprintf("payments:summary:%d:%s:%s:%s:%s:%s:%s",
		cache.Version(ctx, dashboardCacheNamespace),
		filter.Status,
		strings.ToUpper(strings.TrimSpace(filter.Prefix)),
		strings.TrimSpace(filter.Search),
		formatDate(filter.DateFrom),
		formatDate(filter.DateTo),
		filter.Payment,
	)
	var cached PaymentSummary
	if hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
		return &cached, nil
	}

	row, err := s.orderRepo.SummarizePayments(filter)
	if err != nil {
		return nil, err
	}
	received := row.TotalInitialDeposit
	if row.LedgerCount > 0 {
		received = row.LedgerReceived
	}
	rate := 0.0
	if row.TotalBilled > 0 {
		rate = float64(received) / float64(row.TotalBilled) * 100
	}
	summary := &PaymentSummary{
		OrderCount:       row.OrderCount,
		TotalBilled:      row.TotalBilled,
		TotalReceived:    received,
		TotalOutstanding: row.TotalOutstanding,
		PaidOrders:       row.PaidOrders,
		InProgress:       row.InProgress,
		ReadyToClose:     row.ReadyToClose,
		CollectionRate:   formatPercentValue(rate),
		TxCount:          row.LedgerCount,
	}
	_ = cache.SetJSON(ctx, cacheKey, summary, s.cacheTTL)
	return summary, nil
}
