package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/metrics"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/settlement"

	"gorm.io/gorm"
)

const initialDepositNote = "initial deposit"

// OrderService 订单服务
type OrderService struct {
	orderRepo             repository.OrderRepository
	paymentRepo           repository.PaymentRepository
	fabricRepo            repository.FabricRepository
	userRepo              repository.UserRepository
	historyService        *OrderHistoryService
	defaultUpcharge       int64
	requireFactorySettled bool
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, fabricRepo repository.FabricRepository, userRepo repository.UserRepository, historyService *OrderHistoryService, cfg config.SettlementConfig) *OrderService {
	upcharge := cfg.DefaultSizeUpcharge
	if upcharge <= 0 {
		upcharge = constants.DefaultSizeUpcharge
	}
	return &OrderService{
		orderRepo:             orderRepo,
		paymentRepo:           paymentRepo,
		fabricRepo:            fabricRepo,
		userRepo:              userRepo,
		historyService:        historyService,
		defaultUpcharge:       upcharge,
		requireFactorySettled: cfg.RequireFactorySettled,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	OrderCode              string
	OrderDate              time.Time
	CustomerPhone          string
	FactoryBillCode        string
	FabricID               uint
	AdminUserID            uint
	GraphicUserID          uint
	Charges                OrderChargesInput
	InitialDeposit         int64
	CustomerRemainingDueAt *time.Time
	FactoryPaymentDueAt    *time.Time
}

// UpdateOrderInput 编辑订单输入（面料快照不可修改）
type UpdateOrderInput struct {
	OrderCode              string
	OrderDate              time.Time
	CustomerPhone          string
	FactoryBillCode        string
	AdminUserID            uint
	GraphicUserID          uint
	Charges                OrderChargesInput
	CustomerRemainingDueAt *time.Time
	FactoryPaymentDueAt    *time.Time
}

// PreviewOrderInput 预览输入：OrderID > 0 时使用该订单快照与流水，否则使用 FabricID 当前价格
type PreviewOrderInput struct {
	OrderID        uint
	FabricID       uint
	Charges        OrderChargesInput
	InitialDeposit int64
}

// ListOrdersInput 订单列表查询
type ListOrdersInput struct {
	Page     int
	PageSize int
	Status   string
	Prefix   string
	Search   string
	DateFrom string
	DateTo   string
	Payment  string
}

// SearchOrdersInput 搜索页查询
type SearchOrdersInput struct {
	Prefix string
	Query  string
	Mode   string
	Value  string
}

// OrderDetail 订单详情
type OrderDetail struct {
	Order            models.Order                `json:"order"`
	Settlement       settlement.Result           `json:"settlement"`
	AdminUser        *models.User                `json:"admin_user"`
	GraphicUser      *models.User                `json:"graphic_user"`
	CustomerPayments []models.CustomerPayment    `json:"customer_payments"`
	FactoryPayments  []models.FactoryPayment     `json:"factory_payments"`
	History          []models.OrderStatusHistory `json:"history"`
}

const searchResultLimit = 500

// Preview 仅计算不落库
func (s *OrderService) Preview(input PreviewOrderInput) (*settlement.Result, error) {
	if err := input.Charges.validate(); err != nil {
		return nil, err
	}
	if input.OrderID > 0 {
		order, err := s.orderRepo.GetByID(input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
		customer, factory, err := s.ledgerTotals(s.paymentRepo, order.ID)
		if err != nil {
			return nil, err
		}
		draft := *order
		input.Charges.applyTo(&draft, s.defaultUpcharge)
		result := computeOrderSettlement(&draft, customer, factory)
		return &result, nil
	}
	if input.FabricID == 0 {
		return nil, ErrOrderFabricRequired
	}
	fabric, err := s.fabricRepo.GetByID(input.FabricID)
	if err != nil {
		return nil, err
	}
	if fabric == nil {
		return nil, ErrFabricNotFound
	}
	draft := models.Order{}
	snapshotFabric(&draft, fabric)
	input.Charges.applyTo(&draft, s.defaultUpcharge)
	result := settlement.Compute(settlementInput(&draft, input.InitialDeposit, 0))
	return &result, nil
}

// Create 创建订单：快照面料价格，初始订金写入首条客户流水
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*OrderView, error) {
	code := strings.TrimSpace(input.OrderCode)
	if code == "" {
		return nil, ErrOrderCodeRequired
	}
	if input.OrderDate.IsZero() {
		return nil, ErrOrderDateRequired
	}
	if input.FabricID == 0 {
		return nil, ErrOrderFabricRequired
	}
	if input.AdminUserID == 0 {
		return nil, ErrOrderAdminRequired
	}
	if input.GraphicUserID == 0 {
		return nil, ErrOrderGraphicRequired
	}
	if input.InitialDeposit < 0 {
		return nil, ErrOrderInvalid
	}
	if err := input.Charges.validate(); err != nil {
		return nil, err
	}
	existing, err := s.orderRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrOrderCodeExists
	}
	fabric, err := s.fabricRepo.GetByID(input.FabricID)
	if err != nil {
		return nil, err
	}
	if fabric == nil {
		return nil, ErrFabricNotFound
	}
	if err := s.requireUserRole(input.AdminUserID, constants.UserRoleAdmin, ErrOrderAdminRequired); err != nil {
		return nil, err
	}
	if err := s.requireUserRole(input.GraphicUserID, constants.UserRoleGraphic, ErrOrderGraphicRequired); err != nil {
		return nil, err
	}

	adminID := input.AdminUserID
	graphicID := input.GraphicUserID
	order := &models.Order{
		OrderCode:              code,
		OrderDate:              dateOnly(input.OrderDate),
		CustomerPhone:          strings.TrimSpace(input.CustomerPhone),
		FactoryBillCode:        strings.TrimSpace(input.FactoryBillCode),
		AdminUserID:            &adminID,
		GraphicUserID:          &graphicID,
		Status:                 constants.OrderStatusInProgress,
		CustomerRemainingDueAt: normalizeTimePtr(input.CustomerRemainingDueAt),
		FactoryPaymentDueAt:    normalizeTimePtr(input.FactoryPaymentDueAt),
	}
	snapshotFabric(order, fabric)
	input.Charges.applyTo(order, s.defaultUpcharge)

	// 初始订金不超过净额
	draft := settlement.Compute(settlementInput(order, 0, 0))
	deposit := input.InitialDeposit
	if deposit > draft.NetTotal {
		deposit = draft.NetTotal
	}
	result := settlement.Compute(settlementInput(order, deposit, 0))
	applySettlementCache(order, result)
	if deposit > 0 {
		order.CustomerPaidFullAt = settlement.PaidFullAt(result.CustomerBalance, order.OrderDate)
	}

	if err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		if deposit <= 0 {
			return nil
		}
		return s.paymentRepo.WithTx(tx).CreateCustomer(&models.CustomerPayment{
			OrderID: order.ID,
			Amount:  models.NewMoney(deposit),
			PaidAt:  order.OrderDate,
			Note:    initialDepositNote,
		})
	}); err != nil {
		return nil, err
	}

	s.historyService.Record(order.ID, constants.HistoryActionCreateOrder, fmt.Sprintf("Created order %s net_total=%d", order.OrderCode, result.NetTotal), time.Now())
	invalidateDashboardCache(ctx)
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_code", order.OrderCode,
		"net_total", result.NetTotal,
		"initial_deposit", deposit,
	)
	return &OrderView{Order: *order, Settlement: result}, nil
}

// Update 编辑订单，按快照价格重算，不读取当前面料价格
func (s *OrderService) Update(ctx context.Context, id uint, input UpdateOrderInput) (*OrderView, error) {
	code := strings.TrimSpace(input.OrderCode)
	if code == "" {
		return nil, ErrOrderCodeRequired
	}
	if input.OrderDate.IsZero() {
		return nil, ErrOrderDateRequired
	}
	if input.AdminUserID == 0 {
		return nil, ErrOrderAdminRequired
	}
	if input.GraphicUserID == 0 {
		return nil, ErrOrderGraphicRequired
	}
	if err := input.Charges.validate(); err != nil {
		return nil, err
	}
	if err := s.requireUserRole(input.AdminUserID, constants.UserRoleAdmin, ErrOrderAdminRequired); err != nil {
		return nil, err
	}
	if err := s.requireUserRole(input.GraphicUserID, constants.UserRoleGraphic, ErrOrderGraphicRequired); err != nil {
		return nil, err
	}

	var view OrderView
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status == constants.OrderStatusCompleted {
			return ErrOrderAlreadyCompleted
		}
		if code != order.OrderCode {
			existing, err := orderRepo.GetByCode(code)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != order.ID {
				return ErrOrderCodeExists
			}
		}
		customer, factory, err := s.ledgerTotals(s.paymentRepo.WithTx(tx), order.ID)
		if err != nil {
			return err
		}

		adminID := input.AdminUserID
		graphicID := input.GraphicUserID
		order.OrderCode = code
		order.OrderDate = dateOnly(input.OrderDate)
		order.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
		order.FactoryBillCode = strings.TrimSpace(input.FactoryBillCode)
		order.AdminUserID = &adminID
		order.GraphicUserID = &graphicID
		order.CustomerRemainingDueAt = normalizeTimePtr(input.CustomerRemainingDueAt)
		order.FactoryPaymentDueAt = normalizeTimePtr(input.FactoryPaymentDueAt)
		input.Charges.applyTo(order, s.defaultUpcharge)

		result := computeOrderSettlement(order, customer, factory)
		applySettlementCache(order, result)
		if result.CustomerBalance != 0 {
			order.CustomerPaidFullAt = nil
		}
		if result.FactoryBalance != 0 {
			order.FactoryPaidFullAt = nil
		}
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		view = OrderView{Order: *order, Settlement: result}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.historyService.Record(id, constants.HistoryActionUpdateOrder, constants.HistoryDetailUpdateOrder, time.Now())
	invalidateDashboardCache(ctx)
	return &view, nil
}

// MarkProductionCompleted 标记生产完成（日期按当天 12:00 存储）
func (s *OrderService) MarkProductionCompleted(ctx context.Context, id uint, date time.Time) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if date.IsZero() {
		date = time.Now()
	}
	completedAt := dateOnly(date)
	if err := s.orderRepo.UpdateFields(id, map[string]interface{}{
		"production_completed_at": completedAt,
		"updated_at":              time.Now(),
	}); err != nil {
		return nil, err
	}
	order.ProductionCompletedAt = &completedAt

	s.historyService.Record(id, constants.HistoryActionProductionCompleted,
		fmt.Sprintf("%s (%s)", constants.HistoryDetailProductionCompleted, completedAt.Format(dateLayout)), time.Now())
	invalidateDashboardCache(ctx)
	return order, nil
}

// Close 结单：锁定订单并按流水复核两侧余额
func (s *OrderService) Close(ctx context.Context, id uint) (*OrderView, error) {
	var view OrderView
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status == constants.OrderStatusCompleted {
			return ErrOrderAlreadyCompleted
		}
		customer, factory, err := s.ledgerTotals(s.paymentRepo.WithTx(tx), order.ID)
		if err != nil {
			return err
		}
		result := computeOrderSettlement(order, customer, factory)
		if err := settlement.CheckClose(result, s.requireFactorySettled); err != nil {
			switch {
			case errors.Is(err, settlement.ErrCustomerOutstanding):
				return ErrOrderCustomerOutstanding
			case errors.Is(err, settlement.ErrFactoryOutstanding):
				return ErrOrderFactoryOutstanding
			default:
				return err
			}
		}

		now := time.Now().UTC()
		applySettlementCache(order, result)
		order.Status = constants.OrderStatusCompleted
		order.CompletedAt = &now
		order.ClosedAt = &now
		if order.CustomerPaidFullAt == nil {
			order.CustomerPaidFullAt = &now
		}
		if order.FactoryPaidFullAt == nil && result.FactoryBalance == 0 {
			order.FactoryPaidFullAt = &now
		}
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		view = OrderView{Order: *order, Settlement: result}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersClosed.Inc()
	s.historyService.Record(id, constants.HistoryActionCloseOrder, constants.HistoryDetailCloseOrder, time.Now())
	invalidateDashboardCache(ctx)
	logger.Infow("order_closed", "order_id", id, "order_code", view.Order.OrderCode, "profit", view.Settlement.Profit)
	return &view, nil
}

// Delete 硬删除订单（含流水与历史）
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if _, err := s.orderRepo.DeleteByIDs([]uint{id}); err != nil {
		return err
	}
	invalidateDashboardCache(ctx)
	logger.Infow("order_deleted", "order_id", id, "order_code", order.OrderCode)
	return nil
}

// BulkDelete 批量硬删除，返回删除数量
func (s *OrderService) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return 0, ErrBulkDeleteEmpty
	}
	affected, err := s.orderRepo.DeleteByIDs(unique)
	if err != nil {
		return 0, err
	}
	invalidateDashboardCache(ctx)
	logger.Infow("orders_bulk_deleted", "requested", len(unique), "deleted", affected)
	return affected, nil
}

// Get 订单详情，结算结果按流水重算
func (s *OrderService) Get(id uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	customer, factory, err := s.ledgerTotals(s.paymentRepo, order.ID)
	if err != nil {
		return nil, err
	}
	customerPayments, err := s.paymentRepo.ListCustomer(order.ID)
	if err != nil {
		return nil, err
	}
	factoryPayments, err := s.paymentRepo.ListFactory(order.ID)
	if err != nil {
		return nil, err
	}
	history, err := s.historyService.List(order.ID)
	if err != nil {
		logger.Warnw("order_history_list_failed", "order_id", order.ID, "error", err)
		history = []models.OrderStatusHistory{}
	}
	detail := &OrderDetail{
		Order:            *order,
		Settlement:       computeOrderSettlement(order, customer, factory),
		CustomerPayments: customerPayments,
		FactoryPayments:  factoryPayments,
		History:          history,
	}
	if order.AdminUserID != nil {
		if detail.AdminUser, err = s.userRepo.GetByID(*order.AdminUserID); err != nil {
			return nil, err
		}
	}
	if order.GraphicUserID != nil {
		if detail.GraphicUser, err = s.userRepo.GetByID(*order.GraphicUserID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// List 订单列表
func (s *OrderService) List(input ListOrdersInput) ([]OrderView, int64, error) {
	filter, err := buildOrderListFilter(input)
	if err != nil {
		return nil, 0, err
	}
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := buildOrderViews(s.paymentRepo, orders)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Search 搜索页：按日/月/年筛选，最多返回 500 条
func (s *OrderService) Search(input SearchOrdersInput) ([]OrderView, error) {
	from, to, err := resolveSearchWindow(input.Mode, input.Value)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Search(repository.OrderSearchFilter{
		Prefix: input.Prefix,
		Query:  input.Query,
		From:   from,
		To:     to,
		Limit:  searchResultLimit,
	})
	if err != nil {
		return nil, err
	}
	return buildOrderViews(s.paymentRepo, orders)
}

func (s *OrderService) ledgerTotals(paymentRepo repository.PaymentRepository, orderID uint) (repository.LedgerTotal, repository.LedgerTotal, error) {
	customer, err := paymentRepo.SumCustomer(orderID)
	if err != nil {
		return repository.LedgerTotal{}, repository.LedgerTotal{}, err
	}
	factory, err := paymentRepo.SumFactory(orderID)
	if err != nil {
		return repository.LedgerTotal{}, repository.LedgerTotal{}, err
	}
	return customer, factory, nil
}

func (s *OrderService) requireUserRole(id uint, role string, missing error) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil || user.Role != role {
		return missing
	}
	return nil
}

// snapshotFabric 复制面料当前存储的价格到订单，之后不再随面料变化
func snapshotFabric(order *models.Order, fabric *models.Fabric) {
	fabricID := fabric.ID
	order.FabricID = &fabricID
	order.FabricName = fabric.Name
	order.FabricShortPrice = models.NewMoney(fabric.ShortPrice.Int64())
	order.FabricLongPrice = models.NewMoney(fabric.LongPrice.Int64())
}

// keepFabricSnapshot 沿用已有订单的面料快照
func keepFabricSnapshot(order, current *models.Order) {
	order.FabricID = current.FabricID
	order.FabricName = current.FabricName
	order.FabricShortPrice = current.FabricShortPrice
	order.FabricLongPrice = current.FabricLongPrice
}

func buildOrderListFilter(input ListOrdersInput) (repository.OrderListFilter, error) {
	filter := repository.OrderListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Status:   strings.TrimSpace(input.Status),
		Prefix:   input.Prefix,
		Search:   input.Search,
		Payment:  input.Payment,
	}
	if strings.TrimSpace(input.DateFrom) != "" {
		from, err := ParseDate(input.DateFrom)
		if err != nil {
			return filter, err
		}
		start := dayStart(from)
		filter.DateFrom = &start
	}
	if strings.TrimSpace(input.DateTo) != "" {
		to, err := ParseDate(input.DateTo)
		if err != nil {
			return filter, err
		}
		// date_to 包含当天
		end := dayStart(to).AddDate(0, 0, 1)
		filter.DateTo = &end
	}
	return filter, nil
}

// resolveSearchWindow 日/月/年模式转换为 [from, to)
func resolveSearchWindow(mode, value string) (*time.Time, *time.Time, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return nil, nil, nil
	}
	var from, to time.Time
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "day":
		parsed, err := time.Parse(dateLayout, text)
		if err != nil {
			return nil, nil, ErrDateInvalid
		}
		from = parsed
		to = parsed.AddDate(0, 0, 1)
	case "month":
		parsed, err := time.Parse("2006-01", text)
		if err != nil {
			return nil, nil, ErrDateInvalid
		}
		from = parsed
		to = parsed.AddDate(0, 1, 0)
	case "year":
		parsed, err := time.Parse("2006", text)
		if err != nil {
			return nil, nil, ErrDateInvalid
		}
		from = parsed
		to = parsed.AddDate(1, 0, 0)
	default:
		return nil, nil, ErrDateInvalid
	}
	return &from, &to, nil
}
