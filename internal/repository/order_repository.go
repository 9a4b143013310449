package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	Update(order *models.Order) error
	UpdateFields(id uint, updates map[string]interface{}) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUpdate(id uint) (*models.Order, error)
	GetByCode(code string) (*models.Order, error)
	ListByCodes(codes []string) ([]models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	Search(filter OrderSearchFilter) ([]models.Order, error)
	DeleteByIDs(ids []uint) (int64, error)
	ListOverdue(side string, now time.Time, limit int) ([]OverdueOrderRow, error)
	SummarizePayments(filter OrderListFilter) (PaymentSummaryRow, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// PaymentSummaryRow 收款页汇总原始统计
type PaymentSummaryRow struct {
	OrderCount          int64
	TotalBilled         int64
	TotalOutstanding    int64
	TotalInitialDeposit int64
	PaidOrders          int64
	InProgress          int64
	ReadyToClose        int64
	LedgerReceived      int64
	LedgerCount         int64
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 保存订单全部字段
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateFields 按字段更新订单
func (r *GormOrderRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate 加行锁读取订单，需在事务中调用（sqlite 忽略行锁）
func (r *GormOrderRepository) GetByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByCode 根据订单编码获取订单
func (r *GormOrderRepository) GetByCode(code string) (*models.Order, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, nil
	}
	var order models.Order
	if err := r.db.Where("order_code = ?", trimmed).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByCodes 按订单编码批量获取
func (r *GormOrderRepository) ListByCodes(codes []string) ([]models.Order, error) {
	if len(codes) == 0 {
		return []models.Order{}, nil
	}
	var orders []models.Order
	if err := r.db.Where("order_code IN ?", codes).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) applyListFilter(query *gorm.DB, filter OrderListFilter) *gorm.DB {
	if status := strings.TrimSpace(filter.Status); status != "" && !strings.EqualFold(status, "all") {
		query = query.Where("status = ?", status)
	}
	query = applyOrderPrefix(query, filter.Prefix)
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildContainsCondition(r.db, []string{"order_code", "factory_bill_code", "customer_phone"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), count)...)
	}
	if filter.DateFrom != nil {
		query = query.Where("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		// DateTo 为开区间上界
		query = query.Where("order_date < ?", *filter.DateTo)
	}
	return applyPaymentFilter(query, filter.Payment)
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.applyListFilter(r.db.Model(&models.Order{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Order("order_date desc").Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Search 搜索页查询
func (r *GormOrderRepository) Search(filter OrderSearchFilter) ([]models.Order, error) {
	query := applyOrderPrefix(r.db.Model(&models.Order{}), filter.Prefix)
	if q := strings.TrimSpace(filter.Query); q != "" {
		condition, count := buildContainsCondition(r.db, []string{"order_code", "factory_bill_code", "customer_phone"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(q), count)...)
	}
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date < ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var orders []models.Order
	if err := query.Order("order_date desc").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteByIDs 硬删除订单及其流水与历史
func (r *GormOrderRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", ids).Delete(&models.CustomerPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN ?", ids).Delete(&models.FactoryPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderStatusHistory{}).Error; err != nil && !IsMissingTableError(err) {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// ListOverdue 扫描到期未付清且尚未记录逾期提醒的订单
func (r *GormOrderRepository) ListOverdue(side string, now time.Time, limit int) ([]OverdueOrderRow, error) {
	dueColumn := "customer_remaining_due_at"
	balanceColumn := "balance"
	if side == constants.LedgerSideFactory {
		dueColumn = "factory_payment_due_at"
		balanceColumn = "factory_balance"
	}
	notified := r.db.Model(&models.OrderStatusHistory{}).
		Select("1").
		Where("order_status_history.order_id = orders.id AND order_status_history.action = ? AND order_status_history.detail LIKE ?",
			constants.HistoryActionPaymentOverdue, side+"%")

	query := r.db.Model(&models.Order{}).
		Select("orders.id AS order_id, orders.order_code AS order_code, orders."+dueColumn+" AS due_at").
		Where("orders.status = ?", constants.OrderStatusInProgress).
		Where("orders."+dueColumn+" IS NOT NULL AND orders."+dueColumn+" <= ?", now).
		Where("orders."+balanceColumn+" > 0").
		Where("NOT EXISTS (?)", notified).
		Order("orders." + dueColumn + " asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []OverdueOrderRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SummarizePayments 按过滤条件汇总收款情况（基于缓存 balance 与客户流水）
func (r *GormOrderRepository) SummarizePayments(filter OrderListFilter) (PaymentSummaryRow, error) {
	result := PaymentSummaryRow{}
	base := func() *gorm.DB {
		return r.applyListFilter(r.db.Model(&models.Order{}), filter)
	}

	type totalsRow struct {
		OrderCount          int64
		TotalBilled         int64
		TotalOutstanding    int64
		TotalInitialDeposit int64
	}
	var totals totalsRow
	if err := base().
		Select("COUNT(*) AS order_count, COALESCE(SUM(net_total), 0) AS total_billed, COALESCE(SUM(balance), 0) AS total_outstanding, COALESCE(SUM(initial_deposit), 0) AS total_initial_deposit").
		Scan(&totals).Error; err != nil {
		return result, err
	}
	result.OrderCount = totals.OrderCount
	result.TotalBilled = totals.TotalBilled
	result.TotalOutstanding = totals.TotalOutstanding
	result.TotalInitialDeposit = totals.TotalInitialDeposit

	if err := base().Where("balance = 0").Count(&result.PaidOrders).Error; err != nil {
		return result, err
	}
	if err := base().Where("status = ?", constants.OrderStatusInProgress).Count(&result.InProgress).Error; err != nil {
		return result, err
	}
	if err := base().Where("status = ? AND balance = 0", constants.OrderStatusInProgress).Count(&result.ReadyToClose).Error; err != nil {
		return result, err
	}

	type ledgerRow struct {
		Received int64
		TxCount  int64
	}
	var ledger ledgerRow
	if err := r.db.Model(&models.CustomerPayment{}).
		Select("COALESCE(SUM(amount), 0) AS received, COUNT(*) AS tx_count").
		Where("order_id IN (?)", base().Select("id")).
		Scan(&ledger).Error; err != nil {
		return result, err
	}
	result.LedgerReceived = ledger.Received
	result.LedgerCount = ledger.TxCount
	return result, nil
}
