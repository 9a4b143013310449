package repository

import (
	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
)

// LedgerTotal 某订单流水合计
type LedgerTotal struct {
	Total   int64
	Entries int64
}

// PaymentRepository 客户/工厂付款流水数据访问接口
type PaymentRepository interface {
	CreateCustomer(payment *models.CustomerPayment) error
	CreateFactory(payment *models.FactoryPayment) error
	SumCustomer(orderID uint) (LedgerTotal, error)
	SumFactory(orderID uint) (LedgerTotal, error)
	ListCustomer(orderID uint) ([]models.CustomerPayment, error)
	ListFactory(orderID uint) ([]models.FactoryPayment, error)
	SumCustomerByOrderIDs(orderIDs []uint) (map[uint]LedgerTotal, error)
	SumFactoryByOrderIDs(orderIDs []uint) (map[uint]LedgerTotal, error)
	WithTx(tx *gorm.DB) PaymentRepository
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建流水仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// CreateCustomer 追加客户收款流水
func (r *GormPaymentRepository) CreateCustomer(payment *models.CustomerPayment) error {
	return r.db.Create(payment).Error
}

// CreateFactory 追加工厂付款流水
func (r *GormPaymentRepository) CreateFactory(payment *models.FactoryPayment) error {
	return r.db.Create(payment).Error
}

// SumCustomer 客户流水合计
func (r *GormPaymentRepository) SumCustomer(orderID uint) (LedgerTotal, error) {
	return r.sum(&models.CustomerPayment{}, orderID)
}

// SumFactory 工厂流水合计
func (r *GormPaymentRepository) SumFactory(orderID uint) (LedgerTotal, error) {
	return r.sum(&models.FactoryPayment{}, orderID)
}

func (r *GormPaymentRepository) sum(model interface{}, orderID uint) (LedgerTotal, error) {
	var row LedgerTotal
	if err := r.db.Model(model).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS entries").
		Where("order_id = ?", orderID).
		Scan(&row).Error; err != nil {
		return LedgerTotal{}, err
	}
	return row, nil
}

// ListCustomer 客户流水列表（按付款日期倒序）
func (r *GormPaymentRepository) ListCustomer(orderID uint) ([]models.CustomerPayment, error) {
	var payments []models.CustomerPayment
	if err := r.db.Where("order_id = ?", orderID).Order("paid_at desc").Order("id desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListFactory 工厂流水列表（按付款日期倒序）
func (r *GormPaymentRepository) ListFactory(orderID uint) ([]models.FactoryPayment, error) {
	var payments []models.FactoryPayment
	if err := r.db.Where("order_id = ?", orderID).Order("paid_at desc").Order("id desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// SumCustomerByOrderIDs 批量统计客户流水
func (r *GormPaymentRepository) SumCustomerByOrderIDs(orderIDs []uint) (map[uint]LedgerTotal, error) {
	return r.sumByOrderIDs(&models.CustomerPayment{}, orderIDs)
}

// SumFactoryByOrderIDs 批量统计工厂流水
func (r *GormPaymentRepository) SumFactoryByOrderIDs(orderIDs []uint) (map[uint]LedgerTotal, error) {
	return r.sumByOrderIDs(&models.FactoryPayment{}, orderIDs)
}

func (r *GormPaymentRepository) sumByOrderIDs(model interface{}, orderIDs []uint) (map[uint]LedgerTotal, error) {
	result := make(map[uint]LedgerTotal, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}
	type row struct {
		OrderID uint
		Total   int64
		Entries int64
	}
	var rows []row
	if err := r.db.Model(model).
		Select("order_id, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS entries").
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, item := range rows {
		result[item.OrderID] = LedgerTotal{Total: item.Total, Entries: item.Entries}
	}
	return result, nil
}
