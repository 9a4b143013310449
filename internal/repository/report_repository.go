package repository

import (
	"strings"

	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 报表聚合查询接口
// 说明：仅负责按周期与前缀聚合，不承载结算规则。
type ReportRepository interface {
	GetSalesTotals(filter OrderPeriodFilter) (SalesTotalsRow, error)
	GetCompletedProfit(filter OrderPeriodFilter) (ProfitTotalsRow, error)
	GroupByAdmin(filter OrderPeriodFilter, adminID uint) ([]UserWorkRow, error)
	GroupByGraphic(filter OrderPeriodFilter, graphicID uint) ([]UserWorkRow, error)
	ListOrders(filter OrderPeriodFilter) ([]models.Order, error)
}

// SalesTotalsRow 按下单日期统计的销售合计
type SalesTotalsRow struct {
	TotalSales  int64
	TotalShirts int64
	TotalOrders int64
}

// ProfitTotalsRow 按生产完成日期统计的利润合计
type ProfitTotalsRow struct {
	TotalProfit int64
	OrderCount  int64
}

// UserWorkRow 按员工分组的统计行
type UserWorkRow struct {
	UserID      uint
	ShirtsTotal int64
	OrdersTotal int64
	SalesTotal  int64
}

// GormReportRepository GORM 报表实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) periodBase(filter OrderPeriodFilter, dateColumn string) *gorm.DB {
	query := r.db.Model(&models.Order{}).
		Where(dateColumn+" IS NOT NULL AND "+dateColumn+" >= ? AND "+dateColumn+" < ?", filter.From, filter.To)
	query = applyOrderPrefix(query, filter.Prefix)
	if status := strings.TrimSpace(filter.Status); status != "" && !strings.EqualFold(status, "all") {
		query = query.Where("status = ?", status)
	}
	return applyPaymentFilter(query, filter.Payment)
}

// GetSalesTotals 销售额、件数（不含赠送）与订单数
func (r *GormReportRepository) GetSalesTotals(filter OrderPeriodFilter) (SalesTotalsRow, error) {
	var row SalesTotalsRow
	err := r.periodBase(filter, "order_date").
		Select("COALESCE(SUM(net_total), 0) AS total_sales, COALESCE(SUM(short_qty + long_qty), 0) AS total_shirts, COUNT(*) AS total_orders").
		Scan(&row).Error
	return row, err
}

// GetCompletedProfit 生产完成日期落在周期内的订单利润
func (r *GormReportRepository) GetCompletedProfit(filter OrderPeriodFilter) (ProfitTotalsRow, error) {
	var row ProfitTotalsRow
	err := r.periodBase(filter, "production_completed_at").
		Select("COALESCE(SUM(net_total - factory_cost), 0) AS total_profit, COUNT(*) AS order_count").
		Scan(&row).Error
	return row, err
}

// GroupByAdmin 按销售管理员分组
func (r *GormReportRepository) GroupByAdmin(filter OrderPeriodFilter, adminID uint) ([]UserWorkRow, error) {
	return r.groupByUser(filter, "admin_user_id", adminID)
}

// GroupByGraphic 按设计师分组
func (r *GormReportRepository) GroupByGraphic(filter OrderPeriodFilter, graphicID uint) ([]UserWorkRow, error) {
	return r.groupByUser(filter, "graphic_user_id", graphicID)
}

func (r *GormReportRepository) groupByUser(filter OrderPeriodFilter, column string, userID uint) ([]UserWorkRow, error) {
	query := r.periodBase(filter, "order_date").Where(column + " IS NOT NULL")
	if userID > 0 {
		query = query.Where(column+" = ?", userID)
	}
	var rows []UserWorkRow
	if err := query.
		Select(column + " AS user_id, COALESCE(SUM(short_qty + long_qty), 0) AS shirts_total, COUNT(*) AS orders_total, COALESCE(SUM(net_total), 0) AS sales_total").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOrders 周期内订单明细（订单报表）
func (r *GormReportRepository) ListOrders(filter OrderPeriodFilter) ([]models.Order, error) {
	var orders []models.Order
	if err := r.periodBase(filter, "order_date").
		Order("order_date desc").Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
