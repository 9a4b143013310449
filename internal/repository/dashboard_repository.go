package repository

import (
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetRecentOrders(startAt, endAt time.Time, limit int) ([]models.Order, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TotalProfit      int64
	CustomerBalance  int64
	FactoryBalance   int64
	InProgressOrders int64
	CompletedOrders  int64
	TotalOrders      int64
	ShortSleeves     int64
	LongSleeves      int64
	GiveawayShirts   int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计（按下单日期，区间为 [startAt, endAt)）
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("order_date >= ? AND order_date < ?", startAt, endAt)
	}

	type totalsRow struct {
		TotalOrders     int64
		CustomerBalance int64
		ShortSleeves    int64
		LongSleeves     int64
		GiveawayShirts  int64
	}
	var totals totalsRow
	if err := orderBase().
		Select("COUNT(*) AS total_orders, COALESCE(SUM(balance), 0) AS customer_balance, COALESCE(SUM(short_qty), 0) AS short_sleeves, COALESCE(SUM(long_qty), 0) AS long_sleeves, COALESCE(SUM(free_qty), 0) AS giveaway_shirts").
		Scan(&totals).Error; err != nil {
		return result, err
	}
	result.TotalOrders = totals.TotalOrders
	result.CustomerBalance = totals.CustomerBalance
	result.ShortSleeves = totals.ShortSleeves
	result.LongSleeves = totals.LongSleeves
	result.GiveawayShirts = totals.GiveawayShirts

	if err := orderBase().
		Where("status = ?", constants.OrderStatusCompleted).
		Select("COALESCE(SUM(net_total - factory_cost), 0)").
		Scan(&result.TotalProfit).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCompleted).Count(&result.CompletedOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusInProgress).Count(&result.InProgressOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().
		Where("status = ?", constants.OrderStatusInProgress).
		Select("COALESCE(SUM(factory_balance), 0)").
		Scan(&result.FactoryBalance).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetRecentOrders 最近订单
func (r *GormDashboardRepository) GetRecentOrders(startAt, endAt time.Time, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []models.Order
	if err := r.db.Model(&models.Order{}).
		Where("order_date >= ? AND order_date < ?", startAt, endAt).
		Order("order_date desc").Order("created_at desc").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
