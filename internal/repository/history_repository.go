package repository

import (
	"strings"

	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
)

// OrderHistoryRepository 订单历史数据访问接口
type OrderHistoryRepository interface {
	Create(history *models.OrderStatusHistory) error
	ListByOrder(orderID uint) ([]models.OrderStatusHistory, error)
	Exists(orderID uint, action, detailPrefix string) (bool, error)
}

// GormOrderHistoryRepository GORM 实现
type GormOrderHistoryRepository struct {
	db *gorm.DB
}

// NewOrderHistoryRepository 创建订单历史仓库
func NewOrderHistoryRepository(db *gorm.DB) *GormOrderHistoryRepository {
	return &GormOrderHistoryRepository{db: db}
}

// Create 追加历史记录
func (r *GormOrderHistoryRepository) Create(history *models.OrderStatusHistory) error {
	return r.db.Create(history).Error
}

// ListByOrder 订单历史（按时间倒序），表不存在时返回空列表
func (r *GormOrderHistoryRepository) ListByOrder(orderID uint) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	if err := r.db.Where("order_id = ?", orderID).Order("action_at desc").Order("id desc").Find(&rows).Error; err != nil {
		if IsMissingTableError(err) {
			return []models.OrderStatusHistory{}, nil
		}
		return nil, err
	}
	return rows, nil
}

// Exists 判断是否已存在某动作的历史记录（detail 按前缀匹配）
func (r *GormOrderHistoryRepository) Exists(orderID uint, action, detailPrefix string) (bool, error) {
	query := r.db.Model(&models.OrderStatusHistory{}).Where("order_id = ? AND action = ?", orderID, action)
	if prefix := strings.TrimSpace(detailPrefix); prefix != "" {
		query = query.Where("detail LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%")
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		if IsMissingTableError(err) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// IsMissingTableError 判断是否为“表不存在”错误（sqlite / postgres）
func IsMissingTableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")) ||
		strings.Contains(msg, "sqlstate 42p01")
}
