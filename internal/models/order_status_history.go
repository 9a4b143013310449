package models

import "time"

// OrderStatusHistory 订单操作历史（尽力写入）
type OrderStatusHistory struct {
	ID       uint      `gorm:"primarykey" json:"id"`                       // 主键
	OrderID  uint      `gorm:"index;not null" json:"order_id"`             // 订单ID
	Action   string    `gorm:"type:varchar(64);index;not null" json:"action"` // 动作
	Detail   string    `gorm:"type:text" json:"detail"`                    // 详情
	ActionAt time.Time `gorm:"index;not null" json:"action_at"`            // 发生时间
}

// TableName 指定表名
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
