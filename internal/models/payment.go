package models

import "time"

// CustomerPayment 客户收款流水（只追加）
type CustomerPayment struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`               // 订单ID
	Amount    Money     `gorm:"type:decimal(20,0);not null" json:"amount"`    // 收款金额
	PaidAt    time.Time `gorm:"index;not null" json:"paid_at"`                // 收款日期
	Note      string    `gorm:"type:text" json:"note"`                        // 备注
	CreatedAt time.Time `json:"created_at"`                                   // 创建时间
}

// TableName 指定表名
func (CustomerPayment) TableName() string {
	return "payment_transactions"
}

// FactoryPayment 工厂付款流水（只追加）
type FactoryPayment struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`               // 订单ID
	Amount    Money     `gorm:"type:decimal(20,0);not null" json:"amount"`    // 付款金额
	PaidAt    time.Time `gorm:"index;not null" json:"paid_at"`                // 付款日期
	Note      string    `gorm:"type:text" json:"note"`                        // 备注
	CreatedAt time.Time `json:"created_at"`                                   // 创建时间
}

// TableName 指定表名
func (FactoryPayment) TableName() string {
	return "factory_payments"
}
