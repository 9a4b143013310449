package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID                     uint       `gorm:"primarykey" json:"id"`                                            // 主键
	OrderCode              string     `gorm:"uniqueIndex;not null" json:"order_code"`                          // 订单编码（带产品线前缀）
	OrderDate              time.Time  `gorm:"index;not null" json:"order_date"`                                // 下单日期
	CustomerPhone          string     `gorm:"type:varchar(64);index" json:"customer_phone"`                    // 客户电话
	FactoryBillCode        string     `gorm:"type:varchar(128);index" json:"factory_bill_code"`                // 工厂单号
	AdminUserID            *uint      `gorm:"index" json:"admin_user_id"`                                      // 负责销售
	GraphicUserID          *uint      `gorm:"index" json:"graphic_user_id"`                                    // 负责设计
	FabricID               *uint      `gorm:"index" json:"fabric_id"`                                          // 面料ID（快照来源）
	FabricName             string     `gorm:"type:varchar(255)" json:"fabric_name"`                            // 面料名称快照
	FabricShortPrice       Money      `gorm:"type:decimal(20,0);not null;default:0" json:"fabric_short_price"` // 短袖单价快照
	FabricLongPrice        Money      `gorm:"type:decimal(20,0);not null;default:0" json:"fabric_long_price"`  // 长袖单价快照
	ShortQty               int        `gorm:"not null;default:0" json:"short_qty"`                             // 短袖数量
	LongQty                int        `gorm:"not null;default:0" json:"long_qty"`                              // 长袖数量
	FreeQty                int        `gorm:"not null;default:0" json:"free_qty"`                              // 赠送数量（不计费）
	Qty3XL                 int        `gorm:"column:qty_3xl;not null;default:0" json:"qty_3xl"`                // 3XL 数量
	Qty4XL                 int        `gorm:"column:qty_4xl;not null;default:0" json:"qty_4xl"`                // 4XL 数量
	Qty5XL                 int        `gorm:"column:qty_5xl;not null;default:0" json:"qty_5xl"`                // 5XL 数量
	SizeUpcharge           Money      `gorm:"type:decimal(20,0);not null;default:0" json:"size_upcharge"`      // 大码加价（每件）
	ExtraCharge            Money      `gorm:"type:decimal(20,0);not null;default:0" json:"extra_charge"`       // 额外费用
	DesignDeposit          Money      `gorm:"type:decimal(20,0);not null;default:0" json:"design_deposit"`     // 设计订金（从总额扣除）
	FactoryCost            Money      `gorm:"type:decimal(20,0);not null;default:0" json:"factory_cost"`       // 应付工厂成本
	InitialDeposit         Money      `gorm:"type:decimal(20,0);not null;default:0" json:"initial_deposit"`    // 客户已收（旧版字段）
	GrossTotal             Money      `gorm:"type:decimal(20,0);not null;default:0" json:"gross_total"`        // 总额
	NetTotal               Money      `gorm:"type:decimal(20,0);not null;default:0" json:"net_total"`          // 净额
	Balance                Money      `gorm:"type:decimal(20,0);not null;default:0;index" json:"balance"`      // 客户欠款（缓存）
	FactoryBalance         Money      `gorm:"type:decimal(20,0);not null;default:0" json:"factory_balance"`    // 工厂欠款（缓存）
	Status                 string     `gorm:"index;not null;default:'in_progress'" json:"status"`              // 订单状态
	ProductionCompletedAt  *time.Time `gorm:"index" json:"production_completed_at"`                            // 生产完成时间
	CustomerRemainingDueAt *time.Time `gorm:"index" json:"customer_remaining_due_at"`                          // 客户尾款到期
	FactoryPaymentDueAt    *time.Time `gorm:"index" json:"factory_payment_due_at"`                             // 工厂付款到期
	CustomerPaidFullAt     *time.Time `json:"customer_paid_full_at"`                                           // 客户付清时间
	FactoryPaidFullAt      *time.Time `json:"factory_paid_full_at"`                                            // 工厂付清时间
	CompletedAt            *time.Time `gorm:"index" json:"completed_at"`                                       // 完成时间
	ClosedAt               *time.Time `json:"closed_at"`                                                       // 结单时间
	CreatedAt              time.Time  `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt              time.Time  `gorm:"index" json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
