package models

import "time"

// Fabric 面料价格表
type Fabric struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	Name       string    `gorm:"type:varchar(255);index;not null" json:"name"`             // 面料名称
	ShortPrice Money     `gorm:"type:decimal(20,0);not null;default:0" json:"short_price"` // 短袖单价
	LongAdd    Money     `gorm:"type:decimal(20,0);not null;default:0" json:"long_add"`    // 长袖加价
	LongPrice  Money     `gorm:"type:decimal(20,0);not null;default:0" json:"long_price"`  // 长袖单价 = 短袖单价 + 长袖加价
	IsActive   bool      `gorm:"not null;index" json:"is_active"`                          // 是否启用
	CreatedAt  time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (Fabric) TableName() string {
	return "fabrics"
}

// RecomputeLongPrice 按短袖单价与加价重算长袖单价
func (f *Fabric) RecomputeLongPrice() {
	if f == nil {
		return
	}
	f.LongPrice = NewMoneyFromDecimal(f.ShortPrice.Decimal.Add(f.LongAdd.Decimal))
}
