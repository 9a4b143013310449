package models

import "time"

// User 员工表（销售、设计、会计等）
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`                              // 主键
	FullName  string    `gorm:"type:varchar(255);index;not null" json:"full_name"` // 姓名
	Phone     string    `gorm:"type:varchar(64)" json:"phone"`                     // 电话
	Email     string    `gorm:"type:varchar(255)" json:"email"`                    // 邮箱
	Role      string    `gorm:"type:varchar(32);index;not null" json:"role"`       // 角色
	IsActive  bool      `gorm:"not null;index" json:"is_active"`                   // 是否启用
	Notes     string    `gorm:"type:text" json:"notes"`                            // 备注
	CreatedAt time.Time `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
